// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package i2cbus

import (
	"fmt"
	"io"

	"go.bug.st/serial"

	"github.com/jacobbramley/ist-hyt/pkg/hyt"
)

var _ hyt.Bus = (*USBISS)(nil)

// USB-ISS protocol bytes. I2C_DIRECT executes a scripted bus sequence,
// which is the only USB-ISS operation that can express a zero-length
// write; the fixed-format transfer commands always carry data.
const (
	ussI2CDirect = 0x57

	ussDirStart = 0x01
	ussDirStop  = 0x03

	// Read/write n bytes is encoded as base + n-1, n in 1..16.
	ussDirReadBase  = 0x20
	ussDirWriteBase = 0x30
	ussDirMaxChunk  = 16

	ussAck = 0xFF
)

// USBISS drives the bus through a Devantech USB-ISS adapter, a serial
// device that scripts raw I²C sequences.
type USBISS struct {
	port serial.Port
}

// OpenUSBISS opens the adapter's serial port. The USB-ISS presents a USB
// CDC port, so the baud rate is nominal, but it still has to be supplied
// to the OS.
func OpenUSBISS(portName string, baudRate int) (*USBISS, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("i2cbus: open serial port %s: %w", portName, err)
	}

	return &USBISS{port: port}, nil
}

// Write performs an I²C write. An empty p is a bare address write: start,
// address byte, stop.
func (u *USBISS) Write(addr byte, p []byte) error {
	if len(p) >= ussDirMaxChunk {
		return fmt.Errorf("i2cbus: write of %d bytes exceeds USB-ISS chunk limit", len(p))
	}

	cmd := make([]byte, 0, len(p)+5)
	cmd = append(cmd, ussI2CDirect, ussDirStart)
	cmd = append(cmd, ussDirWriteBase+byte(len(p)), addr<<1)
	cmd = append(cmd, p...)
	cmd = append(cmd, ussDirStop)

	_, err := u.transact(cmd)
	return err
}

// Read performs an I²C read of len(p) bytes.
func (u *USBISS) Read(addr byte, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if len(p) > ussDirMaxChunk {
		return fmt.Errorf("i2cbus: read of %d bytes exceeds USB-ISS chunk limit", len(p))
	}

	cmd := []byte{
		ussI2CDirect, ussDirStart,
		ussDirWriteBase, addr<<1 | 1,
		ussDirReadBase + byte(len(p)-1),
		ussDirStop,
	}

	data, err := u.transact(cmd)
	if err != nil {
		return err
	}
	if len(data) != len(p) {
		return fmt.Errorf("i2cbus: short read: %d of %d bytes", len(data), len(p))
	}
	copy(p, data)
	return nil
}

// transact sends one command and collects the adapter's two-byte status
// header plus any returned data. The header is [0xFF, count] on success
// and [0x00, reason] on a bus failure.
func (u *USBISS) transact(cmd []byte) ([]byte, error) {
	if _, err := u.port.Write(cmd); err != nil {
		return nil, fmt.Errorf("i2cbus: usb-iss write: %w", err)
	}

	var header [2]byte
	if _, err := io.ReadFull(u.port, header[:]); err != nil {
		return nil, fmt.Errorf("i2cbus: usb-iss response: %w", err)
	}
	if header[0] != ussAck {
		return nil, fmt.Errorf("i2cbus: usb-iss bus error 0x%02X", header[1])
	}
	if header[1] == 0 {
		return nil, nil
	}

	data := make([]byte, header[1])
	if _, err := io.ReadFull(u.port, data); err != nil {
		return nil, fmt.Errorf("i2cbus: usb-iss response data: %w", err)
	}
	return data, nil
}

// Close releases the serial port.
func (u *USBISS) Close() error {
	return u.port.Close()
}
