// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package i2cbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/serfreeman1337/go-ch347"
	"github.com/sstallion/go-hid"

	"github.com/jacobbramley/ist-hyt/pkg/hyt"
)

var _ hyt.Bus = (*CH347)(nil)

// CH347 USB identity. Interface 0 is UART; interface 1 carries SPI, I²C
// and GPIO.
const (
	ch347VID   = 0x1A86
	ch347PID   = 0x55DC
	ch347Iface = 1
)

// CH347 drives the bus through a WCH CH347 USB bridge in HID mode.
type CH347 struct {
	io  *ch347.IO
	dev *hid.Device
}

// hidReadTimeout bounds HID reads to one second and retries reads
// interrupted by signals, which hidapi surfaces as plain string errors.
type hidReadTimeout struct {
	*hid.Device
}

func (d *hidReadTimeout) Read(p []byte) (n int, err error) {
	for {
		n, err = d.Device.ReadWithTimeout(p, time.Second)
		if err == nil || err.Error() != "Interrupted system call" {
			return
		}
	}
}

// OpenCH347 locates the first CH347 bridge on USB and configures its I²C
// engine for 400kHz, the fastest rate the HYT sensors support.
func OpenCH347() (*CH347, error) {
	var devPath string
	err := hid.Enumerate(ch347VID, ch347PID, func(info *hid.DeviceInfo) error {
		if devPath == "" && info.InterfaceNbr == ch347Iface {
			devPath = info.Path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("i2cbus: enumerate HID devices: %w", err)
	}
	if devPath == "" {
		return nil, errors.New("i2cbus: no CH347 bridge found")
	}

	dev, err := hid.OpenPath(devPath)
	if err != nil {
		return nil, fmt.Errorf("i2cbus: open CH347: %w", err)
	}

	bridge := &ch347.IO{Dev: &hidReadTimeout{dev}}
	if err := bridge.SetI2C(ch347.I2CMode2); err != nil {
		dev.Close()
		return nil, fmt.Errorf("i2cbus: configure CH347 I2C: %w", err)
	}

	return &CH347{io: bridge, dev: dev}, nil
}

// Write performs an I²C write. An empty p becomes a bare address write,
// which is how the HYT measurement request is expressed.
func (c *CH347) Write(addr byte, p []byte) error {
	return c.io.I2C(uint16(addr), p, nil)
}

// Read performs an I²C read of len(p) bytes.
func (c *CH347) Read(addr byte, p []byte) error {
	return c.io.I2C(uint16(addr), nil, p)
}

// Close releases the HID device.
func (c *CH347) Close() error {
	return c.dev.Close()
}
