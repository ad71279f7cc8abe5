// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package i2cbus

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/jacobbramley/ist-hyt/pkg/hyt"
)

var _ hyt.Bus = (*I2CDev)(nil)

// I2C_SLAVE from <linux/i2c-dev.h>: select the peer address for plain
// read/write calls on the file descriptor.
const i2cSlaveIoctl = 0x0703

// I2CDev drives a Linux /dev/i2c-N bus adapter.
type I2CDev struct {
	fd   int
	path string
	addr int // currently-selected peer, -1 before the first transfer
}

// OpenI2CDev opens an i2c-dev character device such as /dev/i2c-1.
func OpenI2CDev(path string) (*I2CDev, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("i2cbus: open %s: %w", path, err)
	}
	return &I2CDev{fd: fd, path: path, addr: -1}, nil
}

func (d *I2CDev) selectAddress(addr byte) error {
	if int(addr) == d.addr {
		return nil
	}
	if err := unix.IoctlSetInt(d.fd, i2cSlaveIoctl, int(addr)); err != nil {
		return fmt.Errorf("i2cbus: select address 0x%02X on %s: %w", addr, d.path, err)
	}
	d.addr = int(addr)
	return nil
}

// Write performs an I²C write. An empty p becomes a zero-length transfer,
// which the kernel issues as a bare address write.
func (d *I2CDev) Write(addr byte, p []byte) error {
	if err := d.selectAddress(addr); err != nil {
		return err
	}
	n, err := unix.Write(d.fd, p)
	if err != nil {
		return fmt.Errorf("i2cbus: write %s: %w", d.path, err)
	}
	if n != len(p) {
		return fmt.Errorf("i2cbus: short write: %d of %d bytes", n, len(p))
	}
	return nil
}

// Read performs an I²C read of len(p) bytes.
func (d *I2CDev) Read(addr byte, p []byte) error {
	if err := d.selectAddress(addr); err != nil {
		return err
	}
	n, err := unix.Read(d.fd, p)
	if err != nil {
		return fmt.Errorf("i2cbus: read %s: %w", d.path, err)
	}
	if n != len(p) {
		return fmt.Errorf("i2cbus: short read: %d of %d bytes", n, len(p))
	}
	return nil
}

// Close releases the device file.
func (d *I2CDev) Close() error {
	return unix.Close(d.fd)
}
