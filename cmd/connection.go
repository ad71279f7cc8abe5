// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jacobbramley/ist-hyt/pkg/hyt"
	"github.com/jacobbramley/ist-hyt/pkg/i2cbus"
)

// BusConn is a bus backend that can be released when the command exits
type BusConn interface {
	hyt.Bus
	io.Closer
}

// parseAddress parses the --address flag (decimal or 0x-prefixed hex)
func parseAddress() (byte, error) {
	addr, err := strconv.ParseUint(addrString, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %v", addrString, err)
	}
	if addr > 0x7F {
		return 0, fmt.Errorf("address 0x%02X is not a 7-bit I2C address", addr)
	}
	return byte(addr), nil
}

// OpenBus opens the bus backend selected by the persistent flags
func OpenBus() (BusConn, string, error) {
	addr, err := parseAddress()
	if err != nil {
		return nil, "", err
	}

	switch busName {
	case "ch347":
		bus, err := i2cbus.OpenCH347()
		if err != nil {
			return nil, "", err
		}
		return bus, "CH347 USB bridge", nil

	case "usbiss":
		if portName == "" {
			return nil, "", fmt.Errorf("--port is required with --bus usbiss")
		}
		bus, err := i2cbus.OpenUSBISS(portName, baudRate)
		if err != nil {
			return nil, "", err
		}
		return bus, fmt.Sprintf("USB-ISS on %s @ %d baud", portName, baudRate), nil

	case "i2cdev":
		bus, err := i2cbus.OpenI2CDev(devicePath)
		if err != nil {
			return nil, "", err
		}
		return bus, devicePath, nil

	case "sim":
		return i2cbus.NewSim(addr), "emulated sensor", nil

	case "":
		return nil, "", fmt.Errorf("--bus must be specified (ch347, usbiss, i2cdev or sim)")

	default:
		return nil, "", fmt.Errorf("unknown bus backend %q", busName)
	}
}

// OpenSensor opens the selected bus and constructs a sensor handle on it
func OpenSensor() (*hyt.Sensor, BusConn, string, error) {
	addr, err := parseAddress()
	if err != nil {
		return nil, nil, "", err
	}

	bus, info, err := OpenBus()
	if err != nil {
		return nil, nil, "", err
	}

	info = fmt.Sprintf("%s, address 0x%02X", info, addr)
	return hyt.NewWithAddress(bus, addr), bus, info, nil
}

// takeMeasurement runs one full measurement cycle: request, wait out the
// conversion, then poll until the sensor reports a fresh result or the
// timeout expires. The datasheet specifies 60-100ms for a conversion, but
// results are often ready after ~40ms, so polling starts early.
func takeMeasurement(sensor *hyt.Sensor, timeout time.Duration) (hyt.Measurement, error) {
	const (
		startDelay   = 30 * time.Millisecond
		pollInterval = 2 * time.Millisecond
	)

	if err := sensor.StartMeasurement(); err != nil {
		return hyt.Measurement{}, err
	}

	time.Sleep(startDelay)
	deadline := time.Now().Add(timeout)
	for {
		m, err := sensor.Read()
		if err != nil {
			return hyt.Measurement{}, err
		}
		if !m.IsStale() {
			return m, nil
		}
		if time.Now().After(deadline) {
			// Hand the stale reading back anyway; the caller decides
			// whether an old result is better than none.
			return m, fmt.Errorf("measurement not ready after %v", timeout)
		}
		time.Sleep(pollInterval)
	}
}
