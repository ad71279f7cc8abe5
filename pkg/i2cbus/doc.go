// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

// Package i2cbus provides I²C transport backends for the hyt driver.
//
// Each backend implements the hyt.Bus contract (blocking whole-buffer
// writes and reads addressed by a 7-bit device address) plus io.Closer:
//
//   - CH347: WCH CH347 USB bridge in HID mode
//   - USBISS: Devantech USB-ISS adapter on a serial port
//   - I2CDev: Linux /dev/i2c-N character devices
//   - Sim: an in-memory sensor emulator for tests and demos
package i2cbus
