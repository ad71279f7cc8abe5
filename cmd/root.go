// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Bus selection flags
	busName    string
	portName   string
	baudRate   int
	devicePath string
	addrString string
)

var rootCmd = &cobra.Command{
	Use:   "hyt",
	Short: "HYT-series humidity/temperature sensor tool",
	Long: `hyt - A CLI tool for IST AG HYT-series humidity and temperature sensors
(HYT221, HYT271, HYT939).

Provides one-shot and continuous measurement, CBOR logging, and a WebSocket
telemetry endpoint.

Bus backends:
  CH347 USB bridge:  --bus ch347
  USB-ISS adapter:   --bus usbiss --port /dev/ttyACM0
  Linux i2c-dev:     --bus i2cdev [--device /dev/i2c-1]
  Emulated sensor:   --bus sim

Sensors ship on address 0x28; pass --address if yours has been
reconfigured in command mode.`,
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&busName, "bus", "", "Bus backend: ch347, usbiss, i2cdev or sim")
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device (usbiss only)")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 19200, "Baud rate (usbiss only)")
	rootCmd.PersistentFlags().StringVarP(&devicePath, "device", "d", "/dev/i2c-1", "I2C character device (i2cdev only)")
	rootCmd.PersistentFlags().StringVarP(&addrString, "address", "a", "0x28", "Sensor I2C address")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
