// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var measureTimeout time.Duration

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Take a single measurement and print it",
	Long: `Request one measurement, wait for the sensor to finish converting, and
print the result.

The sensor needs 60-100ms for a conversion. This command polls until the
result is fresh; if the sensor keeps returning the stale flag past the
timeout, the command fails.`,
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)
	measureCmd.Flags().DurationVar(&measureTimeout, "timeout", 500*time.Millisecond, "How long to wait for a fresh result")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	sensor, bus, info, err := OpenSensor()
	if err != nil {
		return err
	}
	defer bus.Close()

	fmt.Printf("Sensor: %s\n", info)

	start := time.Now()
	m, err := takeMeasurement(sensor, measureTimeout)
	if err != nil {
		return err
	}
	elapsed := time.Since(start).Round(time.Millisecond)

	humidity, err := m.HumidityScaled(100)
	if err != nil {
		return err
	}
	temperature, err := m.TemperatureScaled(100)
	if err != nil {
		return err
	}

	fmt.Printf("Result after %v:\n", elapsed)
	fmt.Printf("     Humidity: %s %%RH (%d rounded, raw 0x%04X)\n",
		formatCenti(humidity), m.Humidity(), m.HumidityRaw())
	fmt.Printf("  Temperature: %s °C (%d rounded, raw 0x%04X)\n",
		formatCenti(temperature), m.Temperature(), m.TemperatureRaw())
	return nil
}
