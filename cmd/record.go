// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
)

var (
	recordOutput   string
	recordInterval time.Duration
	recordCount    int
)

// measurementRecord is one logged reading. Integer keys keep the CBOR
// stream compact for long captures.
type measurementRecord struct {
	Timestamp      int64  `cbor:"1,keyasint"`
	HumidityRaw    uint16 `cbor:"2,keyasint"`
	TemperatureRaw uint16 `cbor:"3,keyasint"`
	Humidity       int32  `cbor:"4,keyasint"` // hundredths of %RH
	Temperature    int32  `cbor:"5,keyasint"` // hundredths of °C
	Stale          bool   `cbor:"6,keyasint"`
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Log measurements to a CBOR file",
	Long: `Periodically measure and append each reading to a file as a CBOR record.

Records carry the timestamp, the raw 14-bit samples, both readings in
hundredths, and whether the result was stale. Recording continues until
--count readings are captured, or until interrupted.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVarP(&recordOutput, "output", "o", "hyt.cbor", "Output file (appended)")
	recordCmd.Flags().DurationVarP(&recordInterval, "interval", "i", time.Second, "Time between measurements")
	recordCmd.Flags().IntVarP(&recordCount, "count", "n", 0, "Number of readings to capture (0 = until interrupted)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	sensor, bus, info, err := OpenSensor()
	if err != nil {
		return err
	}
	defer bus.Close()

	out, err := os.OpenFile(recordOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %v", recordOutput, err)
	}
	defer out.Close()

	fmt.Printf("Recording from %s to %s every %v\n", info, recordOutput, recordInterval)
	fmt.Printf("Press Ctrl+C to stop\n\n")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	enc := cbor.NewEncoder(out)
	written := 0
	ticker := time.NewTicker(recordInterval)
	defer ticker.Stop()

	for {
		m, err := takeMeasurement(sensor, recordInterval)
		if err != nil {
			log.Printf("Measurement error: %v", err)
		} else {
			humidity, herr := m.HumidityScaled(100)
			temperature, terr := m.TemperatureScaled(100)
			if herr != nil || terr != nil {
				// Unreachable with scale 100 on the fixed ranges.
				log.Printf("Scaling error: %v %v", herr, terr)
				continue
			}

			rec := measurementRecord{
				Timestamp:      time.Now().UnixMilli(),
				HumidityRaw:    m.HumidityRaw(),
				TemperatureRaw: m.TemperatureRaw(),
				Humidity:       humidity,
				Temperature:    temperature,
				Stale:          m.IsStale(),
			}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode record: %v", err)
			}

			written++
			fmt.Printf("[%d] %s %%RH  %s °C\n", written,
				formatCenti(humidity), formatCenti(temperature))

			if recordCount > 0 && written >= recordCount {
				fmt.Printf("\nCaptured %d readings\n", written)
				return nil
			}
		}

		select {
		case <-interrupt:
			fmt.Printf("\nCaptured %d readings\n", written)
			return nil
		case <-ticker.C:
		}
	}
}
