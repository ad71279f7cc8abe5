// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package i2cbus

import (
	"testing"

	"github.com/jacobbramley/ist-hyt/pkg/hyt"
)

func TestSim_MeasurementCycle(t *testing.T) {
	sim := NewSim(hyt.DefaultAddress)
	sim.SetRaw(0x2000, 0x1000)
	sensor := hyt.New(sim)

	if err := sensor.StartMeasurement(); err != nil {
		t.Fatalf("StartMeasurement error: %v", err)
	}

	m, err := sensor.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if m.IsStale() {
		t.Error("First fetch after a request should be fresh")
	}
	if m.HumidityRaw() != 0x2000 {
		t.Errorf("HumidityRaw: expected 0x2000, got 0x%04X", m.HumidityRaw())
	}
	if m.TemperatureRaw() != 0x1000 {
		t.Errorf("TemperatureRaw: expected 0x1000, got 0x%04X", m.TemperatureRaw())
	}

	// A second fetch without a new request repeats the result as stale.
	m, err = sensor.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if !m.IsStale() {
		t.Error("Repeated fetch should be stale")
	}
	if m.HumidityRaw() != 0x2000 {
		t.Errorf("Stale fetch changed the reading: 0x%04X", m.HumidityRaw())
	}

	// A new request makes the next fetch fresh again.
	if err := sensor.StartMeasurement(); err != nil {
		t.Fatalf("StartMeasurement error: %v", err)
	}
	m, err = sensor.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if m.IsStale() {
		t.Error("Fetch after a new request should be fresh")
	}
}

func TestSim_WrongAddress(t *testing.T) {
	sim := NewSim(hyt.DefaultAddress)

	if err := sim.Write(0x44, nil); err == nil {
		t.Error("Write to an absent address should fail")
	}
	buf := make([]byte, hyt.FrameSize)
	if err := sim.Read(0x44, buf); err == nil {
		t.Error("Read from an absent address should fail")
	}
}

func TestSim_RejectsDataWrites(t *testing.T) {
	sim := NewSim(hyt.DefaultAddress)

	if err := sim.Write(hyt.DefaultAddress, []byte{0xA0}); err == nil {
		t.Error("Normal mode accepts only zero-length writes")
	}
}

func TestSim_DriftStaysInRange(t *testing.T) {
	sim := NewSim(hyt.DefaultAddress)
	sensor := hyt.New(sim)

	for i := 0; i < 500; i++ {
		if err := sensor.StartMeasurement(); err != nil {
			t.Fatalf("StartMeasurement error: %v", err)
		}
		m, err := sensor.Read()
		if err != nil {
			t.Fatalf("Read error: %v", err)
		}
		if h := m.Humidity(); h < 0 || h > 100 {
			t.Fatalf("Humidity %d outside 0..100", h)
		}
		if tc := m.Temperature(); tc < -40 || tc > 125 {
			t.Fatalf("Temperature %d outside -40..125", tc)
		}
	}
}

func TestSim_ShortRead(t *testing.T) {
	sim := NewSim(hyt.DefaultAddress)
	sim.SetRaw(0x1234, 0)

	if err := sim.Write(hyt.DefaultAddress, nil); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	// The sensor permits fetching just the humidity bytes.
	buf := make([]byte, 2)
	if err := sim.Read(hyt.DefaultAddress, buf); err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if buf[0] != 0x12 || buf[1] != 0x34 {
		t.Errorf("Expected humidity prefix 12 34, got %02X %02X", buf[0], buf[1])
	}
}
