// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package i2cbus

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jacobbramley/ist-hyt/pkg/hyt"
)

var _ hyt.Bus = (*Sim)(nil)

// Sim emulates a HYT module in normal mode, for tests and for exercising
// the CLI without hardware. It follows the sensor's MR/DF protocol: a
// zero-length write arms a fresh result, each fetch returns the current
// frame, and a repeated fetch reports the stale flag. Readings drift with
// a small random walk on every measurement request.
type Sim struct {
	mu          sync.Mutex
	addr        byte
	humidity    uint16 // raw 14-bit
	temperature uint16 // raw 14-bit
	fresh       bool
	rng         *rand.Rand
}

// NewSim creates an emulated sensor at addr, starting around 55%RH and
// 21°C.
func NewSim(addr byte) *Sim {
	return &Sim{
		addr:        addr,
		humidity:    9011, // ~55 %RH
		temperature: 6057, // ~21 °C
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRaw pins the emulated raw samples, for deterministic tests. The next
// fetch after a measurement request returns exactly these values.
func (s *Sim) SetRaw(humidity, temperature uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.humidity = humidity & hyt.RawValueMax
	s.temperature = temperature & hyt.RawValueMax
	s.rng = nil // disable drift once pinned
}

// Write accepts only the measurement request: a zero-length write at the
// configured address. Anything else is answered like a missing device.
func (s *Sim) Write(addr byte, p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if addr != s.addr {
		return fmt.Errorf("i2cbus: sim: no device at 0x%02X", addr)
	}
	if len(p) != 0 {
		return fmt.Errorf("i2cbus: sim: unexpected %d-byte write in normal mode", len(p))
	}

	s.drift()
	s.fresh = true
	return nil
}

// Read returns the current frame. Short reads receive a prefix of the
// frame, as the real sensor allows.
func (s *Sim) Read(addr byte, p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if addr != s.addr {
		return fmt.Errorf("i2cbus: sim: no device at 0x%02X", addr)
	}
	if len(p) > hyt.FrameSize {
		return fmt.Errorf("i2cbus: sim: read of %d bytes exceeds frame size", len(p))
	}

	var frame [hyt.FrameSize]byte
	frame[0] = byte(s.humidity >> 8)
	frame[1] = byte(s.humidity)
	frame[2] = byte(s.temperature >> 6)
	frame[3] = byte(s.temperature << 2)
	if !s.fresh {
		frame[0] |= 0x40
	}
	s.fresh = false

	copy(p, frame[:len(p)])
	return nil
}

// Close is a no-op; it exists so Sim satisfies the same surface as the
// hardware backends.
func (s *Sim) Close() error {
	return nil
}

// drift applies a small bounded random walk to both readings.
func (s *Sim) drift() {
	if s.rng == nil {
		return
	}
	s.humidity = walk(s.rng, s.humidity, 48)
	s.temperature = walk(s.rng, s.temperature, 16)
}

func walk(rng *rand.Rand, v uint16, step int) uint16 {
	next := int(v) + rng.Intn(2*step+1) - step
	if next < 0 {
		next = 0
	}
	if next > hyt.RawValueMax {
		next = hyt.RawValueMax
	}
	return uint16(next)
}
