// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package hyt

import (
	"errors"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

func randomFrame(rng *rand.Rand) [4]byte {
	var raw [4]byte
	rng.Read(raw[:])
	return raw
}

func TestFuzz_NormalModeFramesAlwaysDecode(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for i := 0; i < rounds; i++ {
		raw := randomFrame(rng)
		raw[0] &^= frameCModeBit

		m, err := DecodeMeasurement(raw)
		if err != nil {
			t.Fatalf("Round %d: decode failed for %02X: %v", i, raw, err)
		}

		if m.HumidityRaw() > RawValueMax {
			t.Fatalf("Round %d: humidity raw 0x%04X exceeds 14 bits", i, m.HumidityRaw())
		}
		if m.TemperatureRaw() > RawValueMax {
			t.Fatalf("Round %d: temperature raw 0x%04X exceeds 14 bits", i, m.TemperatureRaw())
		}

		if h := m.Humidity(); h < 0 || h > 100 {
			t.Fatalf("Round %d: humidity %d outside 0..100", i, h)
		}
		if tc := m.Temperature(); tc < -40 || tc > 125 {
			t.Fatalf("Round %d: temperature %d outside -40..125", i, tc)
		}

		wantStale := raw[0]&frameStaleBit != 0
		if m.IsStale() != wantStale {
			t.Fatalf("Round %d: stale flag mismatch for %02X", i, raw)
		}
	}
}

func TestFuzz_CommandModeFramesAlwaysRejected(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for i := 0; i < rounds; i++ {
		raw := randomFrame(rng)
		raw[0] |= frameCModeBit

		if _, err := DecodeMeasurement(raw); !errors.Is(err, ErrMeasurementTakenInCommandMode) {
			t.Fatalf("Round %d: expected rejection for %02X, got %v", i, raw, err)
		}
	}
}

func TestFuzz_ScaleValidityIndependentOfRaw(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for i := 0; i < rounds; i++ {
		min := int16(rng.Intn(2000) - 1000)
		max := min + int16(rng.Intn(2000)) + 1
		scale := uint32(rng.Int63n(1 << 26))
		if scale == 0 {
			scale = 1
		}

		_, refErr := valueScaled(0, min, max, scale)
		for j := 0; j < 8; j++ {
			raw := uint16(rng.Intn(RawValueMax + 1))
			_, err := valueScaled(raw, min, max, scale)
			if (err == nil) != (refErr == nil) {
				t.Fatalf("Round %d: validity of scale=%d (min=%d max=%d) depends on raw=%d",
					i, scale, min, max, raw)
			}
		}
		_, endErr := valueScaled(RawValueMax, min, max, scale)
		if (endErr == nil) != (refErr == nil) {
			t.Fatalf("Round %d: validity differs between raw endpoints (scale=%d min=%d max=%d)",
				i, scale, min, max)
		}
	}
}

func TestFuzz_ScaledValueMonotonic(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for i := 0; i < rounds; i++ {
		min := int16(rng.Intn(2000) - 1000)
		max := min + int16(rng.Intn(2000)) + 1
		scale := uint32(rng.Int63n(100000) + 1)

		a := uint16(rng.Intn(RawValueMax + 1))
		b := uint16(rng.Intn(RawValueMax + 1))
		if a > b {
			a, b = b, a
		}

		va, errA := valueScaled(a, min, max, scale)
		vb, errB := valueScaled(b, min, max, scale)
		if errA != nil || errB != nil {
			// Scale too large for this range; validity is covered elsewhere.
			continue
		}
		if va > vb {
			t.Fatalf("Round %d: value(%d)=%d > value(%d)=%d (min=%d max=%d scale=%d)",
				i, a, va, b, vb, min, max, scale)
		}
	}
}
