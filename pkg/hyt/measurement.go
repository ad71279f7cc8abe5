// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package hyt

import "math"

// Measurement is a single validated data-fetch response, holding both a
// humidity and a temperature reading plus the stale flag. It is an
// immutable value; the raw frame bytes are kept as received and fields are
// extracted on demand by the accessor methods.
type Measurement struct {
	raw [FrameSize]byte
}

// DecodeMeasurement validates a raw data-fetch frame.
//
// It fails with ErrMeasurementTakenInCommandMode if the frame's CMode bit
// is set, meaning the sensor responded in command mode when normal-mode
// data was expected. Every other bit pattern is considered valid; the two
// unused bits of byte 3 are ignored.
func DecodeMeasurement(raw [FrameSize]byte) (Measurement, error) {
	if raw[0]&frameCModeBit != 0 {
		return Measurement{}, ErrMeasurementTakenInCommandMode
	}
	return Measurement{raw: raw}, nil
}

// IsStale reports whether this reading had already been fetched from the
// sensor. That typically means a pending measurement was not yet complete
// at fetch time, so the sensor returned the previous result again.
//
// Staleness is decided by the sensor at the moment of the fetch
// transaction. It is a fixed property of the decoded value and has nothing
// to do with how long the Measurement has existed since.
func (m Measurement) IsStale() bool {
	return m.raw[0]&frameStaleBit != 0
}

// HumidityRaw extracts the raw 14-bit humidity sample, in [0, 16383].
func (m Measurement) HumidityRaw() uint16 {
	return uint16(m.raw[0]&frameHumidityMSB)<<8 | uint16(m.raw[1])
}

// TemperatureRaw extracts the raw 14-bit temperature sample, in [0, 16383].
func (m Measurement) TemperatureRaw() uint16 {
	return uint16(m.raw[2])<<6 | uint16(m.raw[3])>>2
}

// HumidityScaled calculates the relative humidity in %RH, multiplied by
// scale and rounded to the nearest integer. A scale of 100 yields
// hundredths of a percent, which makes decimal formatting cheap.
//
// If scale is too large for every possible reading to be represented, this
// returns ErrScaleValueOutOfBounds, even if the particular reading at hand
// could be. A given scale therefore either always works or always fails.
func (m Measurement) HumidityScaled(scale uint32) (int32, error) {
	return valueScaled(m.HumidityRaw(), humidityMin, humidityMax, scale)
}

// TemperatureScaled calculates the temperature in °C, multiplied by scale
// and rounded to the nearest integer. See HumidityScaled for the scale and
// error semantics.
func (m Measurement) TemperatureScaled(scale uint32) (int32, error) {
	return valueScaled(m.TemperatureRaw(), temperatureMin, temperatureMax, scale)
}

// Humidity calculates the relative humidity in %RH, rounded to the nearest
// integer.
func (m Measurement) Humidity() int32 {
	// Scale 1 cannot overflow the 0..100 range.
	v, _ := m.HumidityScaled(1)
	return v
}

// Temperature calculates the temperature in °C, rounded to the nearest
// integer.
func (m Measurement) Temperature() int32 {
	// Scale 1 cannot overflow the -40..125 range.
	v, _ := m.TemperatureScaled(1)
	return v
}

// valueScaled maps a 14-bit raw sample onto [min, max], scaled by scale and
// rounded to nearest (half away from zero on the positive numerator).
//
// The multiplication happens before the division to preserve precision, so
// the intermediates are kept in 64 bits; they cannot overflow for any scale
// up to well beyond 2^24. Before computing the requested value, the
// worst-case result (raw = 16383) is checked against the int32 output
// range; if it does not fit, ErrScaleValueOutOfBounds is returned without
// looking at the actual sample. Callers can rely on a scale's validity
// being independent of the reading.
//
// Arguments outside the documented preconditions (max <= min, raw above 14
// bits) are contract violations and panic.
func valueScaled(raw uint16, min, max int16, scale uint32) (int32, error) {
	if max <= min {
		panic("hyt: valueScaled requires max > min")
	}
	if raw > RawValueMax {
		panic("hyt: raw sample exceeds 14 bits")
	}

	rng := uint32(int32(max) - int32(min))
	minScaled := int64(scale) * int64(min)
	const round = uint64(RawValueMax / 2)

	// raw*rng fits in 32 bits: 16383 * 65535 < 2^31.
	num := uint64(scale)*uint64(uint32(raw)*rng) + round
	maxNum := uint64(scale)*uint64(uint32(RawValueMax)*rng) + round

	// Check that all possible readings are representable.
	worst := int64(maxNum/RawValueMax) + minScaled
	if worst > math.MaxInt32 || worst < math.MinInt32 {
		return 0, ErrScaleValueOutOfBounds
	}

	// The actual calculation is now infallible.
	return int32(int64(num/RawValueMax) + minScaled), nil
}
