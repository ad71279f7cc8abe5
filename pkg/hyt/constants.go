// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

// Package hyt drives IST AG HYT-series humidity and temperature sensor
// modules (HYT221, HYT271, HYT939) over an I²C-compatible bus.
//
// The sensors speak a simple two-transaction protocol: a zero-length write
// ("MR", measurement request) starts a conversion, and a four-byte read
// ("DF", data fetch) returns the most recent result. Each driver operation
// performs exactly one blocking bus transaction; all timing between the
// request and the fetch is left to the caller. A wedged bus can therefore
// block an operation indefinitely - this package cannot guarantee liveness
// in that case.
//
// Conversion to physical units is integer-only. Results are available
// rounded to the nearest unit or multiplied by a caller-chosen scale for
// fixed-point style formatting.
package hyt

// DefaultAddress is the factory-default I²C address of HYT modules.
// It can be changed in command mode, which this package does not support.
const DefaultAddress = 0x28

// FrameSize is the length of a data-fetch response.
const FrameSize = 4

// RawValueMax is the largest 14-bit raw sample.
const RawValueMax = 0x3FFF

// Response frame layout:
//
//	Byte0: [CMode(1) | Stale(1) | Humidity<13:8>(6)]
//	Byte1: [Humidity<7:0>(8)]
//	Byte2: [Temperature<13:6>(8)]
//	Byte3: [Temperature<5:0>(6) | Unused(2)]
const (
	frameCModeBit    = 0b1000_0000
	frameStaleBit    = 0b0100_0000
	frameHumidityMSB = 0b0011_1111
)

// Physical ranges the 14-bit raw samples map onto.
const (
	humidityMin    = 0   // %RH
	humidityMax    = 100 // %RH
	temperatureMin = -40 // °C
	temperatureMax = 125 // °C
)
