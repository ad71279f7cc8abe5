// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package hyt

import "errors"

// Driver-level errors. Bus failures are reported separately, wrapped in
// WriteError or ReadError so the backend's own error remains inspectable.
var (
	// ErrMeasurementTakenInCommandMode is returned by decoding when the
	// response frame indicates the sensor is in command mode. Normal-mode
	// data cannot be fetched until the sensor returns to normal mode.
	ErrMeasurementTakenInCommandMode = errors.New("hyt: measurement taken in command mode")

	// ErrScaleValueOutOfBounds is returned when a requested scale cannot
	// represent every possible reading of the measured range. It is a
	// deterministic property of the (range, scale) pair, never of the
	// particular sample.
	ErrScaleValueOutOfBounds = errors.New("hyt: scaled value out of bounds")

	// ErrCommandModeUnsupported is returned by the mode-transition
	// operations, which are not implemented.
	ErrCommandModeUnsupported = errors.New("hyt: command mode transitions not implemented")
)

// WriteError wraps a bus error from a measurement-request write.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return "hyt: i2c write: " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ReadError wraps a bus error from a data-fetch read.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "hyt: i2c read: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
