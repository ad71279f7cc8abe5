// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package hyt

// Bus is the blocking byte transport the driver talks through. Both calls
// address the device directly; there is no register selection in the HYT
// protocol. Implementations must transfer the whole buffer or fail - no
// partial transfers.
//
// The pkg/i2cbus package provides implementations for common adapters.
type Bus interface {
	// Write performs an I²C write of p to the device at addr. p may be
	// empty, which is a bare address write.
	Write(addr byte, p []byte) error

	// Read performs an I²C read of len(p) bytes from the device at addr
	// into p.
	Read(addr byte, p []byte) error
}

// core is the transport-owning state shared by both mode handles.
type core struct {
	bus  Bus
	addr byte
}

// Sensor is a handle to a HYT module in normal mode, the mode used for
// starting and fetching measurements. It owns its bus exclusively and is
// not safe for concurrent use: a torn transaction would corrupt the
// protocol framing.
type Sensor struct {
	core
}

// CommandSensor is a handle to a HYT module in command mode, the mode used
// for configuration such as changing the I²C address. Measurement
// operations are unavailable on it.
//
// There is currently no way to obtain one: see Sensor.EnterCommandMode.
type CommandSensor struct {
	core
}

// New constructs a normal-mode handle using the factory-default I²C
// address (0x28).
func New(bus Bus) *Sensor {
	return NewWithAddress(bus, DefaultAddress)
}

// NewWithAddress constructs a normal-mode handle for a sensor that has been
// reconfigured to a non-default I²C address.
func NewWithAddress(bus Bus, addr byte) *Sensor {
	return &Sensor{core{bus: bus, addr: addr}}
}

// Address returns the I²C address the handle talks to.
func (s *Sensor) Address() byte {
	return s.addr
}

// StartMeasurement asks the sensor to begin a new measurement ("MR"). It
// performs a single zero-length write and returns without waiting for the
// conversion, which the datasheet specifies at 60-100ms (often less in
// practice). The caller decides when and how often to call Read.
//
// If the previous result was never fetched, the sensor cannot signal when
// this measurement completes: the next fetch may carry the old reading
// without it appearing stale. Fetch before starting if that matters.
func (s *Sensor) StartMeasurement() error {
	if err := s.bus.Write(s.addr, nil); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// Read fetches the most recent measurement from the sensor ("DF") with a
// single four-byte read. If a recently-started measurement has not yet
// completed, the sensor repeats the previous result and marks it stale.
func (s *Sensor) Read() (Measurement, error) {
	var raw [FrameSize]byte
	if err := s.bus.Read(s.addr, raw[:]); err != nil {
		return Measurement{}, &ReadError{Err: err}
	}
	return DecodeMeasurement(raw)
}

// EnterCommandMode attempts to switch the sensor into command mode,
// consuming the normal-mode handle on success.
//
// The sensor only accepts the transition within 10ms of power-on, and the
// sensor may have been powered long before the host program started (a
// debugger reset, for example, does not cycle sensor power), so a correct
// implementation needs externally-verified power sequencing. Until that
// exists this always fails with ErrCommandModeUnsupported, and the
// receiver remains a valid normal-mode handle.
func (s *Sensor) EnterCommandMode() (*CommandSensor, error) {
	return nil, ErrCommandModeUnsupported
}

// EnterNormalMode attempts to return the sensor to normal mode, consuming
// the command-mode handle on success. Like EnterCommandMode it always
// fails with ErrCommandModeUnsupported, leaving the receiver valid.
func (c *CommandSensor) EnterNormalMode() (*Sensor, error) {
	return nil, ErrCommandModeUnsupported
}
