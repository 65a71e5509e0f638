// Package picerr defines the fatal error kinds raised by the simulation
// kernel. None of them are recovered mid-step: a caller that sees one of
// these from region.World.Step should abort the run.
package picerr

import "fmt"

// ConfigError reports an invalid configuration discovered before the
// simulation starts (bad laser parameters, non-divisible tile size,
// y_hi <= y_lo, ...).
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// Config constructs a ConfigError.
func Config(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// AllocError reports failure to grow particle storage or scratch buffers.
type AllocError struct {
	What string
	Msg  string
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("alloc: %s: %s", e.What, e.Msg)
}

// Alloc constructs an AllocError.
func Alloc(what, format string, args ...interface{}) error {
	return &AllocError{What: what, Msg: fmt.Sprintf(format, args...)}
}

// NumericOverrunError reports a particle that crossed more than one cell
// in a single step: a CFL violation.
type NumericOverrunError struct {
	Species string
	Index   int
	DI, DJ  int
}

func (e *NumericOverrunError) Error() string {
	return fmt.Sprintf("numeric overrun: species %s particle %d crossed di=%d dj=%d in one step (CFL violation)",
		e.Species, e.Index, e.DI, e.DJ)
}

// NumericOverrun constructs a NumericOverrunError.
func NumericOverrun(species string, index, di, dj int) error {
	return &NumericOverrunError{Species: species, Index: index, DI: di, DJ: dj}
}

// CapacityExceededError reports an incoming/outgoing transfer buffer
// overflow. Headroom should have been pre-reserved; this is fatal because
// it means the reservation was wrong, not that more memory would help
// mid-step.
type CapacityExceededError struct {
	Buffer   string
	Size     int
	Capacity int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded: %s size %d > capacity %d", e.Buffer, e.Size, e.Capacity)
}

// CapacityExceeded constructs a CapacityExceededError.
func CapacityExceeded(buffer string, size, capacity int) error {
	return &CapacityExceededError{Buffer: buffer, Size: size, Capacity: capacity}
}
