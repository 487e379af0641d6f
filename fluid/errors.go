package fluid

import (
	"errors"
	"fmt"
)

// ErrDeviceTransient marks a frame that failed on the compute device. The
// pipeline keeps the last completed frame and the caller may simply retry.
var ErrDeviceTransient = errors.New("transient device failure")

// ErrStaleView is returned when a DensityView is read after the next frame
// has started.
var ErrStaleView = errors.New("density view used after the next frame started")

// ConfigError reports an invalid session or frame parameter.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// DeviceError wraps a backend failure for one frame. It matches
// ErrDeviceTransient under errors.Is.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() []error {
	return []error{ErrDeviceTransient, e.Err}
}

func deviceErr(op string, err error) error {
	return &DeviceError{Op: op, Err: err}
}
