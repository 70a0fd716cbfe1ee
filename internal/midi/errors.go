package midi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPosition is matched by every *PositionError.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidVisual is matched by every *VisualError.
	ErrInvalidVisual = errors.New("invalid visual")
	// ErrDeviceNotFound is matched by every *NotFoundError.
	ErrDeviceNotFound = errors.New("midi device not found")

	ErrConnect  = errors.New("midi connect error")
	ErrSend     = errors.New("midi send error")
	ErrPortInfo = errors.New("midi port info error")

	// ErrClosed is returned by operations on a driver after Close.
	ErrClosed = errors.New("driver closed")
)

// PositionError reports a coordinate or raw address outside a device's range.
type PositionError struct {
	Device      string
	Description string
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("invalid position on device %s: %s", e.Device, e.Description)
}

func (e *PositionError) Is(target error) bool {
	return target == ErrInvalidPosition
}

// VisualError reports a colour or intensity channel outside its domain.
type VisualError struct {
	Device string
	Reason string
}

func (e *VisualError) Error() string {
	return fmt.Sprintf("invalid visual on device %s: %s", e.Device, e.Reason)
}

func (e *VisualError) Is(target error) bool {
	return target == ErrInvalidVisual
}

// NotFoundError reports that no port name contained the device substring.
type NotFoundError struct {
	Device string
	Port   string
	Err    error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("midi device not found: %s (port %q): %v", e.Device, e.Port, e.Err)
	}
	return fmt.Sprintf("midi device not found: %s (port %q)", e.Device, e.Port)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrDeviceNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failure of the underlying MIDI driver. Kind is one of
// ErrConnect, ErrSend or ErrPortInfo; Err is the driver error, unchanged.
type TransportError struct {
	Kind   error
	Device string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v on %s: %v", e.Kind, e.Device, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
