package launchcontrol

import (
	"fmt"

	"github.com/PixPMusic/tindrivers/internal/midi"
)

type (
	// Driver is a connected Launch Control XL MK2.
	Driver        = midi.Driver[Position, Visual]
	Event         = midi.InputEvent[Position]
	OutputMessage = midi.OutputMessage[Visual]
)

var _ midi.Controller[Event, OutputMessage, Visual, Position] = (*Driver)(nil)

var profile = Profile(0)

// Profile describes the Launch Control XL MK2 to the generic driver, with LED
// updates addressed to template. Empty pushes are not transmitted, and knob
// and slider movements are coalesced per Read.
func Profile(template uint8) *midi.Profile[Position, Visual] {
	return &midi.Profile[Position, Visual]{
		Name:      DeviceName,
		Port:      DefaultPort,
		Addresses: Addresses(),
		Valid:     Valid,
		IsAnalog:  IsAnalog,
		Position:  func(addr midi.Address) Position { return Position{addr: addr} },
		Off:       func(addr midi.Address) Visual { return Off(Position{addr: addr}) },
		Validate:  Visual.Validate,
		Encode: func(visuals []Visual) ([]byte, error) {
			return Encode(template, visuals)
		},
		Coalesce: true,
	}
}

// Connect opens the first Launch Control XL MK2 found and turns every LED of
// template 0 off.
func Connect(opts ...midi.Option) (*Driver, error) {
	return ConnectTemplate(0, opts...)
}

// ConnectTemplate is Connect for LEDs of another template (0..15).
func ConnectTemplate(template uint8, opts ...midi.Option) (*Driver, error) {
	if template > MaxTemplate {
		return nil, fmt.Errorf("%s: template %d out of range 0..%d", DeviceName, template, MaxTemplate)
	}
	return midi.Connect(Profile(template), opts...)
}

// Decode turns a raw input frame into a key or analog event.
func Decode(frame []byte) (Event, bool) {
	return profile.Decode(frame)
}

// RawMessage wraps a frame to be sent unchanged.
func RawMessage(frame []byte) OutputMessage {
	return midi.Raw[Visual](frame)
}

// ColorsMessage wraps visuals to be sent as one bulk update.
func ColorsMessage(visuals ...Visual) OutputMessage {
	return midi.Colors[Visual](visuals)
}
