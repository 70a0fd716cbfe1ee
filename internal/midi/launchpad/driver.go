package launchpad

import "github.com/PixPMusic/tindrivers/internal/midi"

type (
	// Driver is a connected Launchpad Mini MK3.
	Driver        = midi.Driver[Position, Visual]
	Event         = midi.InputEvent[Position]
	OutputMessage = midi.OutputMessage[Visual]
)

var _ midi.Controller[Event, OutputMessage, Visual, Position] = (*Driver)(nil)

var profile = Profile()

// Profile describes the Launchpad Mini MK3 to the generic driver. The device
// always receives a bulk-update frame on Push, even an empty one.
func Profile() *midi.Profile[Position, Visual] {
	return &midi.Profile[Position, Visual]{
		Name:      DeviceName,
		Port:      DefaultPort,
		Addresses: Addresses(),
		Valid:     Valid,
		Position:  func(addr midi.Address) Position { return Position{addr: addr} },
		Off:       func(addr midi.Address) Visual { return Off(Position{addr: addr}) },
		Validate:  Visual.Validate,
		Encode:    Encode,
		Init:      [][]byte{dawModeOff, programmerMode},
		PushEmpty: true,
	}
}

// Connect opens the first Launchpad Mini MK3 found, puts it in programmer mode
// and turns every pad off.
func Connect(opts ...midi.Option) (*Driver, error) {
	return midi.Connect(Profile(), opts...)
}

// Decode turns a raw input frame into a key event.
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
