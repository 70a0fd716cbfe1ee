package midi

import "fmt"

// Address is the flat raw address of one physical control on a device.
type Address uint8

// Status bytes accepted on input frames (MIDI channel 1).
const (
	StatusNoteOn        byte = 0x90
	StatusControlChange byte = 0xB0

	// maxData is the largest MIDI data byte
	maxData byte = 0x7F
)

// Position is a validated location on a device. Two positions are equal iff
// their raw addresses are equal, which holds for plain struct equality as long
// as the position only stores its address.
type Position interface {
	comparable
	Address() Address
}

// Visual describes the desired appearance of one address.
type Visual interface {
	comparable
	Address() Address
	// IsDefault reports whether the visual renders as "off" on the device
	IsDefault() bool
}

// PhysicalState is the last known input value of a control: either a binary
// pressed/released flag or an analog value in 0..127.
type PhysicalState struct {
	analog bool
	value  uint8
}

// Binary returns the state of a button.
func Binary(pressed bool) PhysicalState {
	if pressed {
		return PhysicalState{value: 1}
	}
	return PhysicalState{}
}

// Analog returns the state of a knob or slider.
func Analog(value uint8) PhysicalState {
	return PhysicalState{analog: true, value: value}
}

// IsAnalog reports whether the state belongs to an analog control.
func (s PhysicalState) IsAnalog() bool {
	return s.analog
}

// Pressed reports whether a binary control is held down. It is always false for
// analog states.
func (s PhysicalState) Pressed() bool {
	return !s.analog && s.value != 0
}

// Value returns the analog value, or 0/1 for binary states.
func (s PhysicalState) Value() uint8 {
	return s.value
}

func (s PhysicalState) String() string {
	if s.analog {
		return fmt.Sprintf("Analog(%d)", s.value)
	}
	return fmt.Sprintf("Binary(%t)", s.value != 0)
}

// EventKind classifies a decoded input frame.
type EventKind int

const (
	EventKeyPressed EventKind = iota + 1
	EventKeyReleased
	EventAnalog
)

func (k EventKind) String() string {
	switch k {
	case EventKeyPressed:
		return "pressed"
	case EventKeyReleased:
		return "released"
	case EventAnalog:
		return "analog"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// InputEvent is a typed input event for a device whose positions are P.
// Value is only meaningful for EventAnalog.
type InputEvent[P Position] struct {
	Kind     EventKind
	Position P
	Value    uint8
}

// State returns the physical state the event leaves its control in.
func (e InputEvent[P]) State() PhysicalState {
	switch e.Kind {
	case EventKeyPressed:
		return Binary(true)
	case EventAnalog:
		return Analog(e.Value)
	default:
		return Binary(false)
	}
}
