// Package launchcontrol drives the Novation Launch Control XL MK2.
//
// Addresses follow the device's LED indices: 24 knobs (0..23), 16 bottom
// buttons (24..39), the Device/Mute/Solo/Record and arrow buttons (40..47) and
// 8 sliders (48..55). Knobs and sliders are analog; everything in [24,48) is a
// button.
package launchcontrol

import (
	"fmt"
	"strconv"

	"github.com/PixPMusic/tindrivers/internal/midi"
)

const (
	// DeviceName identifies the device in errors and logs.
	DeviceName = "Launch Control XL MK2"
	// DefaultPort matches the device's MIDI port name.
	DefaultPort = "Launch Control XL"

	maxAddress = 55
)

// Position is a validated control address.
type Position struct {
	addr midi.Address
}

// Named buttons on the right-hand side.
var (
	Device = Position{addr: 40}
	Mute   = Position{addr: 41}
	Solo   = Position{addr: 42}
	Record = Position{addr: 43}
	Up     = Position{addr: 44}
	Down   = Position{addr: 45}
	Left   = Position{addr: 46}
	Right  = Position{addr: 47}
)

var names = map[midi.Address]string{
	40: "Device",
	41: "Mute",
	42: "Solo",
	43: "Record",
	44: "Up",
	45: "Down",
	46: "Left",
	47: "Right",
}

// Raw returns the position of a raw address in [0,55].
func Raw(addr uint8) (Position, error) {
	if !Valid(midi.Address(addr)) {
		return Position{}, invalidPosition(strconv.Itoa(int(addr)))
	}
	return Position{addr: midi.Address(addr)}, nil
}

// Knob returns the knob in column x (1..8) and row y (1..3, top to bottom).
func Knob(x, y uint8) (Position, error) {
	if x < 1 || x > 8 || y < 1 || y > 3 {
		return Position{}, invalidPosition(fmt.Sprintf("Knob (%d, %d)", x, y))
	}
	return Position{addr: midi.Address((y-1)*8 + (x - 1))}, nil
}

// Slider returns slider n (1..8).
func Slider(n uint8) (Position, error) {
	if n < 1 || n > 8 {
		return Position{}, invalidPosition(fmt.Sprintf("Slider %d", n))
	}
	return Position{addr: midi.Address(47 + n)}, nil
}

// Bottom returns the button in column x (1..8) of the bottom rows y (1..2).
func Bottom(x, y uint8) (Position, error) {
	if x < 1 || x > 8 || y < 1 || y > 2 {
		return Position{}, invalidPosition(fmt.Sprintf("Bottom (%d, %d)", x, y))
	}
	return Position{addr: midi.Address(24 + (y-1)*8 + (x - 1))}, nil
}

// Valid reports whether addr is a control of the device.
func Valid(addr midi.Address) bool {
	return addr <= maxAddress
}

// IsAnalog reports whether addr is a knob or slider.
func IsAnalog(addr midi.Address) bool {
	return addr < 24 || addr >= 48
}

// Addresses returns every control address, ascending.
func Addresses() []midi.Address {
	addrs := make([]midi.Address, 0, maxAddress+1)
	for addr := midi.Address(0); addr <= maxAddress; addr++ {
		addrs = append(addrs, addr)
	}
	return addrs
}

// Address implements midi.Position.
func (p Position) Address() midi.Address {
	return p.addr
}

// IsAnalog reports whether the position is a knob or slider.
func (p Position) IsAnalog() bool {
	return IsAnalog(p.addr)
}

func (p Position) String() string {
	a := p.addr
	switch {
	case a > maxAddress:
		return fmt.Sprintf("Invalid(%d)", a)
	case a < 24:
		return fmt.Sprintf("Knob(%d, %d)", a%8+1, a/8+1)
	case a < 40:
		return fmt.Sprintf("Bottom(%d, %d)", (a-24)%8+1, (a-24)/8+1)
	case a < 48:
		return names[a]
	default:
		return fmt.Sprintf("Slider(%d)", a-47)
	}
}

func invalidPosition(desc string) error {
	return &midi.PositionError{Device: DeviceName, Description: desc}
}
