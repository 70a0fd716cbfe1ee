// Package launchpad drives the Novation Launchpad Mini MK3 in programmer mode.
//
// Pads are addressed by their programmer-mode LED index: the bottom-left pad
// is 11, the top-right logo is 99, and every row of ten skips its multiple of
// ten.
package launchpad

import (
	"fmt"
	"strconv"

	"github.com/PixPMusic/tindrivers/internal/midi"
)

const (
	// DeviceName identifies the device in errors and logs.
	DeviceName = "Launchpad Mini MK3"
	// DefaultPort matches the MK3's MIDI port (as opposed to its DAW port).
	DefaultPort = "LPMiniMK3 MIDI"
)

// Position is a validated pad address. Positions built from different
// coordinates compare equal when they name the same pad.
type Position struct {
	addr midi.Address
}

// Named buttons around the grid.
var (
	Up           = Position{addr: 91}
	Down         = Position{addr: 92}
	Left         = Position{addr: 93}
	Right        = Position{addr: 94}
	Session      = Position{addr: 95}
	Drums        = Position{addr: 96}
	Keys         = Position{addr: 97}
	User         = Position{addr: 98}
	Logo         = Position{addr: 99}
	StopSoloMute = Position{addr: 19}
)

var names = map[midi.Address]string{
	91: "Up",
	92: "Down",
	93: "Left",
	94: "Right",
	95: "Session",
	96: "Drums",
	97: "Keys",
	98: "User",
	99: "Logo",
	19: "StopSoloMute",
}

// Raw returns the position of a raw LED index in [11,99], excluding multiples
// of ten.
func Raw(addr uint8) (Position, error) {
	if !Valid(midi.Address(addr)) {
		return Position{}, invalidPosition(strconv.Itoa(int(addr)))
	}
	return Position{addr: midi.Address(addr)}, nil
}

// Grid returns the pad in column x (1..9, left to right) and row y (0..8, top
// to bottom). Row 0 holds the arrow and mode buttons, column 9 the scene
// buttons.
func Grid(x, y uint8) (Position, error) {
	if x < 1 || x > 9 || y > 8 {
		return Position{}, invalidPosition(fmt.Sprintf("(%d, %d)", x, y))
	}
	return Position{addr: midi.Address((9-y)*10 + x)}, nil
}

// Valid reports whether addr is a pad of the device.
func Valid(addr midi.Address) bool {
	return addr >= 11 && addr <= 99 && addr%10 != 0
}

// Addresses returns every pad address, ascending.
func Addresses() []midi.Address {
	addrs := make([]midi.Address, 0, 81)
	for row := midi.Address(1); row <= 9; row++ {
		for col := midi.Address(1); col <= 9; col++ {
			addrs = append(addrs, row*10+col)
		}
	}
	return addrs
}

// Address implements midi.Position.
func (p Position) Address() midi.Address {
	return p.addr
}

// Coordinates returns the Grid coordinates of the pad.
func (p Position) Coordinates() (x, y uint8) {
	return uint8(p.addr % 10), 9 - uint8(p.addr/10)
}

func (p Position) String() string {
	if !Valid(p.addr) {
		return fmt.Sprintf("Invalid(%d)", p.addr)
	}
	if name, ok := names[p.addr]; ok {
		return name
	}
	x, y := p.Coordinates()
	return fmt.Sprintf("Grid(%d, %d)", x, y)
}

func invalidPosition(desc string) error {
	return &midi.PositionError{Device: DeviceName, Description: desc}
}
