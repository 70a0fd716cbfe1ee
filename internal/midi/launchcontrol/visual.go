package launchcontrol

import (
	"fmt"

	"github.com/PixPMusic/tindrivers/internal/midi"
)

// maxLevel is the brightest red or green level of the bi-colour LEDs.
const maxLevel = 3

// Visual is the desired appearance of one LED: off, or a static mix of red
// and green levels in 0..3.
type Visual struct {
	Position Position
	Lit      bool
	Red      uint8
	Green    uint8
}

// Off turns the LED off.
func Off(p Position) Visual {
	return Visual{Position: p}
}

// Static lights the LED with red and green levels in 0..3.
func Static(p Position, red, green uint8) Visual {
	return Visual{Position: p, Lit: true, Red: red, Green: green}
}

// Approximate lights the LED with the closest red/green mix of an RGB colour
// (0..127 per channel). Blue is folded mostly into green, a little into red,
// to keep its brightness.
func Approximate(p Position, r, g, b uint8) Visual {
	effectiveR := min(int(r)+int(b)/4, 127)
	effectiveG := min(int(g)+(int(b)*3)/4, 127)

	return Static(p, levelOf(uint8(effectiveR)), levelOf(uint8(effectiveG)))
}

// levelOf maps 0..127 onto the four LED levels.
func levelOf(value uint8) uint8 {
	switch {
	case value < 32:
		return 0
	case value < 64:
		return 1
	case value < 96:
		return 2
	default:
		return 3
	}
}

// Address implements midi.Visual.
func (v Visual) Address() midi.Address {
	return v.Position.Address()
}

// IsDefault reports whether the visual renders as off.
func (v Visual) IsDefault() bool {
	return !v.Lit || (v.Red == 0 && v.Green == 0)
}

// Validate checks the LED address and that both levels are within 0..3. An
// unlit visual must carry zero levels.
func (v Visual) Validate() error {
	if !Valid(v.Address()) {
		return invalidPosition(fmt.Sprintf("%d", v.Address()))
	}
	if !v.Lit {
		if v.Red != 0 || v.Green != 0 {
			return &midi.VisualError{Device: DeviceName, Reason: fmt.Sprintf("Off visual with levels: %d, %d", v.Red, v.Green)}
		}
		return nil
	}
	if v.Red > maxLevel {
		return &midi.VisualError{Device: DeviceName, Reason: fmt.Sprintf("Invalid red value: %d", v.Red)}
	}
	if v.Green > maxLevel {
		return &midi.VisualError{Device: DeviceName, Reason: fmt.Sprintf("Invalid green value: %d", v.Green)}
	}
	return nil
}

func (v Visual) String() string {
	if !v.Lit {
		return fmt.Sprintf("Off(%v)", v.Position)
	}
	return fmt.Sprintf("Static(%v, %d, %d)", v.Position, v.Red, v.Green)
}
