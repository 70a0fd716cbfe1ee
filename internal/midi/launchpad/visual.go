package launchpad

import (
	"fmt"

	"github.com/PixPMusic/tindrivers/internal/midi"
)

// Kind is the lighting type of a pad.
type Kind uint8

const (
	KindOff Kind = iota
	KindStatic
	KindFlashing
	KindPulsing
	KindRGB
)

// maxChannel is the largest value a 7-bit SysEx data byte can carry.
const maxChannel = 0x7F

// Visual is the desired appearance of one pad. Channels holds the palette
// index (Static, Pulsing), the two palette indices (Flashing) or red, green
// and blue (RGB); unused channels are zero.
type Visual struct {
	Kind     Kind
	Position Position
	Channels [3]uint8
}

// Off turns the pad off.
func Off(p Position) Visual {
	return Visual{Kind: KindOff, Position: p}
}

// Static lights the pad with a palette colour.
func Static(p Position, color uint8) Visual {
	return Visual{Kind: KindStatic, Position: p, Channels: [3]uint8{color}}
}

// Flashing alternates between palette colours a and b.
func Flashing(p Position, a, b uint8) Visual {
	return Visual{Kind: KindFlashing, Position: p, Channels: [3]uint8{a, b}}
}

// Pulsing fades a palette colour in and out.
func Pulsing(p Position, color uint8) Visual {
	return Visual{Kind: KindPulsing, Position: p, Channels: [3]uint8{color}}
}

// RGB lights the pad with red, green and blue in 0..127.
func RGB(p Position, r, g, b uint8) Visual {
	return Visual{Kind: KindRGB, Position: p, Channels: [3]uint8{r, g, b}}
}

// GammaRGB is RGB with a square curve applied to each channel so that
// mid-range colours stay distinct on the pads. Channels above 127 are left
// for Validate to reject.
func GammaRGB(p Position, r, g, b uint8) Visual {
	return RGB(p, gamma(r), gamma(g), gamma(b))
}

func gamma(value uint8) uint8 {
	if value == 0 || value > maxChannel {
		return value
	}
	f := float64(value) / maxChannel
	scaled := f * f * maxChannel
	if scaled < 1 {
		// non-zero input stays visible
		scaled = 1
	}
	return uint8(scaled)
}

// Address implements midi.Visual.
func (v Visual) Address() midi.Address {
	return v.Position.Address()
}

// IsDefault reports whether the visual renders as off.
func (v Visual) IsDefault() bool {
	switch v.Kind {
	case KindOff:
		return true
	case KindStatic, KindPulsing:
		return v.Channels[0] == 0
	case KindFlashing:
		return v.Channels[0] == 0 && v.Channels[1] == 0
	case KindRGB:
		return v.Channels == [3]uint8{}
	default:
		return false
	}
}

// Validate checks the pad address and that every channel fits in 7 bits.
func (v Visual) Validate() error {
	if !Valid(v.Address()) {
		return invalidPosition(fmt.Sprintf("%d", v.Address()))
	}

	var labels []string
	switch v.Kind {
	case KindOff:
		return nil
	case KindStatic, KindPulsing:
		labels = []string{"colour"}
	case KindFlashing:
		labels = []string{"colour A", "colour B"}
	case KindRGB:
		labels = []string{"red", "green", "blue"}
	default:
		return &midi.VisualError{Device: DeviceName, Reason: fmt.Sprintf("unknown lighting type %d", v.Kind)}
	}

	for i, label := range labels {
		if v.Channels[i] > maxChannel {
			return &midi.VisualError{
				Device: DeviceName,
				Reason: fmt.Sprintf("invalid %s value: %d", label, v.Channels[i]),
			}
		}
	}
	return nil
}

func (v Visual) String() string {
	switch v.Kind {
	case KindOff:
		return fmt.Sprintf("Off(%v)", v.Position)
	case KindStatic:
		return fmt.Sprintf("Static(%v, %d)", v.Position, v.Channels[0])
	case KindFlashing:
		return fmt.Sprintf("Flashing(%v, %d, %d)", v.Position, v.Channels[0], v.Channels[1])
	case KindPulsing:
		return fmt.Sprintf("Pulsing(%v, %d)", v.Position, v.Channels[0])
	case KindRGB:
		return fmt.Sprintf("RGB(%v, %d, %d, %d)", v.Position, v.Channels[0], v.Channels[1], v.Channels[2])
	default:
		return fmt.Sprintf("Visual(%d, %v)", v.Kind, v.Position)
	}
}
