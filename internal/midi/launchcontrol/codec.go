package launchcontrol

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

const (
	// MaxTemplate is the highest template slot (0..7 user, 8..15 factory).
	MaxTemplate = 15

	// flags sets both the copy and clear bits of the colour byte
	flags = 0x0C
)

// header returns the "set LEDs" SysEx content prefix for a template. The F0/F7
// framing is added by midi.SysEx.
func header(template uint8) []byte {
	return []byte{0x00, 0x20, 0x29, 0x02, 0x11, 0x78, template}
}

// Encode builds one LED bulk-update frame addressed to template. Every visual
// is validated before its bytes are written.
func Encode(template uint8, visuals []Visual) ([]byte, error) {
	if template > MaxTemplate {
		return nil, fmt.Errorf("%s: template %d out of range 0..%d", DeviceName, template, MaxTemplate)
	}
	content := make([]byte, 0, 7+2*len(visuals))
	content = append(content, header(template)...)
	for _, v := range visuals {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		content = append(content, byte(v.Address()), v.color())
	}
	return []byte(midi.SysEx(content)), nil
}

// color packs the levels as 0bGG_CC_RR.
func (v Visual) color() byte {
	if !v.Lit {
		return flags
	}
	return flags + v.Red + 16*v.Green
}
