package launchpad

import "gitlab.com/gomidi/midi/v2"

// SysEx contents, all prefixed with the Novation manufacturer id 00 20 29 and
// the Mini MK3 device id 02 0D. midi.SysEx adds the F0/F7 framing.
var (
	// dawModeOff returns the device from DAW mode to standalone control
	dawModeOff = []byte(midi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0D, 0x10, 0x00}))
	// programmerMode selects the layout the LED indices refer to
	programmerMode = []byte(midi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0D, 0x0E, 0x01}))

	colorHeader = []byte{0x00, 0x20, 0x29, 0x02, 0x0D, 0x03}
)

// Encode builds one LED bulk-update frame for visuals. Every visual is
// validated before its bytes are written.
func Encode(visuals []Visual) ([]byte, error) {
	content := make([]byte, 0, len(colorHeader)+5*len(visuals))
	content = append(content, colorHeader...)
	for _, v := range visuals {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		content = v.appendPayload(content)
	}
	return []byte(midi.SysEx(content)), nil
}

// appendPayload writes [lighting type, LED index, colour bytes...].
func (v Visual) appendPayload(frame []byte) []byte {
	addr := byte(v.Address())
	switch v.Kind {
	case KindStatic:
		return append(frame, 0, addr, v.Channels[0])
	case KindFlashing:
		return append(frame, 1, addr, v.Channels[0], v.Channels[1])
	case KindPulsing:
		return append(frame, 2, addr, v.Channels[0])
	case KindRGB:
		return append(frame, 3, addr, v.Channels[0], v.Channels[1], v.Channels[2])
	default:
		return append(frame, 0, addr, 0)
	}
}
