package devices

import (
	"encoding/hex"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
)

// Message types accepted by Message.Bytes.
const (
	MessageNoteOn        = "note_on"
	MessageNoteOff       = "note_off"
	MessageControlChange = "cc"
	MessageProgramChange = "pc"
	MessageSysEx         = "sysex"
)

// Message describes one raw MIDI message to send to a surface.
type Message struct {
	Type    string `yaml:"type"`    // "note_on", "note_off", "cc", "pc", "sysex"
	Channel int    `yaml:"channel"` // 1-16
	Number  int    `yaml:"number"`  // note, controller or program
	Value   int    `yaml:"value"`   // velocity or controller value
	SysEx   string `yaml:"sysex"`   // Hex string "F0 01 ... F7"
}

// Bytes builds the wire frame of the message.
func (m Message) Bytes() ([]byte, error) {
	if m.Type == MessageSysEx {
		return parseSysEx(m.SysEx)
	}

	if m.Channel < 1 || m.Channel > 16 {
		return nil, fmt.Errorf("channel %d out of range 1..16", m.Channel)
	}
	if m.Number < 0 || m.Number > 127 {
		return nil, fmt.Errorf("number %d out of range 0..127", m.Number)
	}
	if m.Value < 0 || m.Value > 127 {
		return nil, fmt.Errorf("value %d out of range 0..127", m.Value)
	}
	channel := uint8(m.Channel - 1) // 0-based

	var msg midi.Message
	switch m.Type {
	case MessageNoteOn:
		msg = midi.NoteOn(channel, uint8(m.Number), uint8(m.Value))
	case MessageNoteOff:
		msg = midi.NoteOff(channel, uint8(m.Number))
	case MessageControlChange:
		msg = midi.ControlChange(channel, uint8(m.Number), uint8(m.Value))
	case MessageProgramChange:
		msg = midi.ProgramChange(channel, uint8(m.Number))
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}
	return []byte(msg), nil
}

// parseSysEx decodes a hex string such as "F0 00 20 29 F7", with or without
// separating spaces.
func parseSysEx(s string) ([]byte, error) {
	data, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, fmt.Errorf("invalid sysex %q: %w", s, err)
	}
	if len(data) < 2 || data[0] != 0xF0 || data[len(data)-1] != 0xF7 {
		return nil, fmt.Errorf("invalid sysex %q: must start with F0 and end with F7", s)
	}
	for _, b := range data[1 : len(data)-1] {
		if b > 0x7F {
			return nil, fmt.Errorf("invalid sysex %q: data byte %02X above 7F", s, b)
		}
	}
	return data, nil
}
