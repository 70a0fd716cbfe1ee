package midi

// ParseFrame splits a raw input frame into address and value. Only 3-byte
// note-on and control-change frames on channel 1 with 7-bit data bytes are
// accepted.
func ParseFrame(frame []byte) (addr Address, value uint8, ok bool) {
	if len(frame) != 3 {
		return 0, 0, false
	}
	if frame[0] != StatusNoteOn && frame[0] != StatusControlChange {
		return 0, 0, false
	}
	if frame[1] > maxData || frame[2] > maxData {
		return 0, 0, false
	}
	return Address(frame[1]), frame[2], true
}

// Decode turns a raw input frame into a typed event. Frames with an
// unrecognised status or an address outside the device range are rejected.
func (p *Profile[P, V]) Decode(frame []byte) (InputEvent[P], bool) {
	addr, value, ok := ParseFrame(frame)
	if !ok || !p.Valid(addr) {
		return InputEvent[P]{}, false
	}

	ev := InputEvent[P]{Position: p.Position(addr)}
	switch {
	case p.analog(addr):
		ev.Kind = EventAnalog
		ev.Value = value
	case value > 0:
		ev.Kind = EventKeyPressed
	default:
		ev.Kind = EventKeyReleased
	}
	return ev, true
}

// Coalesce collapses analog events so that each address appears once with its
// latest value. Binary events keep their arrival order; the surviving analog
// events follow them, ordered by the first arrival of each address.
func Coalesce[P Position](events []InputEvent[P]) []InputEvent[P] {
	out := make([]InputEvent[P], 0, len(events))
	latest := make(map[Address]int)
	var analog []InputEvent[P]

	for _, ev := range events {
		if ev.Kind != EventAnalog {
			out = append(out, ev)
			continue
		}
		addr := ev.Position.Address()
		if i, ok := latest[addr]; ok {
			analog[i] = ev
			continue
		}
		latest[addr] = len(analog)
		analog = append(analog, ev)
	}

	return append(out, analog...)
}
