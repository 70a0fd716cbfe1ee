package launchpad

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/tindrivers/internal/midi"
	"github.com/PixPMusic/tindrivers/internal/midi/miditest"
)

var colorPrefix = []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0D, 0x03}

func connect(t *testing.T) (*Driver, *miditest.Loopback) {
	t.Helper()
	lb := miditest.New()
	d, err := Connect(
		midi.WithOpener(lb.Opener()),
		midi.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return d, lb
}

// payloads splits a colour frame into its 3-byte Off/Static entries.
func payloads(t *testing.T, frame []byte) [][]byte {
	t.Helper()
	require.GreaterOrEqual(t, len(frame), len(colorPrefix)+1)
	require.Equal(t, colorPrefix, frame[:len(colorPrefix)])
	require.Equal(t, byte(0xF7), frame[len(frame)-1])

	body := frame[len(colorPrefix) : len(frame)-1]
	require.Zero(t, len(body)%3)
	var out [][]byte
	for i := 0; i < len(body); i += 3 {
		out = append(out, body[i:i+3])
	}
	return out
}

func TestConnectInitialisesAndClears(t *testing.T) {
	_, lb := connect(t)

	assert.Equal(t, DefaultPort, lb.Port())
	sent := lb.Sent()
	require.Len(t, sent, 3)
	assert.Equal(t, []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0D, 0x10, 0x00, 0xF7}, sent[0])
	assert.Equal(t, []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0D, 0x0E, 0x01, 0xF7}, sent[1])

	entries := payloads(t, sent[2])
	require.Len(t, entries, len(Addresses()))
	for i, addr := range Addresses() {
		assert.Equal(t, []byte{0, byte(addr), 0}, entries[i])
	}
}

func TestConnectDeviceNotFound(t *testing.T) {
	_, err := Connect(midi.WithOpener(miditest.Missing()))
	assert.ErrorIs(t, err, midi.ErrDeviceNotFound)
}

func TestConnectThenReadIsEmptyWithDefaultStates(t *testing.T) {
	d, _ := connect(t)

	assert.Empty(t, d.Read())
	for _, addr := range Addresses() {
		p, err := Raw(uint8(addr))
		require.NoError(t, err)
		state, err := d.PositionState(p)
		require.NoError(t, err)
		assert.Equal(t, midi.Binary(false), state)
	}
}

func TestPushAbsorbedVisualSendsEmptyFrame(t *testing.T) {
	d, lb := connect(t)
	lb.Reset()

	require.NoError(t, d.Add(Off(Up)))
	require.NoError(t, d.Push())

	require.Len(t, lb.Sent(), 1)
	assert.Empty(t, payloads(t, lb.Last()))
}

func TestPushChangedVisualSendsOnePayload(t *testing.T) {
	d, lb := connect(t)
	lb.Reset()

	require.NoError(t, d.Add(Static(Up, 5)))
	require.NoError(t, d.Push())
	assert.Equal(t, append(append([]byte{}, colorPrefix...), 0, 91, 5, 0xF7), lb.Last())

	v, ok := d.Effective(Up)
	require.True(t, ok)
	assert.Equal(t, Static(Up, 5), v)

	// same visual again, through a different coordinate form
	p, err := Grid(1, 0)
	require.NoError(t, err)
	require.NoError(t, d.Add(Static(p, 5)))
	require.NoError(t, d.Push())
	assert.Empty(t, payloads(t, lb.Last()))
}

func TestClearPushAfterDrawing(t *testing.T) {
	d, lb := connect(t)
	require.NoError(t, d.Add(RGB(Logo, 1, 2, 3)))
	require.NoError(t, d.Add(Pulsing(Session, 7)))
	require.NoError(t, d.Push())
	lb.Reset()

	d.Clear()
	assert.Equal(t, len(Addresses()), d.Pending())
	require.NoError(t, d.Push())

	entries := payloads(t, lb.Last())
	assert.Equal(t, [][]byte{{0, 95, 0}, {0, 99, 0}}, entries)
}

func TestPopDiscardsQueue(t *testing.T) {
	d, lb := connect(t)
	lb.Reset()

	require.NoError(t, d.Add(Static(Up, 5)))
	d.Pop()
	require.NoError(t, d.Push())
	assert.Empty(t, payloads(t, lb.Last()))
}

func TestAddRejectsInvalid(t *testing.T) {
	d, _ := connect(t)

	assert.ErrorIs(t, d.Add(Static(Position{}, 1)), midi.ErrInvalidPosition)
	assert.ErrorIs(t, d.Add(RGB(Up, 128, 0, 0)), midi.ErrInvalidVisual)
	assert.Equal(t, 0, d.Pending())
}

func TestPressThenRelease(t *testing.T) {
	d, lb := connect(t)
	p := mustGrid(t, 4, 3)

	lb.Inject(0x90, 64, 127)
	events := d.Read()
	require.Equal(t, []Event{{Kind: midi.EventKeyPressed, Position: p}}, events)
	state, err := d.PositionState(p)
	require.NoError(t, err)
	assert.Equal(t, midi.Binary(true), state)

	lb.Inject(0x90, 64, 0)
	events = d.Read()
	require.Equal(t, []Event{{Kind: midi.EventKeyReleased, Position: p}}, events)
	state, err = d.PositionState(p)
	require.NoError(t, err)
	assert.Equal(t, midi.Binary(false), state)
}

func TestReadDropsNoise(t *testing.T) {
	d, lb := connect(t)

	lb.Inject(0xF8)           // clock
	lb.Inject(0x80, 64, 0)    // note off
	lb.Inject(0x90, 10, 127)  // not a pad
	lb.Inject(0xB0, 91, 127)  // Up pressed
	lb.Inject(0xB0, 91, 0, 0) // wrong length
	lb.Inject(0xB0, 91, 0)    // Up released
	lb.Inject(0x90, 100, 127) // out of range

	assert.Equal(t, []Event{
		{Kind: midi.EventKeyPressed, Position: Up},
		{Kind: midi.EventKeyReleased, Position: Up},
	}, d.Read())
}

func TestDecode(t *testing.T) {
	ev, ok := Decode([]byte{0xB0, 19, 1})
	require.True(t, ok)
	assert.Equal(t, Event{Kind: midi.EventKeyPressed, Position: StopSoloMute}, ev)

	_, ok = Decode([]byte{0x90, 0, 1})
	assert.False(t, ok)
}

func TestSendMessages(t *testing.T) {
	d, lb := connect(t)

	require.NoError(t, d.Send(RawMessage([]byte{0xB0, 0, 0})))
	assert.Equal(t, []byte{0xB0, 0, 0}, lb.Last())

	require.NoError(t, d.Send(ColorsMessage(Flashing(Up, 3, 1))))
	assert.Equal(t, append(append([]byte{}, colorPrefix...), 1, 91, 3, 1, 0xF7), lb.Last())

	assert.ErrorIs(t, d.Send(ColorsMessage(Static(Up, 200))), midi.ErrInvalidVisual)

	lb.FailSends(errors.New("unplugged"))
	assert.ErrorIs(t, d.Send(RawMessage([]byte{0xB0, 0, 0})), midi.ErrSend)
}

func TestCloseTurnsEverythingOff(t *testing.T) {
	d, lb := connect(t)
	require.NoError(t, d.Add(Flashing(Keys, 3, 1)))
	require.NoError(t, d.Push())
	lb.Reset()

	require.NoError(t, d.Close())
	assert.True(t, lb.Closed())
	assert.Equal(t, [][]byte{{0, 97, 0}}, payloads(t, lb.Last()))
}
