package launchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/tindrivers/internal/midi"
)

func mustGrid(t *testing.T, x, y uint8) Position {
	t.Helper()
	p, err := Grid(x, y)
	require.NoError(t, err)
	return p
}

func TestGridFormula(t *testing.T) {
	tests := []struct {
		x, y uint8
		want midi.Address
	}{
		{1, 0, 91},
		{9, 0, 99},
		{1, 8, 11},
		{9, 8, 19},
		{4, 3, 64},
		{8, 1, 88},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mustGrid(t, tt.x, tt.y).Address(), "Grid(%d, %d)", tt.x, tt.y)
	}
}

func TestGridIsInjectiveOverValidRange(t *testing.T) {
	seen := make(map[midi.Address]bool)
	for x := uint8(1); x <= 9; x++ {
		for y := uint8(0); y <= 8; y++ {
			p := mustGrid(t, x, y)
			assert.True(t, Valid(p.Address()))
			assert.False(t, seen[p.Address()], "Grid(%d, %d) collides", x, y)
			seen[p.Address()] = true

			again := mustGrid(t, x, y)
			assert.Equal(t, p, again)

			gx, gy := p.Coordinates()
			assert.Equal(t, x, gx)
			assert.Equal(t, y, gy)
		}
	}
	assert.Len(t, seen, len(Addresses()))
}

func TestInvalidPositions(t *testing.T) {
	gridCases := []struct{ x, y uint8 }{
		{0, 0}, {10, 0}, {1, 9}, {255, 255},
	}
	for _, tt := range gridCases {
		_, err := Grid(tt.x, tt.y)
		assert.ErrorIs(t, err, midi.ErrInvalidPosition, "Grid(%d, %d)", tt.x, tt.y)
	}

	for _, raw := range []uint8{0, 5, 10, 20, 50, 90, 100, 255} {
		_, err := Raw(raw)
		assert.ErrorIs(t, err, midi.ErrInvalidPosition, "Raw(%d)", raw)
	}
}

func TestRawAcceptsEveryValidAddress(t *testing.T) {
	for _, addr := range Addresses() {
		p, err := Raw(uint8(addr))
		require.NoError(t, err)
		assert.Equal(t, addr, p.Address())
	}
}

func TestPositionEqualityByAddress(t *testing.T) {
	raw, err := Raw(91)
	require.NoError(t, err)

	assert.Equal(t, raw, mustGrid(t, 1, 0))
	assert.True(t, raw == mustGrid(t, 1, 0))
	assert.True(t, raw == Up)
	assert.True(t, Logo == mustGrid(t, 9, 0))
	assert.True(t, StopSoloMute == mustGrid(t, 9, 8))
	assert.False(t, Up == Down)

	set := map[Position]string{Up: "up"}
	assert.Equal(t, "up", set[raw])
}

func TestNamedButtons(t *testing.T) {
	tests := []struct {
		pos  Position
		want midi.Address
		name string
	}{
		{Up, 91, "Up"},
		{Down, 92, "Down"},
		{Left, 93, "Left"},
		{Right, 94, "Right"},
		{Session, 95, "Session"},
		{Drums, 96, "Drums"},
		{Keys, 97, "Keys"},
		{User, 98, "User"},
		{Logo, 99, "Logo"},
		{StopSoloMute, 19, "StopSoloMute"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.pos.Address())
		assert.Equal(t, tt.name, tt.pos.String())
	}
}

func TestAddresses(t *testing.T) {
	addrs := Addresses()
	assert.Len(t, addrs, 81)
	assert.Equal(t, midi.Address(11), addrs[0])
	assert.Equal(t, midi.Address(99), addrs[len(addrs)-1])
	for _, a := range addrs {
		assert.NotZero(t, a%10)
	}
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "Grid(4, 3)", mustGrid(t, 4, 3).String())
	assert.Equal(t, "Invalid(0)", Position{}.String())
}
