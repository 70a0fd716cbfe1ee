package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPosition struct {
	addr Address
}

func (p testPosition) Address() Address { return p.addr }

type testVisual struct {
	pos   testPosition
	level uint8
	mode  uint8
}

func (v testVisual) Address() Address { return v.pos.addr }
func (v testVisual) IsDefault() bool  { return v.level == 0 }

func lit(addr Address, level uint8) testVisual {
	return testVisual{pos: testPosition{addr}, level: level}
}

func TestVisualStateFirstPushSendsEverything(t *testing.T) {
	s := NewVisualState[testVisual](nil)
	s.Queue(lit(3, 1))
	s.Queue(lit(1, 2))

	batch := s.Diff()
	assert.Equal(t, []testVisual{lit(1, 2), lit(3, 1)}, batch)

	s.Commit(batch)
	assert.Equal(t, 0, s.Pending())

	v, ok := s.Effective(1)
	require.True(t, ok)
	assert.Equal(t, lit(1, 2), v)
}

func TestVisualStateAbsorbsUnchangedVisuals(t *testing.T) {
	s := NewVisualState[testVisual](nil)
	s.Queue(lit(1, 2))
	s.Commit(s.Diff())

	s.Queue(lit(1, 2))
	assert.Empty(t, s.Diff())

	s.Queue(lit(1, 3))
	assert.Equal(t, []testVisual{lit(1, 3)}, s.Diff())
}

func TestVisualStateQueueOverwritesSameAddress(t *testing.T) {
	s := NewVisualState[testVisual](nil)
	s.Queue(lit(5, 1))
	s.Queue(lit(5, 2))

	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, []testVisual{lit(5, 2)}, s.Diff())
}

func TestVisualStateDiffDoesNotCommit(t *testing.T) {
	s := NewVisualState[testVisual](nil)
	s.Queue(lit(1, 1))
	_ = s.Diff()

	_, ok := s.Effective(1)
	assert.False(t, ok, "effective state must only change on Commit")
	assert.Equal(t, 1, s.Pending())
}

func TestVisualStatePop(t *testing.T) {
	s := NewVisualState[testVisual](nil)
	s.Queue(lit(1, 1))
	s.Pop()

	assert.Equal(t, 0, s.Pending())
	assert.Empty(t, s.Diff())
}

func TestAbsorbPolicies(t *testing.T) {
	offA := testVisual{pos: testPosition{1}, level: 0, mode: 0}
	offB := testVisual{pos: testPosition{1}, level: 0, mode: 7}
	on := lit(1, 2)

	tests := []struct {
		name      string
		absorb    AbsorbFunc[testVisual]
		queued    testVisual
		effective testVisual
		want      bool
	}{
		{"equal absorbs identical", AbsorbEqual[testVisual], on, on, true},
		{"equal keeps different off encodings", AbsorbEqual[testVisual], offA, offB, false},
		{"defaults absorbs identical", AbsorbDefaults[testVisual], on, on, true},
		{"defaults absorbs any two offs", AbsorbDefaults[testVisual], offA, offB, true},
		{"defaults keeps on over off", AbsorbDefaults[testVisual], on, offA, false},
		{"defaults keeps off over on", AbsorbDefaults[testVisual], offA, on, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.absorb(tt.queued, tt.effective))
		})
	}
}

func TestVisualStateUsesAbsorbPolicy(t *testing.T) {
	s := NewVisualState[testVisual](AbsorbDefaults[testVisual])
	s.Queue(testVisual{pos: testPosition{1}})
	s.Commit(s.Diff())

	s.Queue(testVisual{pos: testPosition{1}, mode: 3})
	assert.Empty(t, s.Diff())
}
