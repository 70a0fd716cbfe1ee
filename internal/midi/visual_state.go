package midi

import "sort"

// AbsorbFunc reports whether a queued visual is redundant given the visual
// currently in effect at the same address.
type AbsorbFunc[V Visual] func(queued, effective V) bool

// AbsorbEqual absorbs a queued visual iff it equals the effective one.
func AbsorbEqual[V Visual](queued, effective V) bool {
	return queued == effective
}

// AbsorbDefaults behaves like AbsorbEqual, and additionally treats any two
// visuals that render as "off" as equivalent.
func AbsorbDefaults[V Visual](queued, effective V) bool {
	return queued == effective || (queued.IsDefault() && effective.IsDefault())
}

// VisualState holds the queued (desired) and effective (last transmitted)
// visuals of a device and computes the minimal batch between them.
// It is not safe for concurrent use.
type VisualState[V Visual] struct {
	queued    map[Address]V
	effective map[Address]V
	absorb    AbsorbFunc[V]
}

// NewVisualState creates an empty state. A nil absorb uses AbsorbEqual.
func NewVisualState[V Visual](absorb AbsorbFunc[V]) *VisualState[V] {
	if absorb == nil {
		absorb = AbsorbEqual[V]
	}
	return &VisualState[V]{
		queued:    make(map[Address]V),
		effective: make(map[Address]V),
		absorb:    absorb,
	}
}

// Queue stores v as the desired visual of its address for this cycle,
// replacing any earlier queued visual for that address.
func (s *VisualState[V]) Queue(v V) {
	s.queued[v.Address()] = v
}

// Pop discards every queued visual.
func (s *VisualState[V]) Pop() {
	clear(s.queued)
}

// Pending returns the number of queued visuals.
func (s *VisualState[V]) Pending() int {
	return len(s.queued)
}

// Diff returns the queued visuals that are not absorbed by the effective
// state, ordered by address. Neither map is modified.
func (s *VisualState[V]) Diff() []V {
	batch := make([]V, 0, len(s.queued))
	for addr, v := range s.queued {
		if current, ok := s.effective[addr]; ok && s.absorb(v, current) {
			continue
		}
		batch = append(batch, v)
	}
	sort.Slice(batch, func(i, j int) bool {
		return batch[i].Address() < batch[j].Address()
	})
	return batch
}

// Commit records batch as transmitted and ends the cycle by discarding the
// queue.
func (s *VisualState[V]) Commit(batch []V) {
	for _, v := range batch {
		s.effective[v.Address()] = v
	}
	s.Pop()
}

// Effective returns the last transmitted visual at addr.
func (s *VisualState[V]) Effective(addr Address) (V, bool) {
	v, ok := s.effective[addr]
	return v, ok
}
