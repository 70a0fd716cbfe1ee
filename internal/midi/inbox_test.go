package midi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInboxDrainInArrivalOrder(t *testing.T) {
	q := NewInbox[int]()
	for i := 0; i < 5; i++ {
		assert.True(t, q.Put(i))
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, q.Drain())
	assert.Empty(t, q.Drain())
}

func TestInboxClosedDropsItems(t *testing.T) {
	q := NewInbox[int]()
	q.Put(1)
	q.Close()

	assert.False(t, q.Put(2))
	assert.Empty(t, q.Drain())
}

func TestInboxConcurrentProducer(t *testing.T) {
	q := NewInbox[int]()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Put(i)
		}
	}()

	var got []int
	for len(got) < n {
		got = append(got, q.Drain()...)
	}
	wg.Wait()

	for i, v := range got {
		assert.Equal(t, i, v)
	}
}
