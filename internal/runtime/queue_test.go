package runtime_test

import (
	"testing"

	"github.com/aretw0/pulsenet/internal/runtime"
	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestQueue_FIFOAndCounts(t *testing.T) {
	q := runtime.NewQueue()

	_, ok := q.Dequeue()
	assert.False(t, ok, "empty queue must not yield")

	q.Enqueue(domain.Pulse{Source: "a", Destination: "b", Level: domain.High})
	q.Enqueue(domain.Pulse{Source: "a", Destination: "c", Level: domain.High})
	q.Enqueue(domain.Pulse{Source: "a", Destination: "d", Level: domain.Low})
	assert.Equal(t, 3, q.Len())

	for _, want := range []domain.ID{"b", "c", "d"} {
		p, ok := q.Dequeue()
		assert.True(t, ok)
		assert.Equal(t, want, p.Destination)
	}
	_, ok = q.Dequeue()
	assert.False(t, ok)

	// counters track enqueues, not deliveries
	assert.Equal(t, domain.Counts{Low: 1, High: 2}, q.Counts())
}

func TestQueue_InterleavedLongRun(t *testing.T) {
	q := runtime.NewQueue()
	dst := func(n int) domain.ID { return domain.ID(rune('a' + n%26)) }

	in, out := 0, 0
	for i := 0; i < 5000; i++ {
		q.Enqueue(domain.Pulse{Destination: dst(in), Level: domain.Level(i % 2)})
		in++
		q.Enqueue(domain.Pulse{Destination: dst(in)})
		in++

		p, ok := q.Dequeue()
		assert.True(t, ok)
		assert.Equal(t, dst(out), p.Destination)
		out++
	}
	assert.Equal(t, 5000, q.Len())
	assert.Equal(t, 10000, q.Counts().Total())
}
