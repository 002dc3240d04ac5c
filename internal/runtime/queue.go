package runtime

import "github.com/aretw0/pulsenet/pkg/domain"

// Queue is a FIFO of pending pulses. It counts every pulse ever enqueued,
// by level, including pulses that are later dropped by an unbound sink.
type Queue struct {
	items  []domain.Pulse
	head   int
	counts domain.Counts
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{items: make([]domain.Pulse, 0, 64)}
}

// Enqueue appends p to the back of the queue.
func (q *Queue) Enqueue(p domain.Pulse) {
	q.counts.Inc(p.Level)
	q.items = append(q.items, p)
}

// Dequeue removes and returns the front pulse. ok is false when the queue is empty.
func (q *Queue) Dequeue() (p domain.Pulse, ok bool) {
	if q.head == len(q.items) {
		return domain.Pulse{}, false
	}
	p = q.items[q.head]
	q.head++

	// reclaim the consumed prefix once it dominates the backing array
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head >= 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return p, true
}

// Len returns the number of pending pulses.
func (q *Queue) Len() int { return len(q.items) - q.head }

// Counts returns the running totals of enqueued pulses.
func (q *Queue) Counts() domain.Counts { return q.counts }
