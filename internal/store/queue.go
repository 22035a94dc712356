package store

import "sync"

// actionQueue is an unbounded FIFO. push never blocks, so subscribers and
// the background catalog fetch can dispatch freely.
type actionQueue struct {
	mu     sync.Mutex
	items  []envelope
	signal chan struct{}
}

func newActionQueue() actionQueue {
	return actionQueue{signal: make(chan struct{}, 1)}
}

func (q *actionQueue) push(env envelope) {
	q.mu.Lock()
	q.items = append(q.items, env)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *actionQueue) ready() <-chan struct{} {
	return q.signal
}

func (q *actionQueue) drain() []envelope {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}
