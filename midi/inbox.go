package midi

import "sync"

// inbox queues parsed input from a driver callback. The driver may still
// call in after Close, so pushes and the final close share one lock.
type inbox struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func newInbox(size int) *inbox {
	return &inbox{ch: make(chan Event, size)}
}

// push queues ev without blocking. It reports false when the queue is full
// or already closed.
func (in *inbox) push(ev Event) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return false
	}
	select {
	case in.ch <- ev:
		return true
	default:
		return false
	}
}

func (in *inbox) close() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.closed {
		in.closed = true
		close(in.ch)
	}
}
