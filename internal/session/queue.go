package session

import "sync"

// EventQueue buffers events between a producer that must never block
// (the GTK main thread, which the session's surface round-trips depend
// on) and the session loop draining Events(). It is unbounded and
// order-preserving: while the queue is open no event is ever dropped,
// however slowly the session drains. After Close pushes become no-ops,
// since every queued event would be discarded anyway.
type EventQueue struct {
	mu     sync.Mutex
	queue  []Event
	closed bool

	notify chan struct{}
	stop   chan struct{}
	out    chan Event
}

// NewEventQueue creates the queue and starts its delivery goroutine.
func NewEventQueue() *EventQueue {
	q := &EventQueue{
		notify: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		out:    make(chan Event),
	}
	go q.pump()
	return q
}

// Push enqueues an event without ever blocking the caller.
func (q *EventQueue) Push(ev Event) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.queue = append(q.queue, ev)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Events returns the delivery channel the session selects on.
func (q *EventQueue) Events() <-chan Event { return q.out }

// Close stops delivery and turns further pushes into no-ops. Safe to
// call more than once.
func (q *EventQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	close(q.stop)
}

func (q *EventQueue) pump() {
	for {
		select {
		case <-q.stop:
			return
		case <-q.notify:
		}
		for {
			q.mu.Lock()
			if len(q.queue) == 0 {
				q.mu.Unlock()
				break
			}
			ev := q.queue[0]
			q.queue = q.queue[1:]
			q.mu.Unlock()

			select {
			case q.out <- ev:
			case <-q.stop:
				return
			}
		}
	}
}
