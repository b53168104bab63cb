package events

import (
	"context"
	"sync"
)

// Mailbox is an unbounded, ordered, goroutine-safe queue of events.
// Workers Post from any goroutine; the UI drains it on its own goroutine.
type Mailbox struct {
	mu     sync.Mutex
	queue  []Event
	notify chan struct{}
}

// NewMailbox creates an empty mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{notify: make(chan struct{}, 1)}
}

// Post enqueues an event and wakes the pump. It never blocks.
func (m *Mailbox) Post(ev Event) {
	m.mu.Lock()
	m.queue = append(m.queue, ev)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Drain removes and returns all queued events in post order
func (m *Mailbox) Drain() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.queue
	m.queue = nil
	return out
}

// Len returns the number of queued events
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Pump waits for posted events until ctx is done. Each wake-up drains the
// mailbox and passes a closure handling the batch to dispatch, which is
// expected to run it on the UI goroutine (fyne.Do in the app).
func (m *Mailbox) Pump(ctx context.Context, dispatch func(func()), handle Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.notify:
			batch := m.Drain()
			if len(batch) == 0 {
				continue
			}
			dispatch(func() {
				for _, ev := range batch {
					deliver(handle, ev)
				}
			})
		}
	}
}
