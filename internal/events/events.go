// Package events provides the in-process publish/subscribe bus that decouples
// the download and trim workers from the UI, and a Mailbox that moves events
// from worker goroutines onto the UI goroutine.
package events

import (
	"log"
	"runtime/debug"
	"sync"
)

// Topic names a stream of events
type Topic string

// Event names shared by producers and the UI.
const (
	TopicDownloadStarted  Topic = "download_started"
	TopicDownloadProgress Topic = "download_progress"
	TopicDownloadComplete Topic = "download_complete"
	TopicDownloadFailed   Topic = "download_failed"
	TopicAutoLoadVideo    Topic = "auto_load_video"

	TopicTrimTaskStarted   Topic = "trim_task_started"
	TopicTrimTaskComplete  Topic = "trim_task_complete"
	TopicTrimTaskFailed    Topic = "trim_task_failed"
	TopicTrimQueueComplete Topic = "trim_queue_complete"
)

// Event is a fire-and-forget (topic, payload) pair
type Event struct {
	Topic   Topic
	Payload any
}

// Handler receives events for a subscribed topic
type Handler func(Event)

// Publisher is the producer side of the bus, injected into workers
type Publisher interface {
	Publish(topic Topic, payload any)
}

type subscription struct {
	id      uint64
	handler Handler
}

// Bus maps topics to subscriber handlers. The zero value is not usable, use NewBus.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Topic][]subscription
	nextID uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers handler for future publishes on topic and returns a
// function that removes the registration.
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(topic, id) })
	}
}

func (b *Bus) unsubscribe(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish calls every handler registered for topic synchronously on the
// caller's goroutine. Publishing without subscribers is a no-op.
// A panicking handler is logged and the remaining handlers still run.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload}
	for _, s := range subs {
		deliver(s.handler, ev)
	}
}

// Forward subscribes mailbox to every topic; the returned function undoes all of them.
func (b *Bus) Forward(mailbox *Mailbox, topics ...Topic) func() {
	cancels := make([]func(), 0, len(topics))
	for _, topic := range topics {
		cancels = append(cancels, b.Subscribe(topic, mailbox.Post))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// SubscriberCount returns how many handlers are registered for topic
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

func deliver(handler Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event handler for %s panicked: %v\n%s", ev.Topic, r, debug.Stack())
		}
	}()
	handler(ev)
}
