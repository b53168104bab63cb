package events

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestPublish_NoSubscribers(t *testing.T) {
	bus := NewBus()

	// Must not panic and must not register anything.
	bus.Publish(TopicTrimQueueComplete, nil)

	if bus.SubscriberCount(TopicTrimQueueComplete) != 0 {
		t.Error("Expected no subscribers")
	}
}

func TestPublish_DeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(TopicDownloadComplete, func(ev Event) { got = append(got, ev) })
	bus.Subscribe(TopicDownloadFailed, func(ev Event) { t.Error("wrong topic delivered") })

	bus.Publish(TopicDownloadComplete, "videos/downloads/a.mp4")

	if len(got) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(got))
	}
	if got[0].Topic != TopicDownloadComplete || got[0].Payload != "videos/downloads/a.mp4" {
		t.Errorf("Unexpected event: %+v", got[0])
	}
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(TopicTrimTaskStarted, func(Event) { calls++ })
	bus.Publish(TopicTrimTaskStarted, nil)

	unsubscribe()
	unsubscribe() // second call is harmless
	bus.Publish(TopicTrimTaskStarted, nil)

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
	if bus.SubscriberCount(TopicTrimTaskStarted) != 0 {
		t.Errorf("Expected subscriber to be removed")
	}
}

func TestPublish_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	second := false
	bus.Subscribe(TopicTrimTaskFailed, func(Event) { panic("boom") })
	bus.Subscribe(TopicTrimTaskFailed, func(Event) { second = true })

	bus.Publish(TopicTrimTaskFailed, "x")

	if !second {
		t.Error("Expected second handler to run after first panicked")
	}
}

func TestPublish_ConcurrentPublishers(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(TopicDownloadProgress, func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Publish(TopicDownloadProgress, j)
			}
		}()
	}
	wg.Wait()

	if count != 1000 {
		t.Errorf("Expected 1000 deliveries, got %d", count)
	}
}

func TestMailbox_PreservesOrder(t *testing.T) {
	bus := NewBus()
	mailbox := NewMailbox()
	cancel := bus.Forward(mailbox, TopicTrimTaskStarted, TopicTrimTaskComplete)

	bus.Publish(TopicTrimTaskStarted, 1)
	bus.Publish(TopicTrimTaskComplete, 2)
	bus.Publish(TopicTrimTaskStarted, 3)

	batch := mailbox.Drain()
	if len(batch) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(batch))
	}
	for i, ev := range batch {
		if ev.Payload != i+1 {
			t.Errorf("Event %d payload = %v, expected %d", i, ev.Payload, i+1)
		}
	}
	if mailbox.Len() != 0 {
		t.Errorf("Expected mailbox to be empty after drain")
	}

	cancel()
	bus.Publish(TopicTrimTaskStarted, 4)
	if mailbox.Len() != 0 {
		t.Errorf("Expected no events after forward cancel")
	}
}

func TestMailbox_PumpDispatchesOnCallerProvidedRunner(t *testing.T) {
	mailbox := NewMailbox()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Event, 10)
	dispatched := make(chan struct{}, 10)
	dispatch := func(f func()) {
		dispatched <- struct{}{}
		f()
	}

	go mailbox.Pump(ctx, dispatch, func(ev Event) { received <- ev })

	mailbox.Post(Event{Topic: TopicDownloadComplete, Payload: "a"})

	select {
	case ev := <-received:
		if ev.Payload != "a" {
			t.Errorf("Unexpected payload %v", ev.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for pumped event")
	}

	if len(dispatched) == 0 {
		t.Error("Expected delivery through dispatch")
	}
}
