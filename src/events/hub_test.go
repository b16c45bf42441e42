package events_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/events"
)

func TestHubPublishSubscribe(t *testing.T) {
	hub := events.NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	e := events.Event{Type: events.RequestCreated, ProjectID: uuid.New(), EntityID: uuid.New()}
	hub.Publish(e)

	select {
	case got := <-ch:
		if got != e {
			t.Fatalf("expected %+v, got %+v", e, got)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a delivered event")
	}
}

func TestHubSlowSubscriberDropsEvents(t *testing.T) {
	hub := events.NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	// overflow the buffer without draining; Publish must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(events.Event{Type: events.RequestUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := events.NewHub()
	ch := hub.Subscribe()
	hub.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after unsubscribe")
	}

	// a second unsubscribe of the same channel is a no-op
	hub.Unsubscribe(ch)

	// publishing with no subscribers is fine
	hub.Publish(events.Event{Type: events.ProposalDeleted})
}
