package session

import (
	"errors"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	if _, _, err := store.Subscribe(); !errors.Is(err, ErrStoreClosed) {
		t.Fatalf("Subscribe() before Init error = %v, want ErrStoreClosed", err)
	}

	store.Init()

	events, unsubscribe, err := store.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	store.Notify(Event{Kind: EventSignedIn, UserID: "u1", Email: "a@b.c"})

	select {
	case ev := <-events:
		if ev.Kind != EventSignedIn || ev.UserID != "u1" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("expected an event")
	}

	unsubscribe()
	if _, open := <-events; open {
		t.Error("channel should be closed after unsubscribe")
	}

	// Unsubscribing twice must not panic.
	unsubscribe()
}

func TestStoreTeardown(t *testing.T) {
	store := NewStore()
	store.Init()

	events, _, err := store.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	store.Teardown()

	if _, open := <-events; open {
		t.Error("channel should be closed after teardown")
	}
	if _, _, err := store.Subscribe(); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Subscribe() after Teardown error = %v, want ErrStoreClosed", err)
	}

	// Notify on a closed store is a no-op.
	store.Notify(Event{Kind: EventSignedOut})

	// Re-initializing brings the store back.
	store.Init()
	if _, _, err := store.Subscribe(); err != nil {
		t.Errorf("Subscribe() after re-Init error = %v", err)
	}
}

func TestNotifyDropsWhenSubscriberIsFull(t *testing.T) {
	store := NewStore()
	store.Init()
	defer store.Teardown()

	events, unsubscribe, err := store.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer unsubscribe()

	// Overfill the buffer; Notify must not block.
	for i := 0; i < cap(events)+5; i++ {
		store.Notify(Event{Kind: EventTokenRevoked})
	}

	if len(events) != cap(events) {
		t.Errorf("buffered events = %d, want %d", len(events), cap(events))
	}
}
