// Package session provides an explicit store for auth-state change
// notifications, replacing ambient global subscription state with an object
// that has a defined lifecycle: Init on application start, Teardown on
// shutdown.
package session

import (
	"errors"
	"sync"
)

// EventKind classifies an auth-state change.
type EventKind string

const (
	EventSignedIn     EventKind = "signed_in"
	EventSignedOut    EventKind = "signed_out"
	EventTokenRevoked EventKind = "token_revoked"
)

// Event describes one auth-state change for a user.
type Event struct {
	Kind   EventKind
	UserID string
	Email  string
}

var ErrStoreClosed = errors.New("session store is closed")

// Store fans auth-state events out to subscribers. Notify never blocks the
// publisher: a subscriber that has fallen behind drops events.
type Store struct {
	mu          sync.Mutex
	subscribers map[int]chan Event
	nextID      int
	closed      bool
}

// NewStore creates an uninitialized store; call Init before use.
func NewStore() *Store {
	return &Store{}
}

// Init prepares the store for subscriptions. Calling Init on a running store
// is a no-op.
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers == nil {
		s.subscribers = make(map[int]chan Event)
		s.closed = false
	}
}

// Subscribe registers a listener and returns its event channel together with
// an unsubscribe function. The channel is closed on unsubscribe or Teardown.
func (s *Store) Subscribe() (<-chan Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.subscribers == nil {
		return nil, nil, ErrStoreClosed
	}

	id := s.nextID
	s.nextID++
	ch := make(chan Event, 16)
	s.subscribers[id] = ch

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe, nil
}

// Notify publishes an event to all current subscribers.
func (s *Store) Notify(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			// subscriber is not keeping up; drop rather than block
		}
	}
}

// Teardown closes every subscriber channel and rejects further use until the
// store is re-initialized.
func (s *Store) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
	s.subscribers = nil
}
