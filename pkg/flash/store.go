// Package flash keeps one-shot messages that are shown on the next page load
// and then discarded.
package flash

import (
	"sync"
	"time"
)

// DefaultTTL bounds how long an unread message is kept.
const DefaultTTL = 5 * time.Minute

type entry struct {
	message string
	expires time.Time
}

// Store holds at most one pending message per session. It is safe for
// concurrent use and prunes expired entries on access.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL sets how long a message survives unread.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns an empty store.
func NewStore(options ...StoreOption) *Store {
	s := &Store{
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Set replaces the pending message of a session.
func (s *Store) Set(session, message string) {
	if session == "" || message == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.entries[session] = entry{message: message, expires: now.Add(s.ttl)}
}

// Take returns the pending message of a session and removes it.
func (s *Store) Take(session string) (string, bool) {
	if session == "" {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	e, ok := s.entries[session]
	if !ok {
		return "", false
	}
	delete(s.entries, session)
	return e.message, true
}

// Len reports the number of unexpired pending messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(s.now())
	return len(s.entries)
}

func (s *Store) pruneLocked(now time.Time) {
	for key, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, key)
		}
	}
}
