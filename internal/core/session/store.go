// Package session owns the process-wide authenticated identity. Every screen
// that displays the user's name or avatar reads from here; the only writer is
// Reconcile, fed by authoritative account service responses.
package session

import (
	"fmt"
	"sync"

	"github.com/duynhne/account-sdk/internal/core/domain"
)

// Store holds the current session user. Writes are atomic replacements:
// observers never see a half-applied update.
type Store struct {
	mu        sync.RWMutex
	user      domain.User
	observers []func(domain.User)
}

// NewStore creates a session store seeded with the identity established at
// authentication time.
func NewStore(user domain.User) *Store {
	return &Store{user: user}
}

// Current returns a copy of the session user.
func (s *Store) Current() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Subscribe registers an observer invoked after every accepted reconciliation
// with the new session user. Used by screens to refresh displayed identity.
func (s *Store) Subscribe(fn func(domain.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Reconcile replaces the session user with the server's authoritative
// representation. The server is the source of truth after an update (e.g. a
// regenerated avatar URL or normalized email casing), so the replacement is
// wholesale: no field from the previous value survives.
//
// A representation missing its identity fields is rejected and nothing is
// applied.
func (s *Store) Reconcile(user domain.User) error {
	if user.ID == "" || user.Name == "" || user.Email == "" {
		return fmt.Errorf("reconcile session user: %w", domain.ErrMalformedResponse)
	}

	s.mu.Lock()
	s.user = user
	observers := make([]func(domain.User), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(user)
	}
	return nil
}
