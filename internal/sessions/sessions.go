// Package sessions implements the process-wide session token table.
// Tokens are opaque UUIDs bound to a user id for the lifetime of the
// process; there is no expiry or revocation.
package sessions

import (
	"sync"

	"github.com/google/uuid"
)

// Store maps opaque session tokens to user ids. It is safe for concurrent
// use; callers never need external locking. Create one per process and
// inject it where needed.
type Store struct {
	mu     sync.RWMutex
	tokens map[string]uint
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{tokens: make(map[string]uint)}
}

// Issue mints a fresh unguessable token and binds it to the user id.
// A user may hold any number of concurrent tokens.
func (s *Store) Issue(userID uint) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
	return token
}

// Resolve returns the user id bound to the token. Lookup only; it never
// mutates the table.
func (s *Store) Resolve(token string) (uint, bool) {
	s.mu.RLock()
	userID, ok := s.tokens[token]
	s.mu.RUnlock()
	return userID, ok
}

// Len returns the number of live tokens.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
