package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps sessions in process memory with per-entry TTL. Suitable
// for development and tests; state does not survive restarts and cannot be
// shared across instances.
type MemoryStore struct {
	entries *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

// Get resolves a token to its identity, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, token string) (*Identity, error) {
	entry, found := s.entries.Get(token)
	if !found {
		return nil, ErrNotFound
	}
	identity := entry.(Identity)
	return &identity, nil
}

// Set binds a token to an identity for the given TTL.
func (s *MemoryStore) Set(_ context.Context, token string, identity Identity, ttl time.Duration) error {
	s.entries.Set(token, identity, ttl)
	return nil
}

// Destroy removes a session. Destroying an absent token is not an error.
func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.entries.Delete(token)
	return nil
}
