package memory

import (
	"context"
	"sync"

	"github.com/recourse/intake/pkg/domain"
)

// Store implements ports.DraftStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Draft
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Draft),
	}
}

// Save persists the draft record in memory.
func (s *Store) Save(ctx context.Context, key string, draft *domain.Draft) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := draft.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves the draft record from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.data[key]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}

	// Copy on read so the caller can't mutate stored state by pointer
	return draft.Clone(), nil
}

// Delete removes the draft record. Idempotent.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Exists reports whether a record is stored under the key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok, nil
}

// List returns stored draft keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}
