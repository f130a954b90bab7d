// Package memory is an in-memory Store for development and tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/sahayata-app/gateway/internal/storage"
)

// Store keeps preferences and usage entries in process memory. One lock per
// concern; the orchestration core never touches these maps directly.
type Store struct {
	mu          sync.RWMutex
	preferences map[string]storage.Preferences
	usage       []storage.UsageEntry
}

// New creates an empty store.
func New() *Store {
	return &Store{
		preferences: make(map[string]storage.Preferences),
	}
}

func (s *Store) GetPreferences(ctx context.Context, userID string) (storage.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs, ok := s.preferences[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return maps.Clone(prefs), nil
}

func (s *Store) PutPreferences(ctx context.Context, userID string, prefs storage.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.preferences[userID] = maps.Clone(prefs)
	return nil
}

func (s *Store) AppendUsage(ctx context.Context, entry storage.UsageEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usage = append(s.usage, entry)
	return nil
}

// UsageEntries returns a copy of the recorded usage log.
func (s *Store) UsageEntries() []storage.UsageEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.UsageEntry, len(s.usage))
	copy(out, s.usage)
	return out
}

var _ storage.Store = (*Store)(nil)
