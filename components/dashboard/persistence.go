package dashboard

import (
	"context"
	"sync"
)

// MemoryLayoutStore provides a concurrency-safe default LayoutStore. It backs
// tests and single-process deployments the way browser local storage backed
// the original dashboard.
type MemoryLayoutStore struct {
	mu   sync.RWMutex
	data map[string][]Widget
}

// NewMemoryLayoutStore creates an empty in-memory store.
func NewMemoryLayoutStore() *MemoryLayoutStore {
	return &MemoryLayoutStore{data: make(map[string][]Widget)}
}

// LoadWidgets returns the stored list or ErrLayoutNotFound.
func (s *MemoryLayoutStore) LoadWidgets(_ context.Context, userID string) ([]Widget, error) {
	if userID == "" {
		return nil, errMissingUserID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	widgets, ok := s.data[userID]
	if !ok {
		return nil, ErrLayoutNotFound
	}
	out := make([]Widget, len(widgets))
	copy(out, widgets)
	return out, nil
}

// SaveWidgets stores a defensive copy of the list.
func (s *MemoryLayoutStore) SaveWidgets(_ context.Context, userID string, widgets []Widget) error {
	if userID == "" {
		return errMissingUserID
	}
	stored := make([]Widget, len(widgets))
	copy(stored, widgets)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = stored
	return nil
}

var _ LayoutStore = (*MemoryLayoutStore)(nil)
