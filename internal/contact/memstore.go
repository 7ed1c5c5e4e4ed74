package contact

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
)

// Compile-time assertion that MemStore satisfies the Store interface.
var _ Store = (*MemStore)(nil)

// MemStore is a thread-safe, in-memory implementation of [Store].
// It is suitable for single-device use and testing.
type MemStore struct {
	mu       sync.RWMutex
	contacts map[string]Contact
}

// NewMemStore returns an initialised [MemStore].
func NewMemStore() *MemStore {
	return &MemStore{
		contacts: make(map[string]Contact),
	}
}

// Add implements [Store.Add].
func (s *MemStore) Add(ctx context.Context, c Contact) (Contact, error) {
	if c.ID == "" {
		id, err := generateID()
		if err != nil {
			return Contact{}, fmt.Errorf("contact: generate id: %w", err)
		}
		c.ID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contacts == nil {
		s.contacts = make(map[string]Contact)
	}
	if _, exists := s.contacts[c.ID]; exists {
		return Contact{}, ErrDuplicateID
	}

	s.contacts[c.ID] = c
	return c, nil
}

// Get implements [Store.Get].
func (s *MemStore) Get(ctx context.Context, id string) (Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return Contact{}, ErrNotFound
	}
	return c, nil
}

// List implements [Store.List].
func (s *MemStore) List(ctx context.Context) ([]Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Remove implements [Store.Remove].
func (s *MemStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return ErrNotFound
	}
	delete(s.contacts, id)
	return nil
}

// BulkImport implements [Store.BulkImport].
func (s *MemStore) BulkImport(ctx context.Context, contacts []Contact) (int, error) {
	count := 0
	for _, c := range contacts {
		if _, err := s.Add(ctx, c); err != nil {
			return count, fmt.Errorf("contact: bulk import at index %d (name %q): %w", count, c.Name, err)
		}
		count++
	}
	return count, nil
}

// generateID produces a random 16-byte hex string using crypto/rand.
func generateID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
