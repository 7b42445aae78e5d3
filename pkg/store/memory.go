package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/observability"
	"github.com/neurospin/distmeta/pkg/specifier"
)

// MemoryStore is an in-memory descriptor store for tests and
// single-process use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Get retrieves a descriptor record by distribution name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*Record, error) {
	key := specifier.Normalize(name)

	s.mu.RLock()
	rec, ok := s.records[key]
	s.mu.RUnlock()

	observability.Store().OnGet(ctx, key, ok)
	if !ok {
		return nil, ErrNotFound
	}

	// Hand out a copy so callers cannot mutate the stored record.
	out := *rec
	out.Descriptor = rec.Descriptor.Clone()
	return &out, nil
}

// Put stores a descriptor under its normalized name.
func (s *MemoryStore) Put(ctx context.Context, d *descriptor.Descriptor) (*Record, error) {
	key := specifier.Normalize(d.Name)
	rec := &Record{
		Name:       key,
		Revision:   uuid.NewString(),
		UpdatedAt:  time.Now().UTC(),
		Descriptor: d.Clone(),
	}

	s.mu.Lock()
	s.records[key] = rec
	s.mu.Unlock()

	observability.Store().OnPut(ctx, key)

	out := *rec
	out.Descriptor = rec.Descriptor.Clone()
	return &out, nil
}

// List returns the stored distribution names in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	s.mu.RUnlock()

	slices.Sort(names)
	return names, nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	key := specifier.Normalize(name)

	s.mu.Lock()
	_, ok := s.records[key]
	delete(s.records, key)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	observability.Store().OnDelete(ctx, key)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
