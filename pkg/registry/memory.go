package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryBackend implements Backend using an in-memory map. The default
// backend; registry contents are rebuilt from the diagram source on
// startup, so persistence is optional.
type MemoryBackend struct {
	entries map[string]*Entry
	mu      sync.RWMutex
}

// NewMemoryBackend creates an in-memory registry backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]*Entry),
	}
}

// Upsert registers a diagram or updates its entry.
func (m *MemoryBackend) Upsert(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.DiagramID == "" {
		return fmt.Errorf("entry must have a diagram id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entryCopy := *entry
	if existing, ok := m.entries[entry.DiagramID]; ok {
		entryCopy.FirstSeen = existing.FirstSeen
	} else if entryCopy.FirstSeen.IsZero() {
		entryCopy.FirstSeen = time.Now().UTC()
	}

	m.entries[entry.DiagramID] = &entryCopy
	return nil
}

// Get returns the entry for a diagram id, or nil if not tracked.
func (m *MemoryBackend) Get(ctx context.Context, diagramID string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[diagramID]
	if !ok {
		return nil, nil
	}
	entryCopy := *entry
	return &entryCopy, nil
}

// List returns all entries ordered by diagram id.
func (m *MemoryBackend) List(ctx context.Context) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entryCopy := *entry
		entries = append(entries, &entryCopy)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DiagramID < entries[j].DiagramID
	})
	return entries, nil
}

// Remove drops a diagram from the registry.
func (m *MemoryBackend) Remove(ctx context.Context, diagramID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, diagramID)
	return nil
}

// Count returns the number of tracked diagrams.
func (m *MemoryBackend) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.entries)), nil
}

// Ping always succeeds for the in-memory backend.
func (m *MemoryBackend) Ping(ctx context.Context) error {
	return nil
}

// Close discards all entries.
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]*Entry)
	return nil
}
