package storage

import (
	"context"
	"sort"
	"sync"

	"flowgate-hq/bpmnlint/pkg/history"
)

// MemoryStorage implements history.Storage using an in-memory map.
// Intended for tests and for deployments that opt out of persistence.
type MemoryStorage struct {
	records map[string]*history.Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*history.Record),
	}
}

// Store persists a history record in memory.
func (s *MemoryStorage) Store(ctx context.Context, record *history.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recordCopy := *record
	s.records[record.ID] = &recordCopy
	return nil
}

// Query retrieves records matching the query filters.
func (s *MemoryStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*history.Record{}
	for _, record := range s.records {
		if matchesQuery(record, query) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sortRecords(results, query)

	start := query.Offset
	if start > len(results) {
		return []*history.Record{}, nil
	}
	results = results[start:]

	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}

	return results, nil
}

// Count returns the number of records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			count++
		}
	}
	return count, nil
}

// Delete removes records matching the query filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if matchesQuery(record, query) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Ping always succeeds for the in-memory backend.
func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

// Close discards all records.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*history.Record)
	return nil
}

// matchesQuery checks if a record matches the query filters.
func matchesQuery(record *history.Record, query *history.Query) bool {
	if query.StartTime != nil && record.ValidatedAt.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.ValidatedAt.After(*query.EndTime) {
		return false
	}
	if query.DiagramID != "" && record.DiagramID != query.DiagramID {
		return false
	}
	if query.Source != "" && record.Source != query.Source {
		return false
	}

	switch query.Status {
	case "valid":
		if !record.Valid {
			return false
		}
	case "invalid":
		if record.Valid {
			return false
		}
	}

	return true
}

// sortRecords orders results the same way the SQLite backend does.
func sortRecords(records []*history.Record, query *history.Query) {
	asc := query.SortOrder == "asc"

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !asc {
			a, b = b, a
		}
		switch query.SortBy {
		case "errors":
			return a.ErrorCount < b.ErrorCount
		case "warnings":
			return a.WarningCount < b.WarningCount
		default:
			return a.ValidatedAt.Before(b.ValidatedAt)
		}
	})
}

// GetByID retrieves a single record by ID, or nil if absent. For tests.
func (s *MemoryStorage) GetByID(id string) *history.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil
	}
	recordCopy := *record
	return &recordCopy
}

// Size returns the number of stored records. For tests.
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
