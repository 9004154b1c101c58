// Package memory provides an in-memory user store for tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/jacentio/usersapi/store"
)

// Store is an in-memory implementation of the user store operations.
// Records are copied on the way in and out, so callers never share maps
// with the store.
type Store struct {
	mu      sync.RWMutex
	records map[string]store.Record
}

// New creates a new empty in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string]store.Record),
	}
}

// Get retrieves a record by userid.
func (s *Store) Get(ctx context.Context, id string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(rec), nil
}

// Put replaces the record stored under rec's userid.
func (s *Store) Put(ctx context.Context, rec store.Record) error {
	id := rec.UserID()
	if id == "" {
		return store.ErrMissingUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = clone(rec)
	return nil
}

// Delete removes a record. Missing ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// ScanAll returns every record in no particular order.
func (s *Store) ScanAll(ctx context.Context) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]store.Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, clone(rec))
	}
	return records, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func clone(rec store.Record) store.Record {
	out := make(store.Record, len(rec))
	for k, v := range rec {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
