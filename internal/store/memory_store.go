package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used for unit tests and dry runs
// (DB_TYPE=memory). Documents are deep-copied through JSON on the way in and
// out so callers never share mutable state with the store, and values take
// the same shapes a JSON-backed store would return (float64 numbers).
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	order       map[string][]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
		order:       make(map[string][]string),
	}
}

func copyDocument(d Document) (Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	out := Document{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return out, nil
}

func matches(doc Document, where Where) bool {
	for field, want := range where {
		got, ok := doc[field]
		if !ok {
			return false
		}
		if !looselyEqual(got, want) {
			return false
		}
	}
	return true
}

// looselyEqual compares values the way a JSON store would: numeric types
// compare by value regardless of Go type.
func looselyEqual(a, b interface{}) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Create inserts a new document and returns its assigned id
func (s *MemoryStore) Create(ctx context.Context, collection string, data Document) (string, error) {
	doc, err := copyDocument(data)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]Document)
	}
	id := uuid.NewString()
	doc["id"] = id
	s.collections[collection][id] = doc
	s.order[collection] = append(s.order[collection], id)
	return id, nil
}

// Find returns documents matching the query in insertion order
func (s *MemoryStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	for _, id := range s.order[collection] {
		doc, ok := s.collections[collection][id]
		if !ok {
			continue
		}
		if !matches(doc, q.Where) {
			continue
		}
		copied, err := copyDocument(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

// Update merges the given fields into an existing document
func (s *MemoryStore) Update(ctx context.Context, collection string, id string, data Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	patch, err := copyDocument(data)
	if err != nil {
		return err
	}
	for field, value := range patch {
		if field == "id" {
			continue
		}
		doc[field] = value
	}
	return nil
}

// Delete removes one document by id
func (s *MemoryStore) Delete(ctx context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	s.compactOrder(collection)
	return nil
}

// DeleteWhere removes every document matching the filter
func (s *MemoryStore) DeleteWhere(ctx context.Context, collection string, where Where) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, doc := range s.collections[collection] {
		if matches(doc, where) {
			delete(s.collections[collection], id)
		}
	}
	s.compactOrder(collection)
	return nil
}

// compactOrder drops ids of deleted documents so repeated clear and reseed
// cycles do not grow the insertion-order slice. Callers hold the write lock.
func (s *MemoryStore) compactOrder(collection string) {
	kept := s.order[collection][:0]
	for _, id := range s.order[collection] {
		if _, ok := s.collections[collection][id]; ok {
			kept = append(kept, id)
		}
	}
	s.order[collection] = kept
}

// Count returns the number of documents matching the filter
func (s *MemoryStore) Count(ctx context.Context, collection string, where Where) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, doc := range s.collections[collection] {
		if matches(doc, where) {
			count++
		}
	}
	return count, nil
}
