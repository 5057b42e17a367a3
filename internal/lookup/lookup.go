package lookup

import (
	"context"
	"fmt"
	"strings"

	"roamio/gazetteer/internal/store"
)

// Ref is a lightweight handle to a canonical stored entity
type Ref struct {
	ID    string
	Label string
}

// Extractor derives one lookup key from a document. An empty key means the
// document is absent from that particular index.
type Extractor struct {
	Name string
	Key  func(doc store.Document) string
}

// Tables holds one index per extractor, keyed extractor name -> key -> ref.
// Tables are built once per stage and read-only afterwards, so concurrent
// reads during a batch are safe without locking.
type Tables map[string]map[string]Ref

// Get looks a key up in one key space
func (t Tables) Get(space, key string) (Ref, bool) {
	idx, ok := t[space]
	if !ok {
		return Ref{}, false
	}
	ref, ok := idx[key]
	return ref, ok
}

// Index returns one key space's whole index (read-only)
func (t Tables) Index(space string) map[string]Ref {
	return t[space]
}

// Size returns the number of entries in one key space
func (t Tables) Size(space string) int {
	return len(t[space])
}

// Build loads every document in a collection once and indexes it under each
// extractor's key space. Duplicate keys are first-writer-wins; documents
// missing a key are simply absent from that index.
func Build(ctx context.Context, s store.Store, collection string, labelField string, extractors ...Extractor) (Tables, error) {
	docs, err := s.Find(ctx, collection, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s for lookup: %w", collection, err)
	}

	tables := make(Tables, len(extractors))
	for _, ex := range extractors {
		tables[ex.Name] = make(map[string]Ref)
	}

	for _, doc := range docs {
		id := doc.ID()
		if id == "" {
			continue
		}
		ref := Ref{ID: id, Label: doc.String(labelField)}
		for _, ex := range extractors {
			key := ex.Key(doc)
			if key == "" {
				continue
			}
			if _, exists := tables[ex.Name][key]; exists {
				continue
			}
			tables[ex.Name][key] = ref
		}
	}
	return tables, nil
}

// ByField returns an extractor indexing documents by one string field
func ByField(space, field string) Extractor {
	return Extractor{
		Name: space,
		Key: func(doc store.Document) string {
			return doc.String(field)
		},
	}
}

// ByFieldUpper indexes by an uppercased string field (code key spaces)
func ByFieldUpper(space, field string) Extractor {
	return Extractor{
		Name: space,
		Key: func(doc store.Document) string {
			return strings.ToUpper(strings.TrimSpace(doc.String(field)))
		},
	}
}

// ByFieldLower indexes by a lowercased string field (name key spaces)
func ByFieldLower(space, field string) Extractor {
	return Extractor{
		Name: space,
		Key: func(doc store.Document) string {
			return strings.ToLower(strings.TrimSpace(doc.String(field)))
		},
	}
}

// ByNumericField indexes by a numeric field rendered as its integer string
// (external numeric ids survive the float64 round-trip through JSON).
func ByNumericField(space, field string) Extractor {
	return Extractor{
		Name: space,
		Key: func(doc store.Document) string {
			switch v := doc[field].(type) {
			case float64:
				return fmt.Sprintf("%.0f", v)
			case int:
				return fmt.Sprintf("%d", v)
			case int64:
				return fmt.Sprintf("%d", v)
			case string:
				return strings.TrimSpace(v)
			}
			return ""
		},
	}
}
