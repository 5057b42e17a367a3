package store

import (
	"context"
	"errors"
)

// Document is one record in a collection. The "id" field is assigned by the
// store on create and is treated as a stable foreign key afterwards.
type Document map[string]interface{}

// ID returns the document's assigned id, or "" if it has none yet
func (d Document) ID() string {
	if v, ok := d["id"].(string); ok {
		return v
	}
	return ""
}

// String returns the named field as a string ("" when absent or not a string)
func (d Document) String(field string) string {
	if v, ok := d[field].(string); ok {
		return v
	}
	return ""
}

// Where is an equality filter ANDed over its fields
type Where map[string]interface{}

// Query bounds a Find call
type Query struct {
	Where Where
	Limit int // 0 means no limit
}

// ErrNotFound is returned by operations addressing a missing document
var ErrNotFound = errors.New("document not found")

// Store is the document store consumed by the pipeline. Implementations must
// not assume transactional semantics across calls; every multi-step write in
// the pipeline is designed to be safely re-run.
type Store interface {
	Create(ctx context.Context, collection string, data Document) (string, error)
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	Update(ctx context.Context, collection string, id string, data Document) error
	Delete(ctx context.Context, collection string, id string) error
	DeleteWhere(ctx context.Context, collection string, where Where) error
	Count(ctx context.Context, collection string, where Where) (int64, error)
}

// FindOne returns the first match for the filter, or nil when there is none
func FindOne(ctx context.Context, s Store, collection string, where Where) (Document, error) {
	docs, err := s.Find(ctx, collection, Query{Where: where, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}
