package store

import "context"

// OpObserver receives one callback per store operation. It decouples the
// store from any particular metrics backend.
type OpObserver func(op, collection string)

// InstrumentedStore wraps a Store and reports every operation to an
// observer
type InstrumentedStore struct {
	inner   Store
	observe OpObserver
}

var _ Store = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps a store with operation counting
func NewInstrumentedStore(inner Store, observe OpObserver) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, observe: observe}
}

func (s *InstrumentedStore) Create(ctx context.Context, collection string, data Document) (string, error) {
	s.observe("create", collection)
	return s.inner.Create(ctx, collection, data)
}

func (s *InstrumentedStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	s.observe("find", collection)
	return s.inner.Find(ctx, collection, q)
}

func (s *InstrumentedStore) Update(ctx context.Context, collection, id string, data Document) error {
	s.observe("update", collection)
	return s.inner.Update(ctx, collection, id, data)
}

func (s *InstrumentedStore) Delete(ctx context.Context, collection, id string) error {
	s.observe("delete", collection)
	return s.inner.Delete(ctx, collection, id)
}

func (s *InstrumentedStore) DeleteWhere(ctx context.Context, collection string, where Where) error {
	s.observe("delete_where", collection)
	return s.inner.DeleteWhere(ctx, collection, where)
}

func (s *InstrumentedStore) Count(ctx context.Context, collection string, where Where) (int64, error) {
	s.observe("count", collection)
	return s.inner.Count(ctx, collection, where)
}
