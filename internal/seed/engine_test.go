package seed

import (
	"context"
	"errors"
	"sync"
	"testing"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/store"
)

// faultyStore wraps a real store and fails selected operations, standing in
// for validation and constraint errors from the backing store.
type faultyStore struct {
	store.Store
	mu              sync.Mutex
	failCreate      bool
	failDeleteWhere bool
	failDeletes     int // fail this many Delete calls, then succeed
}

func (f *faultyStore) Create(ctx context.Context, collection string, data store.Document) (string, error) {
	if f.failCreate {
		return "", errors.New("value must be unique")
	}
	return f.Store.Create(ctx, collection, data)
}

func (f *faultyStore) DeleteWhere(ctx context.Context, collection string, where store.Where) error {
	if f.failDeleteWhere {
		return errors.New("statement timeout")
	}
	return f.Store.DeleteWhere(ctx, collection, where)
}

func (f *faultyStore) Delete(ctx context.Context, collection string, id string) error {
	f.mu.Lock()
	fail := f.failDeletes > 0
	if fail {
		f.failDeletes--
	}
	f.mu.Unlock()

	if fail {
		return errors.New("transient failure")
	}
	return f.Store.Delete(ctx, collection, id)
}

func TestUpsertCreatesThenSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(store.NewMemoryStore(), nil, 4)

	payload := store.Document{"iso2": "IS", "name": "Iceland"}
	key := store.Where{"iso2": "IS"}

	res := e.Upsert(ctx, "countries", key, payload)
	if res.Outcome != OutcomeCreated {
		t.Fatalf("Expected created, got %s (%s)", res.Outcome, res.Reason)
	}
	if res.ID == "" {
		t.Fatal("Expected an id on create")
	}

	// Identical payload on rerun: recognized as unchanged, not duplicated
	res = e.Upsert(ctx, "countries", key, payload)
	if res.Outcome != OutcomeSkipped || res.Reason != constants.ReasonUnchanged {
		t.Fatalf("Expected skip(unchanged), got %s (%s)", res.Outcome, res.Reason)
	}

	count, _ := e.Store().Count(ctx, "countries", nil)
	if count != 1 {
		t.Fatalf("Expected 1 document, got %d", count)
	}
}

func TestUpsertUpdatesOnChange(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(store.NewMemoryStore(), nil, 4)
	key := store.Where{"iso2": "IS"}

	e.Upsert(ctx, "countries", key, store.Document{"iso2": "IS", "capital": "Reykjavik"})
	res := e.Upsert(ctx, "countries", key, store.Document{"iso2": "IS", "capital": "Reykjavík"})
	if res.Outcome != OutcomeUpdated {
		t.Fatalf("Expected updated, got %s (%s)", res.Outcome, res.Reason)
	}

	doc, _ := store.FindOne(ctx, e.Store(), "countries", key)
	if doc.String("capital") != "Reykjavík" {
		t.Errorf("Expected updated capital, got %q", doc.String("capital"))
	}
}

func TestUpsertNumericRoundTripIsUnchanged(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(store.NewMemoryStore(), nil, 4)
	key := store.Where{"externalID": 507}
	payload := store.Document{"externalID": 507, "name": "Heathrow"}

	e.Upsert(ctx, "airports", key, payload)
	// The store hands ints back as float64; that must not look like a change
	res := e.Upsert(ctx, "airports", key, payload)
	if res.Outcome != OutcomeSkipped {
		t.Fatalf("Expected skip(unchanged) after numeric round-trip, got %s", res.Outcome)
	}
}

func TestUpsertStoreFailureIsContained(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(&faultyStore{Store: store.NewMemoryStore(), failCreate: true}, nil, 4)

	res := e.Upsert(ctx, "countries", store.Where{"iso2": "IS"}, store.Document{"iso2": "IS"})
	if res.Outcome != OutcomeErrored {
		t.Fatalf("Expected errored, got %s", res.Outcome)
	}
	if res.Reason != constants.ReasonStoreError {
		t.Errorf("Expected store_error reason, got %s", res.Reason)
	}
	if res.Detail == "" {
		t.Error("Expected the store's error detail to be carried")
	}
}

func TestRunBatchAggregatesAfterSettling(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(store.NewMemoryStore(), nil, 4)

	ops := make([]Op, 50)
	for i := range ops {
		i := i
		ops[i] = func(ctx context.Context) Result {
			if i%5 == 0 {
				return Skipped(constants.ReasonCountryNotFound)
			}
			return Created("id")
		}
	}

	var stats Stats
	stats.AddAll(e.RunBatch(ctx, ops))

	if stats.Created != 40 {
		t.Errorf("Expected 40 created, got %d", stats.Created)
	}
	if stats.Skipped != 10 {
		t.Errorf("Expected 10 skipped, got %d", stats.Skipped)
	}
	if stats.Reasons[constants.ReasonCountryNotFound] != 10 {
		t.Errorf("Expected 10 country_not_found, got %d", stats.Reasons[constants.ReasonCountryNotFound])
	}
	if stats.Total() != 50 {
		t.Errorf("Expected total 50, got %d", stats.Total())
	}
}

func TestClearBulk(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	e := NewEngine(s, nil, 4)

	for i := 0; i < 10; i++ {
		s.Create(ctx, "routes", store.Document{"n": i})
	}
	if err := e.Clear(ctx, "routes", 100); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	count, _ := s.Count(ctx, "routes", nil)
	if count != 0 {
		t.Fatalf("Expected empty collection, got %d", count)
	}
}

func TestClearFallsBackToBatchedDeletes(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	fs := &faultyStore{Store: mem, failDeleteWhere: true, failDeletes: 2}
	e := NewEngine(fs, nil, 2)

	for i := 0; i < 25; i++ {
		mem.Create(ctx, "routes", store.Document{"n": i})
	}
	if err := e.Clear(ctx, "routes", 10); err != nil {
		t.Fatalf("Clear fallback failed: %v", err)
	}
	count, _ := mem.Count(ctx, "routes", nil)
	if count != 0 {
		t.Fatalf("Expected empty collection after fallback, got %d", count)
	}
}

func TestStatsMerge(t *testing.T) {
	a := Stats{Created: 2, Reasons: map[string]int{"x": 1}}
	b := Stats{Updated: 1, Skipped: 3, Reasons: map[string]int{"x": 2, "y": 1}}

	a.Merge(b)
	if a.Created != 2 || a.Updated != 1 || a.Skipped != 3 {
		t.Errorf("Unexpected merged counts: %s", a.String())
	}
	if a.Reasons["x"] != 3 || a.Reasons["y"] != 1 {
		t.Errorf("Unexpected merged reasons: %v", a.Reasons)
	}
}
