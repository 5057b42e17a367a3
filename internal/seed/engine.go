package seed

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/store"
)

const clearRetryAttempts = 3

// Engine performs idempotent create-or-update operations against the
// document store and owns the clear-then-reseed plumbing.
type Engine struct {
	store       store.Store
	log         *zap.SugaredLogger
	concurrency int
}

// NewEngine creates an upsert engine. concurrency bounds how many store
// operations one batch dispatches at a time.
func NewEngine(s store.Store, log *zap.SugaredLogger, concurrency int) *Engine {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Engine{store: s, log: log, concurrency: concurrency}
}

// Upsert looks a record up by its natural key and creates or updates it.
// The record is updated only when the payload actually differs from the
// stored document: unconditional updates would keep reruns idempotent too,
// but would make the updated counter useless for observability, so the
// engine pays for the comparison.
//
// Store failures never propagate: they are folded into the result and the
// caller's loop continues.
func (e *Engine) Upsert(ctx context.Context, collection string, naturalKey store.Where, payload store.Document) Result {
	existing, err := store.FindOne(ctx, e.store, collection, naturalKey)
	if err != nil {
		return Errored(constants.ReasonStoreError, err)
	}

	if existing == nil {
		id, err := e.store.Create(ctx, collection, payload)
		if err != nil {
			// another op in the same batch may have won the create
			if doc, ferr := store.FindOne(ctx, e.store, collection, naturalKey); ferr == nil && doc != nil {
				return Skipped(constants.ReasonAlreadyExists)
			}
			return Errored(constants.ReasonStoreError, err)
		}
		return Created(id)
	}

	if !payloadDiffers(existing, payload) {
		return Skipped(constants.ReasonUnchanged)
	}
	if err := e.store.Update(ctx, collection, existing.ID(), payload); err != nil {
		return Errored(constants.ReasonStoreError, err)
	}
	return Updated(existing.ID())
}

// payloadDiffers reports whether any payload field disagrees with the stored
// document. Values are compared through their JSON encoding so int/float64
// round-trips do not register as changes.
func payloadDiffers(existing store.Document, payload store.Document) bool {
	for field, value := range payload {
		current, ok := existing[field]
		if !ok {
			return true
		}
		a, err1 := json.Marshal(current)
		b, err2 := json.Marshal(value)
		if err1 != nil || err2 != nil || string(a) != string(b) {
			return true
		}
	}
	return false
}

// Op is one deferred record-level operation
type Op func(ctx context.Context) Result

// RunBatch dispatches the batch's operations concurrently, bounded by the
// engine's concurrency, and returns every result once the whole group has
// settled. Results land in per-op slots, so no counter is shared while
// operations are in flight.
func (e *Engine) RunBatch(ctx context.Context, ops []Op) []Result {
	results := make([]Result, len(ops))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			results[i] = op(gctx)
			return nil
		})
	}
	// ops never return errors; failures are carried inside the results
	_ = g.Wait()
	return results
}

// Clear removes every document in a collection before a full reseed. The
// bulk delete path is tried first; when the store rejects it (very large
// collections, statement timeouts) the engine falls back to batched parallel
// per-document deletes with bounded retries.
func (e *Engine) Clear(ctx context.Context, collection string, deleteBatchSize int) error {
	err := e.store.DeleteWhere(ctx, collection, nil)
	if err == nil {
		return nil
	}
	if e.log != nil {
		e.log.Warnw("bulk delete failed, falling back to batched deletes",
			"collection", collection, "error", err.Error())
	}

	if deleteBatchSize <= 0 {
		deleteBatchSize = 1000
	}

	for {
		docs, err := e.store.Find(ctx, collection, store.Query{Limit: deleteBatchSize})
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.concurrency)
		for _, doc := range docs {
			id := doc.ID()
			g.Go(func() error {
				return e.deleteWithRetry(gctx, collection, id)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
}

func (e *Engine) deleteWithRetry(ctx context.Context, collection, id string) error {
	var err error
	for attempt := 0; attempt < clearRetryAttempts; attempt++ {
		if err = e.store.Delete(ctx, collection, id); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 100 * time.Millisecond):
		}
	}
	return err
}

// Store exposes the underlying document store for lookups
func (e *Engine) Store() store.Store {
	return e.store
}
