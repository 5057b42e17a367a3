package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"roamio/gazetteer/internal/config"
	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/logging"
	"roamio/gazetteer/internal/metrics"
	"roamio/gazetteer/internal/resolve"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

// Pipeline sequences the whole import in dependency order, owns the
// clear-then-reseed policy and aggregates run-level statistics.
type Pipeline struct {
	cfg      config.SeederConfig
	store    store.Store
	engine   *seed.Engine
	resolver *resolve.Resolver
	fetcher  *sources.Fetcher
	metrics  *metrics.MetricsRegistry
	log      *zap.SugaredLogger
}

// New creates a pipeline. fetcher and metricsReg may be nil; remote dataset
// paths are then unavailable and metrics are not recorded.
func New(cfg config.SeederConfig, s store.Store, fetcher *sources.Fetcher, metricsReg *metrics.MetricsRegistry) *Pipeline {
	log := logging.GetLogger()
	return &Pipeline{
		cfg:      cfg,
		store:    s,
		engine:   seed.NewEngine(s, log, cfg.Concurrency),
		resolver: resolve.New(cfg.AllowFuzzyMatch, log),
		fetcher:  fetcher,
		metrics:  metricsReg,
		log:      log,
	}
}

// stage is one ordered phase of the import. A stage whose hard dependency
// did not complete is skipped and reported, never run against incomplete
// data.
type stage struct {
	name  string
	needs []string
	run   func(ctx context.Context) (seed.Stats, error)
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{name: constants.StageBaseReferenceData, run: p.seedBaseReference},
		{name: constants.StageCountries, needs: []string{constants.StageBaseReferenceData}, run: p.seedCountries},
		{name: constants.StageRegions, needs: []string{constants.StageCountries}, run: p.seedRegions},
		{name: constants.StageAirports, needs: []string{constants.StageCountries}, run: p.seedAirports},
		{name: constants.StageDestinationMetadata, needs: []string{constants.StageCountries}, run: p.seedDestinationMetadata},
		{name: constants.StageVisaRequirements, needs: []string{constants.StageCountries}, run: p.seedVisaRequirements},
		{name: constants.StageCrimeData, needs: []string{constants.StageCountries}, run: p.seedCrimeData},
		{name: constants.StageTravelAdvisories, needs: []string{constants.StageCountries}, run: p.seedTravelAdvisories},
		{name: constants.StageAirlinesAndRoutes, needs: []string{constants.StageAirports}, run: p.seedAirlinesAndRoutes},
	}
}

// Run executes the full import. The returned error is non-nil only for
// fatal conditions (the store is unreachable); stage failures are carried
// inside the report.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{StartedAt: time.Now(), Mode: string(p.cfg.Mode)}

	// Preflight: nothing can proceed if the store is down
	if _, err := p.store.Count(ctx, constants.CollectionCountries, nil); err != nil {
		return nil, fmt.Errorf("document store unreachable: %w", err)
	}

	if p.cfg.Mode == config.RunModeFull {
		if err := p.clearAll(ctx); err != nil {
			return nil, err
		}
	}

	completed := make(map[string]bool)
	for _, st := range p.stages() {
		if blocked := p.unmetDependency(st, completed); blocked != "" {
			p.log.Warnw("stage skipped, dependency did not complete",
				"stage", st.name, "dependency", blocked)
			report.Stages = append(report.Stages, StageResult{
				Name:   st.name,
				Status: constants.StageStatusSkipped,
				Error:  fmt.Sprintf("dependency %s did not complete", blocked),
			})
			p.recordStage(st.name, constants.StageStatusSkipped, 0, seed.Stats{})
			if p.metrics != nil {
				p.metrics.SkipReasonsTotal.WithLabelValues(st.name, constants.ReasonDependencyFailed).Inc()
			}
			continue
		}
		report.Stages = append(report.Stages, p.runStage(ctx, st))
		last := report.Stages[len(report.Stages)-1]
		completed[st.name] = last.Status == constants.StageStatusCompleted
	}

	report.FinishedAt = time.Now()
	p.logSummary(report)
	return report, nil
}

func (p *Pipeline) unmetDependency(st stage, completed map[string]bool) string {
	for _, dep := range st.needs {
		if !completed[dep] {
			return dep
		}
	}
	return ""
}

func (p *Pipeline) runStage(ctx context.Context, st stage) StageResult {
	log := logging.WithStage(st.name)
	log.Infow("stage starting")
	start := time.Now()

	stats, err := st.run(ctx)
	duration := time.Since(start)

	result := StageResult{
		Name:     st.name,
		Stats:    stats,
		Duration: duration,
	}
	if err != nil {
		result.Status = constants.StageStatusFailed
		result.Error = err.Error()
		log.Errorw("stage failed", "error", err.Error(), "duration", duration.String())
	} else {
		result.Status = constants.StageStatusCompleted
		log.Infow("stage completed",
			"created", stats.Created,
			"updated", stats.Updated,
			"skipped", stats.Skipped,
			"errors", stats.Errors,
			"top_skip_reasons", topReasons(stats.Reasons, 3),
			"duration", duration.String(),
		)
	}
	p.recordStage(st.name, result.Status, duration, stats)
	return result
}

// clearAll removes the prior generation of every full-reset collection, in
// reverse dependency order. Additive collections (timezones, currencies,
// languages) are left alone.
func (p *Pipeline) clearAll(ctx context.Context) error {
	for _, collection := range constants.ClearOrder {
		if err := p.engine.Clear(ctx, collection, p.cfg.DeleteBatchSize); err != nil {
			return fmt.Errorf("failed to clear %s: %w", collection, err)
		}
		p.log.Infow("collection cleared", "collection", collection)
	}
	return nil
}

// collectionPopulated reports whether an additive-policy target already has
// documents and should be left untouched
func (p *Pipeline) collectionPopulated(ctx context.Context, collection string) (bool, error) {
	count, err := p.store.Count(ctx, collection, nil)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p *Pipeline) recordStage(name, status string, duration time.Duration, stats seed.Stats) {
	if p.metrics == nil {
		return
	}
	p.metrics.StagesTotal.WithLabelValues(name, status).Inc()
	if duration > 0 {
		p.metrics.StageDuration.WithLabelValues(name).Observe(duration.Seconds())
	}
	p.metrics.RecordsTotal.WithLabelValues(name, "created").Add(float64(stats.Created))
	p.metrics.RecordsTotal.WithLabelValues(name, "updated").Add(float64(stats.Updated))
	p.metrics.RecordsTotal.WithLabelValues(name, "skipped").Add(float64(stats.Skipped))
	p.metrics.RecordsTotal.WithLabelValues(name, "errored").Add(float64(stats.Errors))
	for reason, n := range stats.Reasons {
		p.metrics.SkipReasonsTotal.WithLabelValues(name, reason).Add(float64(n))
	}
}

func (p *Pipeline) logSummary(report *RunReport) {
	totals := report.Totals()
	p.log.Infow("pipeline run finished",
		"mode", report.Mode,
		"duration", report.FinishedAt.Sub(report.StartedAt).String(),
		"stages_completed", report.CountStatus(constants.StageStatusCompleted),
		"stages_failed", report.CountStatus(constants.StageStatusFailed),
		"stages_skipped", report.CountStatus(constants.StageStatusSkipped),
		"created", totals.Created,
		"updated", totals.Updated,
		"skipped", totals.Skipped,
		"errors", totals.Errors,
	)
}

// topReasons renders the n most frequent skip reasons for a stage summary
func topReasons(reasons map[string]int, n int) string {
	if len(reasons) == 0 {
		return ""
	}
	type rc struct {
		reason string
		count  int
	}
	sorted := make([]rc, 0, len(reasons))
	for reason, count := range reasons {
		sorted = append(sorted, rc{reason, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].reason < sorted[j].reason
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := ""
	for i, r := range sorted {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%d", r.reason, r.count)
	}
	return out
}

// batcher accumulates record operations and dispatches them in bounded
// concurrent batches, folding results into the stage stats only after each
// batch has settled.
type batcher struct {
	engine *seed.Engine
	size   int
	ops    []seed.Op
	stats  *seed.Stats
}

func newBatcher(engine *seed.Engine, size int, stats *seed.Stats) *batcher {
	if size <= 0 {
		size = 100
	}
	return &batcher{engine: engine, size: size, stats: stats}
}

func (b *batcher) add(ctx context.Context, op seed.Op) {
	b.ops = append(b.ops, op)
	if len(b.ops) >= b.size {
		b.flush(ctx)
	}
}

func (b *batcher) flush(ctx context.Context) {
	if len(b.ops) == 0 {
		return
	}
	b.stats.AddAll(b.engine.RunBatch(ctx, b.ops))
	b.ops = b.ops[:0]
}
