package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/models"
	"roamio/gazetteer/internal/normalize"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

// seedCrimeData upserts safety index figures and their optional trend
// records. The default source is the cached extracted dataset shipped with
// the data directory; scraping the remote index page is an explicit opt-in
// and never the silent fallback.
func (p *Pipeline) seedCrimeData(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	if skip, err := p.additiveSkip(ctx, constants.CollectionCrimeIndices, &stats); skip || err != nil {
		return stats, err
	}

	entries, err := p.loadCrimeEntries(ctx)
	if err != nil {
		return stats, err
	}

	countries, err := lookup.Build(ctx, p.store, constants.CollectionCountries, "name",
		lookup.ByFieldLower("name", "name"))
	if err != nil {
		return stats, err
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	for _, entry := range entries {
		match, ok := p.resolver.Resolve(countries.Index("name"), entry.Country)
		if !ok {
			stats.Add(seed.Skipped(constants.ReasonCountryNotFound))
			continue
		}

		year := entry.Year
		if year == 0 {
			year = time.Now().Year()
		}
		payload := store.Document{
			"countryID": match.Ref.ID,
			"year":      year,
			"score":     entry.Index,
			"rank":      entry.Rank,
			"matchedBy": match.Confidence.String(),
		}
		batch.add(ctx, p.upsertOp(constants.CollectionCrimeIndices,
			store.Where{"countryID": match.Ref.ID, "year": year}, payload))

		if entry.Trend != nil && entry.Trend.Indicator != "" {
			trend := store.Document{
				"countryID": match.Ref.ID,
				"indicator": entry.Trend.Indicator,
				"direction": entry.Trend.Direction,
			}
			if pct := normalize.Percentage(entry.Trend.ChangePct); pct != nil {
				trend["changePct"] = *pct
			}
			batch.add(ctx, p.upsertOp(constants.CollectionCrimeTrends,
				store.Where{"countryID": match.Ref.ID, "indicator": entry.Trend.Indicator}, trend))
		}
	}
	batch.flush(ctx)
	return stats, nil
}

func (p *Pipeline) loadCrimeEntries(ctx context.Context) ([]models.RawCrimeEntry, error) {
	if !p.cfg.UseRemoteCrime {
		return sources.LoadCrimeDataset(filepath.Join(p.cfg.DataDir, sources.FileCrimeIndex))
	}
	if p.fetcher == nil || p.cfg.CrimeIndexURL == "" {
		return nil, errors.New("remote crime source enabled without a fetcher and url")
	}
	raw, err := p.fetcher.Fetch(ctx, p.cfg.CrimeIndexURL)
	if err != nil {
		return nil, err
	}
	entries := sources.ParseCrimeIndexPage(raw, time.Now().Year())
	if len(entries) == 0 {
		return nil, errors.New("remote crime index page yielded no entries")
	}
	return entries, nil
}
