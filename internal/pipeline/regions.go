package pipeline

import (
	"context"
	"path/filepath"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/models"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

// seedRegions upserts first-level administrative divisions, each linked to
// its parent country by ISO code. Rows naming an unknown country are
// counted and skipped, never written dangling.
func (p *Pipeline) seedRegions(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	if skip, err := p.additiveSkip(ctx, constants.CollectionRegions, &stats); skip || err != nil {
		return stats, err
	}

	countries, err := lookup.Build(ctx, p.store, constants.CollectionCountries, "name",
		lookup.ByFieldUpper("iso2", "iso2"))
	if err != nil {
		return stats, err
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	err = sources.EachRegion(filepath.Join(p.cfg.DataDir, sources.FileRegions), func(row models.RawRegionRow) error {
		if row.Name == "" {
			stats.Add(seed.Skipped(constants.ReasonMissingName))
			return nil
		}
		country, ok := countries.Get("iso2", row.CountryCode)
		if !ok {
			stats.Add(seed.Skipped(constants.ReasonCountryNotFound))
			return nil
		}
		payload := store.Document{
			"name":      row.Name,
			"code":      row.Code,
			"adminType": row.AdminType,
			"countryID": country.ID,
		}
		batch.add(ctx, p.upsertOp(constants.CollectionRegions,
			store.Where{"countryID": country.ID, "name": row.Name}, payload))
		return nil
	})
	if err != nil {
		return stats, err
	}
	batch.flush(ctx)
	return stats, nil
}
