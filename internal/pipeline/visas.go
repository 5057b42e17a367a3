package pipeline

import (
	"context"
	"path/filepath"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/models"
	"roamio/gazetteer/internal/normalize"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

// seedVisaRequirements upserts passport/destination visa rules. Both ends
// of a rule must resolve to stored countries; a rule is never written with
// one dangling side.
func (p *Pipeline) seedVisaRequirements(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	if skip, err := p.additiveSkip(ctx, constants.CollectionVisaRequirements, &stats); skip || err != nil {
		return stats, err
	}

	countries, err := lookup.Build(ctx, p.store, constants.CollectionCountries, "name",
		lookup.ByFieldUpper("iso2", "iso2"))
	if err != nil {
		return stats, err
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	err = sources.EachVisaRule(filepath.Join(p.cfg.DataDir, sources.FileVisaRules), func(row models.RawVisaRow) error {
		if row.Requirement == "" {
			stats.Add(seed.Skipped(constants.ReasonUnparsableRow))
			return nil
		}
		passport, ok := countries.Get("iso2", row.Passport)
		if !ok {
			stats.Add(seed.Skipped(constants.ReasonCountryNotFound))
			return nil
		}
		destination, ok := countries.Get("iso2", row.Destination)
		if !ok {
			stats.Add(seed.Skipped(constants.ReasonCountryNotFound))
			return nil
		}

		payload := store.Document{
			"passportCountryID":    passport.ID,
			"destinationCountryID": destination.ID,
			"requirement":          row.Requirement,
		}
		if days := normalize.Number(row.AllowedStay); days != nil {
			payload["allowedStayDays"] = int(*days)
		}
		batch.add(ctx, p.upsertOp(constants.CollectionVisaRequirements,
			store.Where{"passportCountryID": passport.ID, "destinationCountryID": destination.ID},
			payload))
		return nil
	})
	if err != nil {
		return stats, err
	}
	batch.flush(ctx)
	return stats, nil
}
