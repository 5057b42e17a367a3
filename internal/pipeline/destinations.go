package pipeline

import (
	"context"
	"path/filepath"
	"sort"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/mappings"
	"roamio/gazetteer/internal/models"
	"roamio/gazetteer/internal/normalize"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

// seedDestinationMetadata enriches countries with factbook-style profile
// data. Profiles are keyed by the source's own two-letter codes, which are
// NOT ISO: each code goes through the code mapping first, then the name
// resolver as a fallback. Free-text fields run through the normalizers and
// a failed parse drops the field rather than the profile.
func (p *Pipeline) seedDestinationMetadata(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	if skip, err := p.additiveSkip(ctx, constants.CollectionDestinationProfiles, &stats); skip || err != nil {
		return stats, err
	}

	profiles, err := sources.LoadFactbookProfiles(filepath.Join(p.cfg.DataDir, sources.FileFactbook))
	if err != nil {
		return stats, err
	}

	countries, err := lookup.Build(ctx, p.store, constants.CollectionCountries, "name",
		lookup.ByFieldUpper("iso2", "iso2"),
		lookup.ByFieldLower("name", "name"))
	if err != nil {
		return stats, err
	}

	// map iteration order is random; sort codes so run output is stable
	codes := make([]string, 0, len(profiles))
	for code := range profiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	for _, code := range codes {
		profile := profiles[code]
		country, ok := p.resolveProfileCountry(countries, code, profile.Name)
		if !ok {
			stats.Add(seed.Skipped(constants.ReasonCountryNotFound))
			continue
		}
		batch.add(ctx, p.upsertOp(constants.CollectionDestinationProfiles,
			store.Where{"countryID": country.ID}, profilePayload(country.ID, profile)))
	}
	batch.flush(ctx)
	return stats, nil
}

func (p *Pipeline) resolveProfileCountry(countries lookup.Tables, code, name string) (lookup.Ref, bool) {
	if iso2 := mappings.FactbookToISO2(code); iso2 != "" {
		if ref, ok := countries.Get("iso2", iso2); ok {
			return ref, true
		}
	}
	if match, ok := p.resolver.Resolve(countries.Index("name"), name); ok {
		return match.Ref, true
	}
	return lookup.Ref{}, false
}

func profilePayload(countryID string, profile models.RawFactbookProfile) store.Document {
	payload := store.Document{"countryID": countryID}

	if v := normalize.Number(profile.Population); v != nil {
		payload["population"] = *v
	}
	if v := normalize.Percentage(profile.PopulationGrowth); v != nil {
		payload["populationGrowthPct"] = *v
	}
	if v := normalize.Percentage(profile.Literacy); v != nil {
		payload["literacyPct"] = *v
	}
	if v := normalize.CalendarDate(profile.Independence); v != nil {
		payload["independenceDate"] = v.Format("2006-01-02")
	}
	if v := normalize.Number(profile.MedianAge); v != nil {
		payload["medianAge"] = *v
	}
	if coords := normalize.Coordinates(profile.Coordinates); coords != nil {
		payload["latitude"] = coords.Lat
		payload["longitude"] = coords.Lon
	}
	if groups := normalize.PercentGroups(profile.Religions); len(groups) > 0 {
		religions := make([]map[string]interface{}, 0, len(groups))
		for _, g := range groups {
			religions = append(religions, map[string]interface{}{
				"name": g.Name,
				"pct":  g.Pct,
			})
		}
		payload["religions"] = religions
	}
	return payload
}
