package pipeline

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"roamio/gazetteer/internal/config"
	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/mappings"
	"roamio/gazetteer/internal/models"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

// seedCountries upserts the canonical country records, wiring each one to
// the currencies, languages and timezones seeded before it. Border links
// need every country present first, so they run as a second pass.
func (p *Pipeline) seedCountries(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	if skip, err := p.additiveSkip(ctx, constants.CollectionCountries, &stats); skip || err != nil {
		return stats, err
	}

	countries, err := sources.LoadCountries(filepath.Join(p.cfg.DataDir, sources.FileCountries))
	if err != nil {
		return stats, err
	}

	currencies, err := lookup.Build(ctx, p.store, constants.CollectionCurrencies, "name",
		lookup.ByFieldUpper("code", "code"))
	if err != nil {
		return stats, err
	}
	languages, err := lookup.Build(ctx, p.store, constants.CollectionLanguages, "name",
		lookup.ByFieldLower("code", "code"))
	if err != nil {
		return stats, err
	}
	timezones, err := lookup.Build(ctx, p.store, constants.CollectionTimezones, "name",
		lookup.ByField("name", "name"))
	if err != nil {
		return stats, err
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	for _, raw := range countries {
		iso2 := strings.ToUpper(strings.TrimSpace(raw.CCA2))
		if iso2 == "" {
			stats.Add(seed.Skipped(constants.ReasonMissingCode))
			continue
		}
		if raw.Name.Common == "" {
			stats.Add(seed.Skipped(constants.ReasonMissingName))
			continue
		}
		batch.add(ctx, p.upsertOp(constants.CollectionCountries,
			store.Where{"iso2": iso2}, countryPayload(raw, iso2, currencies, languages, timezones)))
	}
	batch.flush(ctx)

	borderStats, err := p.linkBorders(ctx, countries)
	if err != nil {
		return stats, err
	}
	stats.Merge(borderStats)

	return stats, nil
}

func countryPayload(raw models.RawCountry, iso2 string, currencies, languages, timezones lookup.Tables) store.Document {
	payload := store.Document{
		"name":         raw.Name.Common,
		"officialName": raw.Name.Official,
		"iso2":         iso2,
		"iso3":         strings.ToUpper(strings.TrimSpace(raw.CCA3)),
		"isoNumeric":   raw.CCN3,
		"region":       raw.Region,
		"subregion":    raw.Subregion,
		"flagEmoji":    raw.Flag,
	}
	if len(raw.Continents) > 0 {
		payload["continent"] = raw.Continents[0]
	}
	if len(raw.Capital) > 0 {
		payload["capital"] = raw.Capital[0]
	}
	if code := diallingCode(raw); code != "" {
		payload["diallingCode"] = code
	}

	// map iteration order is random; relation lists must be sorted so a
	// rerun produces an identical payload
	currencyCodes := make([]string, 0, len(raw.Currencies))
	for code := range raw.Currencies {
		currencyCodes = append(currencyCodes, strings.ToUpper(strings.TrimSpace(code)))
	}
	sort.Strings(currencyCodes)
	if currencyIDs := refIDs(currencies, "code", currencyCodes); len(currencyIDs) > 0 {
		payload["currencyIDs"] = currencyIDs
	}
	if languageIDs := languageRefIDs(languages, raw.Languages); len(languageIDs) > 0 {
		payload["languageIDs"] = languageIDs
	}
	timezoneIDs := refIDs(timezones, "name", raw.Timezones)
	if len(timezoneIDs) > 0 {
		payload["timezoneIDs"] = timezoneIDs
	}
	return payload
}

// diallingCode joins the IDD root with its suffix. Countries sharing one
// code across area suffixes (the +1 NANP members) keep just the root.
func diallingCode(raw models.RawCountry) string {
	root := strings.TrimSpace(raw.IDD.Root)
	if root == "" {
		return ""
	}
	if len(raw.IDD.Suffixes) == 1 {
		return root + strings.TrimSpace(raw.IDD.Suffixes[0])
	}
	return root
}

// linkBorders resolves each country's neighbour list (alpha-3 codes) into
// stored ids once every country exists
func (p *Pipeline) linkBorders(ctx context.Context, countries []models.RawCountry) (seed.Stats, error) {
	var stats seed.Stats

	byISO3, err := lookup.Build(ctx, p.store, constants.CollectionCountries, "name",
		lookup.ByFieldUpper("iso3", "iso3"))
	if err != nil {
		return stats, err
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	for _, raw := range countries {
		iso2 := strings.ToUpper(strings.TrimSpace(raw.CCA2))
		if iso2 == "" || len(raw.Borders) == 0 {
			continue
		}
		borderIDs := refIDs(byISO3, "iso3", raw.Borders)
		if len(borderIDs) == 0 {
			continue
		}
		batch.add(ctx, p.upsertOp(constants.CollectionCountries,
			store.Where{"iso2": iso2}, store.Document{"borderIDs": borderIDs}))
	}
	batch.flush(ctx)
	return stats, nil
}

// additiveSkip reports whether an additive-mode run should leave the
// collection untouched, recording the skip on the stage stats
func (p *Pipeline) additiveSkip(ctx context.Context, collection string, stats *seed.Stats) (bool, error) {
	if p.cfg.Mode != config.RunModeAdditive {
		return false, nil
	}
	populated, err := p.collectionPopulated(ctx, collection)
	if err != nil {
		return false, err
	}
	if populated {
		p.log.Infow("collection already populated, skipping", "collection", collection)
		stats.Add(seed.Skipped(constants.ReasonAlreadyPopulated))
		return true, nil
	}
	return false, nil
}

// refIDs maps a list of keys through one lookup space, keeping hits in
// source order and dropping misses
func refIDs(tables lookup.Tables, space string, keys []string) []string {
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		if ref, ok := tables.Get(space, strings.TrimSpace(key)); ok {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

// languageRefIDs resolves a country's 639-2 language keys against the
// languages collection, which keys on 639-1
func languageRefIDs(languages lookup.Tables, raw map[string]string) []string {
	codes := make([]string, 0, len(raw))
	for code := range raw {
		if iso1 := mappings.LanguageToISO1(code); iso1 != "" {
			codes = append(codes, iso1)
		}
	}
	sort.Strings(codes)

	seen := make(map[string]bool)
	var ids []string
	for _, code := range codes {
		if ref, ok := languages.Get("code", code); ok && !seen[ref.ID] {
			seen[ref.ID] = true
			ids = append(ids, ref.ID)
		}
	}
	return ids
}
