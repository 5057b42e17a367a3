package pipeline

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/mappings"
	"roamio/gazetteer/internal/models"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

// seedBaseReference populates timezones, currencies and languages. These
// collections are additive regardless of run mode: they are shared
// vocabulary and a reseed never clears them, so any already-populated one is
// left exactly as it is.
func (p *Pipeline) seedBaseReference(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	countries, err := sources.LoadCountries(filepath.Join(p.cfg.DataDir, sources.FileCountries))
	if err != nil {
		return stats, err
	}

	tzStats, err := p.seedTimezones(ctx)
	if err != nil {
		return stats, err
	}
	stats.Merge(tzStats)

	currencyStats, err := p.seedCurrencies(ctx, countries)
	if err != nil {
		return stats, err
	}
	stats.Merge(currencyStats)

	languageStats, err := p.seedLanguages(ctx, countries)
	if err != nil {
		return stats, err
	}
	stats.Merge(languageStats)

	return stats, nil
}

func (p *Pipeline) seedTimezones(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	populated, err := p.collectionPopulated(ctx, constants.CollectionTimezones)
	if err != nil {
		return stats, err
	}
	if populated {
		p.log.Infow("timezones already populated, leaving as-is")
		return stats, nil
	}

	timezones, err := sources.LoadTimezones(filepath.Join(p.cfg.DataDir, sources.FileTimezones))
	if err != nil {
		return stats, err
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	for _, tz := range timezones {
		if tz.Name == "" {
			stats.Add(seed.Skipped(constants.ReasonMissingName))
			continue
		}
		payload := store.Document{
			"name":          tz.Name,
			"slug":          timezoneSlug(tz.Name),
			"label":         tz.Label,
			"utcOffset":     tz.Offset,
			"offsetMinutes": offsetMinutes(tz.Offset),
			"dst":           tz.DST,
		}
		batch.add(ctx, p.upsertOp(constants.CollectionTimezones, store.Where{"name": tz.Name}, payload))
	}
	batch.flush(ctx)
	return stats, nil
}

func (p *Pipeline) seedCurrencies(ctx context.Context, countries []models.RawCountry) (seed.Stats, error) {
	var stats seed.Stats

	populated, err := p.collectionPopulated(ctx, constants.CollectionCurrencies)
	if err != nil {
		return stats, err
	}
	if populated {
		p.log.Infow("currencies already populated, leaving as-is")
		return stats, nil
	}

	type currency struct{ name, symbol string }
	seen := make(map[string]currency)
	order := make([]string, 0, 200)
	for _, country := range countries {
		for code, cur := range country.Currencies {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = currency{name: cur.Name, symbol: cur.Symbol}
			order = append(order, code)
		}
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	for _, code := range order {
		cur := seen[code]
		if cur.name == "" {
			stats.Add(seed.Skipped(constants.ReasonMissingName))
			continue
		}
		payload := store.Document{
			"code":   code,
			"name":   cur.name,
			"symbol": cur.symbol,
		}
		batch.add(ctx, p.upsertOp(constants.CollectionCurrencies, store.Where{"code": code}, payload))
	}
	batch.flush(ctx)
	return stats, nil
}

func (p *Pipeline) seedLanguages(ctx context.Context, countries []models.RawCountry) (seed.Stats, error) {
	var stats seed.Stats

	populated, err := p.collectionPopulated(ctx, constants.CollectionLanguages)
	if err != nil {
		return stats, err
	}
	if populated {
		p.log.Infow("languages already populated, leaving as-is")
		return stats, nil
	}

	seen := make(map[string]string)
	order := make([]string, 0, 200)
	for _, country := range countries {
		for code, name := range country.Languages {
			iso1 := mappings.LanguageToISO1(code)
			if iso1 == "" {
				stats.Add(seed.Skipped(constants.ReasonMissingCode))
				continue
			}
			if _, ok := seen[iso1]; ok {
				continue
			}
			seen[iso1] = name
			order = append(order, iso1)
		}
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	for _, iso1 := range order {
		name := seen[iso1]
		payload := store.Document{
			"code":       iso1,
			"name":       name,
			"nativeName": mappings.LanguageNativeName(iso1, name),
		}
		batch.add(ctx, p.upsertOp(constants.CollectionLanguages, store.Where{"code": iso1}, payload))
	}
	batch.flush(ctx)
	return stats, nil
}

// upsertOp binds one upsert into a batchable operation
func (p *Pipeline) upsertOp(collection string, key store.Where, payload store.Document) seed.Op {
	return func(ctx context.Context) seed.Result {
		return p.engine.Upsert(ctx, collection, key, payload)
	}
}

// timezoneSlug turns an IANA name into a URL-safe identifier,
// "America/New_York" -> "america-new-york"
func timezoneSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, "/", "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	return slug
}

// offsetMinutes parses "UTC+05:30" style offsets into signed minutes.
// Unparsable offsets come out as 0 (UTC).
func offsetMinutes(offset string) int {
	s := strings.TrimPrefix(strings.TrimSpace(offset), "UTC")
	if s == "" || s == "±00:00" {
		return 0
	}
	sign := 1
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	}
	parts := strings.SplitN(s, ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes := 0
	if len(parts) == 2 {
		if m, err := strconv.Atoi(parts[1]); err == nil {
			minutes = m
		}
	}
	return sign * (hours*60 + minutes)
}
