package pipeline

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/models"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

// advisoryTitlePattern matches feed titles like
// "Norway - Level 1: Exercise Normal Precautions"
var advisoryTitlePattern = regexp.MustCompile(`^(.+?)\s*[-–]\s*Level\s*(\d)\s*:?\s*(.*)$`)

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

// seedTravelAdvisories parses the advisory syndication feed. Items whose
// title does not carry a country and level, or whose country cannot be
// resolved, are counted and dropped.
func (p *Pipeline) seedTravelAdvisories(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	if skip, err := p.additiveSkip(ctx, constants.CollectionTravelAdvisories, &stats); skip || err != nil {
		return stats, err
	}

	items, err := p.loadAdvisoryItems(ctx)
	if err != nil {
		return stats, err
	}

	countries, err := lookup.Build(ctx, p.store, constants.CollectionCountries, "name",
		lookup.ByFieldLower("name", "name"))
	if err != nil {
		return stats, err
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	for _, item := range items {
		countryName, level, ok := parseAdvisoryTitle(item.Title)
		if !ok {
			stats.Add(seed.Skipped(constants.ReasonUnparsableRow))
			continue
		}
		match, found := p.resolver.Resolve(countries.Index("name"), countryName)
		if !found {
			stats.Add(seed.Skipped(constants.ReasonCountryNotFound))
			continue
		}

		publishedAt := parsePubDate(item.PubDate)
		payload := store.Document{
			"countryID":   match.Ref.ID,
			"title":       strings.TrimSpace(item.Title),
			"level":       level,
			"summary":     item.Description,
			"link":        item.Link,
			"publishedAt": publishedAt,
		}
		batch.add(ctx, p.upsertOp(constants.CollectionTravelAdvisories,
			store.Where{"countryID": match.Ref.ID, "publishedAt": publishedAt}, payload))
	}
	batch.flush(ctx)
	return stats, nil
}

func (p *Pipeline) loadAdvisoryItems(ctx context.Context) ([]models.RawFeedItem, error) {
	if p.cfg.AdvisoriesURL != "" && p.fetcher != nil {
		raw, err := p.fetcher.Fetch(ctx, p.cfg.AdvisoriesURL)
		if err != nil {
			return nil, err
		}
		return sources.ParseFeed(raw)
	}
	return sources.LoadFeed(filepath.Join(p.cfg.DataDir, sources.FileAdvisories))
}

func parseAdvisoryTitle(title string) (country string, level int, ok bool) {
	m := advisoryTitlePattern.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return "", 0, false
	}
	level, err := strconv.Atoi(m[2])
	if err != nil || level < 1 || level > 4 {
		return "", 0, false
	}
	return strings.TrimSpace(m[1]), level, true
}

// parsePubDate tries the usual syndication date layouts and falls back to
// the raw text so the natural key stays stable either way
func parsePubDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return raw
}
