package pipeline

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/models"
	"roamio/gazetteer/internal/normalize"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

var (
	iataPattern = regexp.MustCompile(`^[A-Z0-9]{3}$`)
	icaoPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{3}$`)
)

// airportTypes maps source type tokens to the stored vocabulary. Unknown
// types pass through unchanged rather than being dropped.
var airportTypes = map[string]string{
	"large_airport":  "large",
	"medium_airport": "medium",
	"small_airport":  "small",
	"heliport":       "heliport",
	"seaplane_base":  "seaplane",
	"balloonport":    "balloonport",
	"closed":         "closed",
}

// seedAirports streams the airports CSV. A row must carry at least one
// usable identifier (IATA, ICAO or a plausible ident) and in-range
// coordinates; the country link is required, region and timezone links are
// best-effort.
func (p *Pipeline) seedAirports(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	if skip, err := p.additiveSkip(ctx, constants.CollectionAirports, &stats); skip || err != nil {
		return stats, err
	}

	countries, err := lookup.Build(ctx, p.store, constants.CollectionCountries, "name",
		lookup.ByFieldUpper("iso2", "iso2"))
	if err != nil {
		return stats, err
	}
	regions, err := lookup.Build(ctx, p.store, constants.CollectionRegions, "name",
		lookup.ByFieldUpper("code", "code"))
	if err != nil {
		return stats, err
	}
	timezones, err := lookup.Build(ctx, p.store, constants.CollectionTimezones, "name",
		lookup.ByField("name", "name"))
	if err != nil {
		return stats, err
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	err = sources.EachAirport(filepath.Join(p.cfg.DataDir, sources.FileAirports), func(row models.RawAirportRow) error {
		result := p.airportOp(row, countries, regions, timezones)
		if result.op == nil {
			stats.Add(seed.Skipped(result.reason))
			return nil
		}
		batch.add(ctx, result.op)
		return nil
	})
	if err != nil {
		return stats, err
	}
	batch.flush(ctx)
	return stats, nil
}

type stagedOp struct {
	op     seed.Op
	reason string
}

func (p *Pipeline) airportOp(row models.RawAirportRow, countries, regions, timezones lookup.Tables) stagedOp {
	if row.Name == "" {
		return stagedOp{reason: constants.ReasonMissingName}
	}

	iata, icao := airportIdentifiers(row)
	if iata == "" && icao == "" {
		return stagedOp{reason: constants.ReasonNoIdentifier}
	}

	coords := normalize.Coordinates(row.Latitude + ", " + row.Longitude)
	if coords == nil {
		return stagedOp{reason: constants.ReasonInvalidCoordinate}
	}

	country, ok := countries.Get("iso2", row.CountryISO)
	if !ok {
		return stagedOp{reason: constants.ReasonCountryNotFound}
	}

	externalID, err := strconv.Atoi(strings.TrimSpace(row.ExternalID))
	if err != nil {
		return stagedOp{reason: constants.ReasonUnparsableRow}
	}

	payload := store.Document{
		"externalID": externalID,
		"name":       row.Name,
		"type":       normalizeAirportType(row.Type),
		"latitude":   coords.Lat,
		"longitude":  coords.Lon,
		"city":       row.City,
		"countryID":  country.ID,
	}
	if iata != "" {
		payload["iata"] = iata
	}
	if icao != "" {
		payload["icao"] = icao
	}
	if region, ok := regions.Get("code", row.RegionCode); ok {
		payload["regionID"] = region.ID
	}
	if tz, ok := timezones.Get("name", row.Timezone); ok {
		payload["timezoneID"] = tz.ID
	}
	if elevation, err := strconv.Atoi(strings.TrimSpace(row.ElevationFt)); err == nil {
		payload["elevationFt"] = elevation
	}

	return stagedOp{op: p.upsertOp(constants.CollectionAirports,
		store.Where{"externalID": externalID}, payload)}
}

// airportIdentifiers picks the usable codes from a row. The ident column
// doubles as an ICAO code when it has the right shape and the dedicated
// column is empty.
func airportIdentifiers(row models.RawAirportRow) (iata, icao string) {
	if iataPattern.MatchString(row.IATA) {
		iata = row.IATA
	}
	if icaoPattern.MatchString(row.ICAO) {
		icao = row.ICAO
	} else if icaoPattern.MatchString(row.Ident) {
		icao = row.Ident
	}
	return iata, icao
}

func normalizeAirportType(raw string) string {
	if mapped, ok := airportTypes[raw]; ok {
		return mapped
	}
	return raw
}
