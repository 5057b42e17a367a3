package pipeline

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/link"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/models"
	"roamio/gazetteer/internal/seed"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

// seedAirlinesAndRoutes imports carriers and then the route network between
// them. Routes are the highest-volume dataset and every row must fully
// resolve its airline and both airport endpoints before it is written.
func (p *Pipeline) seedAirlinesAndRoutes(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	airlineStats, err := p.seedAirlines(ctx)
	if err != nil {
		return stats, err
	}
	stats.Merge(airlineStats)

	routeStats, err := p.seedRoutes(ctx)
	if err != nil {
		return stats, err
	}
	stats.Merge(routeStats)

	return stats, nil
}

func (p *Pipeline) seedAirlines(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	if skip, err := p.additiveSkip(ctx, constants.CollectionAirlines, &stats); skip || err != nil {
		return stats, err
	}

	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	err := sources.EachAirline(filepath.Join(p.cfg.DataDir, sources.FileAirlines), func(row models.RawAirlineRow) error {
		if row.Name == "" || strings.EqualFold(row.Name, "unknown") {
			stats.Add(seed.Skipped(constants.ReasonMissingName))
			return nil
		}
		externalID, err := strconv.Atoi(strings.TrimSpace(row.ExternalID))
		if err != nil {
			stats.Add(seed.Skipped(constants.ReasonUnparsableRow))
			return nil
		}

		payload := store.Document{
			"externalID":  externalID,
			"name":        row.Name,
			"countryName": row.Country,
			"active":      row.Active,
		}
		if row.Alias != "" {
			payload["alias"] = row.Alias
		}
		if row.IATA != "" {
			payload["iata"] = row.IATA
		}
		if row.ICAO != "" {
			payload["icao"] = row.ICAO
		}
		if row.Callsign != "" {
			payload["callsign"] = row.Callsign
		}
		batch.add(ctx, p.upsertOp(constants.CollectionAirlines,
			store.Where{"externalID": externalID}, payload))
		return nil
	})
	if err != nil {
		return stats, err
	}
	batch.flush(ctx)
	return stats, nil
}

func (p *Pipeline) seedRoutes(ctx context.Context) (seed.Stats, error) {
	var stats seed.Stats

	if skip, err := p.additiveSkip(ctx, constants.CollectionRoutes, &stats); skip || err != nil {
		return stats, err
	}

	airlines, err := lookup.Build(ctx, p.store, constants.CollectionAirlines, "name",
		lookup.ByNumericField(link.SpaceExternalID, "externalID"),
		lookup.ByFieldUpper(link.SpaceIATA, "iata"),
		lookup.ByFieldUpper(link.SpaceICAO, "icao"))
	if err != nil {
		return stats, err
	}
	airports, err := lookup.Build(ctx, p.store, constants.CollectionAirports, "name",
		lookup.ByNumericField(link.SpaceExternalID, "externalID"),
		lookup.ByFieldUpper(link.SpaceIATA, "iata"),
		lookup.ByFieldUpper(link.SpaceICAO, "icao"))
	if err != nil {
		return stats, err
	}

	seen := make(map[string]bool)
	batch := newBatcher(p.engine, p.cfg.BatchSize, &stats)
	err = sources.EachRoute(filepath.Join(p.cfg.DataDir, sources.FileRoutes), func(row models.RawRouteRow) error {
		key := link.RouteKey(row)
		if seen[key] {
			stats.Add(seed.Skipped(constants.ReasonDuplicateRoute))
			return nil
		}
		seen[key] = true

		linked, reason := link.LinkRoute(airlines, airports, row)
		if reason != "" {
			stats.Add(seed.Skipped(reason))
			return nil
		}

		payload := store.Document{
			"routeKey":             key,
			"airlineID":            linked.Airline.ID,
			"airlineCode":          row.AirlineCode,
			"sourceAirportID":      linked.Source.ID,
			"sourceCode":           row.SourceCode,
			"destinationAirportID": linked.Destination.ID,
			"destinationCode":      row.DestCode,
			"codeshare":            row.Codeshare,
			"stops":                row.Stops,
		}
		if len(linked.Equipment) > 0 {
			payload["equipment"] = linked.Equipment
		}
		batch.add(ctx, p.upsertOp(constants.CollectionRoutes,
			store.Where{"routeKey": key}, payload))
		return nil
	})
	if err != nil {
		return stats, err
	}
	batch.flush(ctx)
	return stats, nil
}
