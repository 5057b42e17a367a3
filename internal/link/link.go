package link

import (
	"strings"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/models"
)

// Key spaces tried when resolving a dependent record's references, in
// priority order: the source dataset's own numeric id is the most reliable,
// IATA-style codes next, ICAO-style codes last.
const (
	SpaceExternalID = "externalID"
	SpaceIATA       = "iata"
	SpaceICAO       = "icao"
)

// KeyedRef is one candidate (key space, key) pair for a reference
type KeyedRef struct {
	Space string
	Key   string
}

// Resolve tries each candidate pair in order against the lookup tables and
// returns the first hit. The zero Ref and false mean the reference cannot be
// resolved in any configured key space.
func Resolve(tables lookup.Tables, candidates []KeyedRef) (lookup.Ref, bool) {
	for _, c := range candidates {
		if c.Key == "" {
			continue
		}
		if ref, ok := tables.Get(c.Space, c.Key); ok {
			return ref, true
		}
	}
	return lookup.Ref{}, false
}

// RouteLink is a fully resolved route candidate. All three references are
// required: a route is never written with a dangling airline or airport.
type RouteLink struct {
	Airline     lookup.Ref
	Source      lookup.Ref
	Destination lookup.Ref
	Equipment   []string
}

// LinkRoute resolves one raw route row against the airline and airport
// lookup tables. The returned reason is empty on success; otherwise it names
// which required reference was missing and the row must be skipped, not
// partially linked.
func LinkRoute(airlines, airports lookup.Tables, row models.RawRouteRow) (RouteLink, string) {
	airline, ok := Resolve(airlines, []KeyedRef{
		{Space: SpaceExternalID, Key: row.AirlineExternalID},
		{Space: SpaceIATA, Key: row.AirlineCode},
		{Space: SpaceICAO, Key: row.AirlineCode},
	})
	if !ok {
		return RouteLink{}, constants.ReasonAirlineNotFound
	}

	source, ok := resolveAirport(airports, row.SourceExternalID, row.SourceCode)
	if !ok {
		return RouteLink{}, constants.ReasonAirportNotFound
	}
	destination, ok := resolveAirport(airports, row.DestExternalID, row.DestCode)
	if !ok {
		return RouteLink{}, constants.ReasonAirportNotFound
	}

	return RouteLink{
		Airline:     airline,
		Source:      source,
		Destination: destination,
		Equipment:   ParseEquipment(row.Equipment),
	}, ""
}

func resolveAirport(airports lookup.Tables, externalID, code string) (lookup.Ref, bool) {
	return Resolve(airports, []KeyedRef{
		{Space: SpaceExternalID, Key: externalID},
		{Space: SpaceIATA, Key: code},
		{Space: SpaceICAO, Key: code},
	})
}

// ParseEquipment splits a whitespace-delimited aircraft type list into
// tokens. An empty list is valid, not a failure.
func ParseEquipment(s string) []string {
	return strings.Fields(s)
}

// RouteKey is the natural key for a route: the raw airline, source and
// destination codes. Duplicate keys within one run are skipped, never
// overwritten.
func RouteKey(row models.RawRouteRow) string {
	return row.AirlineCode + "-" + row.SourceCode + "-" + row.DestCode
}
