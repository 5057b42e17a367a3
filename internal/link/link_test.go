package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/models"
)

func airlineTables() lookup.Tables {
	return lookup.Tables{
		SpaceExternalID: {"1355": {ID: "al-ba", Label: "British Airways"}},
		SpaceIATA:       {"BA": {ID: "al-ba", Label: "British Airways"}},
		SpaceICAO:       {"BAW": {ID: "al-ba", Label: "British Airways"}},
	}
}

func airportTables() lookup.Tables {
	return lookup.Tables{
		SpaceExternalID: {
			"507":  {ID: "ap-lhr", Label: "Heathrow"},
			"3797": {ID: "ap-jfk", Label: "JFK"},
		},
		SpaceIATA: {
			"LHR": {ID: "ap-lhr", Label: "Heathrow"},
			"JFK": {ID: "ap-jfk", Label: "JFK"},
		},
		SpaceICAO: {
			"EGLL": {ID: "ap-lhr", Label: "Heathrow"},
			"KJFK": {ID: "ap-jfk", Label: "JFK"},
		},
	}
}

func TestLinkRouteByExternalID(t *testing.T) {
	row := models.RawRouteRow{
		AirlineCode:       "BA",
		AirlineExternalID: "1355",
		SourceCode:        "LHR",
		SourceExternalID:  "507",
		DestCode:          "JFK",
		DestExternalID:    "3797",
		Equipment:         "744 777",
	}

	linked, reason := LinkRoute(airlineTables(), airportTables(), row)
	require.Empty(t, reason)
	assert.Equal(t, "al-ba", linked.Airline.ID)
	assert.Equal(t, "ap-lhr", linked.Source.ID)
	assert.Equal(t, "ap-jfk", linked.Destination.ID)
	assert.Equal(t, []string{"744", "777"}, linked.Equipment)
}

func TestLinkRouteFallsBackThroughKeySpaces(t *testing.T) {
	// No external ids on the row: resolution falls through to codes
	row := models.RawRouteRow{
		AirlineCode: "BAW", // resolves in the icao space, not iata
		SourceCode:  "LHR",
		DestCode:    "KJFK",
	}

	linked, reason := LinkRoute(airlineTables(), airportTables(), row)
	require.Empty(t, reason)
	assert.Equal(t, "al-ba", linked.Airline.ID)
	assert.Equal(t, "ap-jfk", linked.Destination.ID)
}

func TestLinkRouteUnknownAirline(t *testing.T) {
	row := models.RawRouteRow{
		AirlineCode: "ZZ",
		SourceCode:  "LHR",
		DestCode:    "JFK",
	}

	_, reason := LinkRoute(airlineTables(), airportTables(), row)
	assert.Equal(t, constants.ReasonAirlineNotFound, reason)
}

func TestLinkRouteUnknownAirportRejectsWholeRow(t *testing.T) {
	row := models.RawRouteRow{
		AirlineCode: "BA",
		SourceCode:  "LHR",
		DestCode:    "XXX",
	}

	linked, reason := LinkRoute(airlineTables(), airportTables(), row)
	assert.Equal(t, constants.ReasonAirportNotFound, reason)
	assert.Empty(t, linked.Airline.ID, "A rejected row must not be partially linked")
}

func TestParseEquipment(t *testing.T) {
	assert.Equal(t, []string{"744", "777"}, ParseEquipment("744 777"))
	assert.Equal(t, []string{"738"}, ParseEquipment("  738  "))
	assert.Empty(t, ParseEquipment(""))
}

func TestRouteKey(t *testing.T) {
	a := models.RawRouteRow{AirlineCode: "BA", SourceCode: "LHR", DestCode: "JFK"}
	b := models.RawRouteRow{AirlineCode: "BA", SourceCode: "LHR", DestCode: "JFK"}
	c := models.RawRouteRow{AirlineCode: "BA", SourceCode: "JFK", DestCode: "LHR"}

	assert.Equal(t, RouteKey(a), RouteKey(b))
	assert.NotEqual(t, RouteKey(a), RouteKey(c))
}
