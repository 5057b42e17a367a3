package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/gazetteer/internal/config"
	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/store"
)

const fixtureCountries = `[
  {"name":{"common":"United States","official":"United States of America"},
   "cca2":"US","cca3":"USA","ccn3":"840","region":"Americas","subregion":"North America",
   "continents":["North America"],"capital":["Washington, D.C."],"flag":"🇺🇸",
   "idd":{"root":"+1","suffixes":["201","202","203"]},
   "currencies":{"USD":{"name":"United States dollar","symbol":"$"}},
   "languages":{"eng":"English"},"timezones":["America/New_York"]},
  {"name":{"common":"Germany","official":"Federal Republic of Germany"},
   "cca2":"DE","cca3":"DEU","ccn3":"276","region":"Europe","subregion":"Western Europe",
   "continents":["Europe"],"capital":["Berlin"],"borders":["NOR"],"flag":"🇩🇪",
   "idd":{"root":"+4","suffixes":["9"]},
   "currencies":{"EUR":{"name":"Euro","symbol":"€"}},
   "languages":{"deu":"German"},"timezones":["Europe/Berlin"]},
  {"name":{"common":"Norway","official":"Kingdom of Norway"},
   "cca2":"NO","cca3":"NOR","ccn3":"578","region":"Europe","subregion":"Northern Europe",
   "continents":["Europe"],"capital":["Oslo"],"flag":"🇳🇴",
   "idd":{"root":"+4","suffixes":["7"]},
   "currencies":{"NOK":{"name":"Norwegian krone","symbol":"kr"}},
   "languages":{"nor":"Norwegian"},"timezones":["Europe/Oslo"]},
  {"name":{"common":"DR Congo","official":"Democratic Republic of the Congo"},
   "cca2":"CD","cca3":"COD","ccn3":"180","region":"Africa","subregion":"Middle Africa",
   "continents":["Africa"],"capital":["Kinshasa"],"flag":"🇨🇩",
   "idd":{"root":"+2","suffixes":["43"]},
   "currencies":{"CDF":{"name":"Congolese franc","symbol":"FC"}},
   "languages":{"fra":"French","swa":"Swahili"},"timezones":["Africa/Kinshasa"]},
  {"name":{"common":""},"cca2":"XX"}
]`

const fixtureTimezones = `[
  {"name":"America/New_York","label":"Eastern Time","offset":"UTC-05:00","dst":true},
  {"name":"Europe/Berlin","label":"Central European Time","offset":"UTC+01:00","dst":true},
  {"name":"Europe/Oslo","label":"Central European Time","offset":"UTC+01:00","dst":true},
  {"name":"Africa/Kinshasa","label":"West Africa Time","offset":"UTC+01:00","dst":false}
]`

const fixtureRegions = `country_code,code,name,type
US,US-NY,New York,state
US,US-CA,California,state
DE,DE-BB,Brandenburg,state
NO,NO-03,Oslo,county
ZZ,ZZ-01,Nowhere,state
`

const fixtureAirports = `id,ident,type,name,latitude_deg,longitude_deg,elevation_ft,iso_country,iso_region,municipality,iata_code,gps_code,timezone
3797,KJFK,large_airport,John F Kennedy International Airport,40.6398,-73.7789,13,US,US-NY,New York,JFK,KJFK,America/New_York
2,EDDB,large_airport,Berlin Brandenburg Airport,52.3667,13.5033,157,DE,DE-BB,Berlin,BER,EDDB,Europe/Berlin
644,ENGM,large_airport,Oslo Gardermoen Airport,60.1939,11.1004,681,NO,NO-03,Oslo,OSL,ENGM,Europe/Oslo
9001,9ZZZ,small_airport,No Identifier Field,10.0,10.0,100,US,US-CA,Somewhere,,,
9002,KXYZ,small_airport,Broken Coordinates,999.0,10.0,100,US,US-CA,Somewhere,,KXYZ,
9003,KZZZ,small_airport,Unknown Country,10.0,10.0,100,ZZ,,Somewhere,,KZZZ,
`

const fixtureAirlines = `1,American Airlines,\N,AA,AAL,AMERICAN,United States,Y
2,Lufthansa,\N,LH,DLH,LUFTHANSA,Germany,Y
`

const fixtureRoutes = `AA,1,JFK,3797,BER,2,,0,738
AA,1,JFK,3797,BER,2,,0,738
LH,2,BER,2,OSL,644,,0,320 32N
XX,\N,JFK,3797,BER,2,,0,738
AA,1,JFK,3797,QQQ,\N,,0,738
`

const fixtureFactbook = `{
  "cg":{"name":"Democratic Republic of the Congo","population":"115 million",
        "population_growth":"3.1%","literacy":"80%","independence":"30 June 1960",
        "religions":"50% Christian, 50% Other","median_age":"16.7",
        "coordinates":"0 00 S, 25 00 E"},
  "us":{"name":"United States","population":"339,996,563","population_growth":"0.7%",
        "literacy":"99%","independence":"4 July 1776","religions":"70% Christian, 30% Other",
        "median_age":"38.5","coordinates":"38 00 N, 97 00 W"}
}`

const fixtureCrime = `[
  {"country":"United States","year":2025,"index":49.2,"rank":56,
   "trend":{"indicator":"overall","direction":"rising","change_pct":"1.4%"}},
  {"country":"Atlantis","year":2025,"index":10.0,"rank":1}
]`

const fixtureVisas = `passport,destination,requirement,allowed_stay_days
US,DE,visa_free,90
DE,US,visa_waiver,90
US,ZZ,visa_free,30
`

const fixtureAdvisories = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Travel Advisories</title>
<item><title>Germany - Level 1: Exercise Normal Precautions</title>
<description>Review the country information page.</description>
<link>https://example.org/advisories/germany</link>
<pubDate>Tue, 01 Jul 2025 10:00:00 +0000</pubDate></item>
<item><title>Atlantis - Level 2: Exercise Increased Caution</title>
<description>No such place.</description>
<link>https://example.org/advisories/atlantis</link>
<pubDate>Tue, 01 Jul 2025 10:00:00 +0000</pubDate></item>
<item><title>An update without the usual shape</title>
<description>Nothing to parse here.</description>
<link>https://example.org/advisories/misc</link>
<pubDate>Tue, 01 Jul 2025 10:00:00 +0000</pubDate></item>
</channel></rss>`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"countries.json":   fixtureCountries,
		"timezones.json":   fixtureTimezones,
		"regions.csv":      fixtureRegions,
		"airports.csv":     fixtureAirports,
		"airlines.dat":     fixtureAirlines,
		"routes.dat":       fixtureRoutes,
		"factbook.json":    fixtureFactbook,
		"crime_index.json": fixtureCrime,
		"visa_rules.csv":   fixtureVisas,
		"advisories.xml":   fixtureAdvisories,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}

func testConfig(dir string, mode config.RunMode) config.SeederConfig {
	return config.SeederConfig{
		DataDir:         dir,
		Mode:            mode,
		BatchSize:       10,
		DeleteBatchSize: 100,
		Concurrency:     4,
	}
}

func mustCount(t *testing.T, s store.Store, collection string) int64 {
	t.Helper()
	n, err := s.Count(context.Background(), collection, nil)
	require.NoError(t, err)
	return n
}

func TestPipelineFullRun(t *testing.T) {
	dir := writeFixtures(t)
	s := store.NewMemoryStore()
	p := New(testConfig(dir, config.RunModeFull), s, nil, nil)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 9, len(report.Stages))
	for _, st := range report.Stages {
		assert.Equal(t, constants.StageStatusCompleted, st.Status, "stage %s: %s", st.Name, st.Error)
	}

	assert.EqualValues(t, 4, mustCount(t, s, constants.CollectionCountries))
	assert.EqualValues(t, 4, mustCount(t, s, constants.CollectionTimezones))
	assert.EqualValues(t, 4, mustCount(t, s, constants.CollectionCurrencies))
	assert.EqualValues(t, 4, mustCount(t, s, constants.CollectionRegions))
	assert.EqualValues(t, 3, mustCount(t, s, constants.CollectionAirports))
	assert.EqualValues(t, 2, mustCount(t, s, constants.CollectionAirlines))
	assert.EqualValues(t, 2, mustCount(t, s, constants.CollectionRoutes))
	assert.EqualValues(t, 1, mustCount(t, s, constants.CollectionCrimeIndices))
	assert.EqualValues(t, 1, mustCount(t, s, constants.CollectionCrimeTrends))
	assert.EqualValues(t, 2, mustCount(t, s, constants.CollectionVisaRequirements))
	assert.EqualValues(t, 1, mustCount(t, s, constants.CollectionTravelAdvisories))
	assert.EqualValues(t, 2, mustCount(t, s, constants.CollectionDestinationProfiles))
}

// The factbook keys countries by its own code space, where "cg" means the
// Democratic Republic of the Congo; the profile must land on the ISO "CD"
// country, never on the Republic of the Congo.
func TestPipelineFactbookCodeMapping(t *testing.T) {
	dir := writeFixtures(t)
	s := store.NewMemoryStore()
	p := New(testConfig(dir, config.RunModeFull), s, nil, nil)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	ctx := context.Background()
	congo, err := store.FindOne(ctx, s, constants.CollectionCountries, store.Where{"iso2": "CD"})
	require.NoError(t, err)

	profile, err := store.FindOne(ctx, s, constants.CollectionDestinationProfiles,
		store.Where{"countryID": congo.ID()})
	require.NoError(t, err)
	assert.EqualValues(t, 115000000, profile["population"])
	assert.Equal(t, "1960-06-30", profile["independenceDate"])
}

func TestPipelineCountryDiallingCode(t *testing.T) {
	dir := writeFixtures(t)
	s := store.NewMemoryStore()
	p := New(testConfig(dir, config.RunModeFull), s, nil, nil)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	ctx := context.Background()
	germany, err := store.FindOne(ctx, s, constants.CollectionCountries, store.Where{"iso2": "DE"})
	require.NoError(t, err)
	assert.Equal(t, "+49", germany["diallingCode"])

	// NANP members share the root across many area suffixes
	us, err := store.FindOne(ctx, s, constants.CollectionCountries, store.Where{"iso2": "US"})
	require.NoError(t, err)
	assert.Equal(t, "+1", us["diallingCode"])
}

func TestPipelineAirportRejections(t *testing.T) {
	dir := writeFixtures(t)
	s := store.NewMemoryStore()
	p := New(testConfig(dir, config.RunModeFull), s, nil, nil)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	airports := report.Stage(constants.StageAirports)
	require.NotNil(t, airports)
	assert.Equal(t, 1, airports.Stats.Reasons[constants.ReasonNoIdentifier])
	assert.Equal(t, 1, airports.Stats.Reasons[constants.ReasonInvalidCoordinate])
	assert.Equal(t, 1, airports.Stats.Reasons[constants.ReasonCountryNotFound])
}

func TestPipelineRouteLinking(t *testing.T) {
	dir := writeFixtures(t)
	s := store.NewMemoryStore()
	p := New(testConfig(dir, config.RunModeFull), s, nil, nil)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	routes := report.Stage(constants.StageAirlinesAndRoutes)
	require.NotNil(t, routes)
	assert.Equal(t, 1, routes.Stats.Reasons[constants.ReasonDuplicateRoute])
	assert.Equal(t, 1, routes.Stats.Reasons[constants.ReasonAirlineNotFound])
	assert.Equal(t, 1, routes.Stats.Reasons[constants.ReasonAirportNotFound])

	doc, err := store.FindOne(context.Background(), s, constants.CollectionRoutes,
		store.Where{"routeKey": "LH-BER-OSL"})
	require.NoError(t, err)
	assert.Equal(t, "LH", doc.String("airlineCode"))
	equipment, ok := doc["equipment"].([]interface{})
	require.True(t, ok)
	assert.Len(t, equipment, 2)
}

func TestPipelineRerunIsStable(t *testing.T) {
	dir := writeFixtures(t)
	s := store.NewMemoryStore()

	first, err := New(testConfig(dir, config.RunModeFull), s, nil, nil).Run(context.Background())
	require.NoError(t, err)
	second, err := New(testConfig(dir, config.RunModeFull), s, nil, nil).Run(context.Background())
	require.NoError(t, err)

	// a full rerun clears and rebuilds the same records; the shared
	// vocabulary collections stay put and are not reseeded
	assert.Equal(t, 0, second.Stage(constants.StageBaseReferenceData).Stats.Created)
	assert.Equal(t,
		first.Stage(constants.StageCountries).Stats.Created,
		second.Stage(constants.StageCountries).Stats.Created)
	assert.Equal(t,
		first.Stage(constants.StageAirlinesAndRoutes).Stats.Created,
		second.Stage(constants.StageAirlinesAndRoutes).Stats.Created)
	assert.EqualValues(t, 4, mustCount(t, s, constants.CollectionCountries))
	assert.EqualValues(t, 2, mustCount(t, s, constants.CollectionRoutes))
}

func TestPipelineAdditiveSkipsPopulated(t *testing.T) {
	dir := writeFixtures(t)
	s := store.NewMemoryStore()

	_, err := New(testConfig(dir, config.RunModeFull), s, nil, nil).Run(context.Background())
	require.NoError(t, err)
	before := mustCount(t, s, constants.CollectionCountries)

	report, err := New(testConfig(dir, config.RunModeAdditive), s, nil, nil).Run(context.Background())
	require.NoError(t, err)

	countries := report.Stage(constants.StageCountries)
	require.NotNil(t, countries)
	assert.Equal(t, 1, countries.Stats.Reasons[constants.ReasonAlreadyPopulated])
	assert.Equal(t, 0, countries.Stats.Created)
	assert.Equal(t, before, mustCount(t, s, constants.CollectionCountries))
}

func TestPipelineDependencySkip(t *testing.T) {
	dir := writeFixtures(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "airports.csv")))

	s := store.NewMemoryStore()
	report, err := New(testConfig(dir, config.RunModeFull), s, nil, nil).Run(context.Background())
	require.NoError(t, err)

	airports := report.Stage(constants.StageAirports)
	require.NotNil(t, airports)
	assert.Equal(t, constants.StageStatusFailed, airports.Status)

	routes := report.Stage(constants.StageAirlinesAndRoutes)
	require.NotNil(t, routes)
	assert.Equal(t, constants.StageStatusSkipped, routes.Status)
	assert.Contains(t, routes.Error, constants.StageAirports)

	// unrelated branches still run
	assert.Equal(t, constants.StageStatusCompleted, report.Stage(constants.StageCountries).Status)
	assert.Equal(t, constants.StageStatusCompleted, report.Stage(constants.StageVisaRequirements).Status)
}

type downStore struct {
	store.Store
}

func (d *downStore) Count(ctx context.Context, collection string, where store.Where) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestPipelineStoreUnreachableIsFatal(t *testing.T) {
	dir := writeFixtures(t)
	p := New(testConfig(dir, config.RunModeFull), &downStore{store.NewMemoryStore()}, nil, nil)

	report, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "unreachable")
}
