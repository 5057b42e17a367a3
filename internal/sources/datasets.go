package sources

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"roamio/gazetteer/internal/models"
)

// Dataset file names expected under the seeder's data directory
const (
	FileCountries  = "countries.json"
	FileTimezones  = "timezones.json"
	FileRegions    = "regions.csv"
	FileAirports   = "airports.csv"
	FileAirlines   = "airlines.dat"
	FileRoutes     = "routes.dat"
	FileFactbook   = "factbook.json"
	FileCrimeIndex = "crime_index.json"
	FileVisaRules  = "visa_rules.csv"
	FileAdvisories = "advisories.xml"
)

func loadJSONFile(path string, target interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// LoadCountries reads the countries JSON dump
func LoadCountries(path string) ([]models.RawCountry, error) {
	var countries []models.RawCountry
	if err := loadJSONFile(path, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// LoadTimezones reads the timezones JSON dataset
func LoadTimezones(path string) ([]models.RawTimezone, error) {
	var timezones []models.RawTimezone
	if err := loadJSONFile(path, &timezones); err != nil {
		return nil, err
	}
	return timezones, nil
}

// LoadFactbookProfiles reads the factbook-style country profiles, keyed by
// the factbook's own two-letter country code
func LoadFactbookProfiles(path string) (map[string]models.RawFactbookProfile, error) {
	profiles := make(map[string]models.RawFactbookProfile)
	if err := loadJSONFile(path, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// LoadCrimeDataset reads the cached extracted crime dataset. This is the
// safe default path; the remote scraper is an explicit opt-in.
func LoadCrimeDataset(path string) ([]models.RawCrimeEntry, error) {
	var entries []models.RawCrimeEntry
	if err := loadJSONFile(path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ParseCrimeDataset decodes crime entries from a raw document (the remote
// fetch path shares this with cached files)
func ParseCrimeDataset(raw []byte) ([]models.RawCrimeEntry, error) {
	var entries []models.RawCrimeEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode crime dataset: %w", err)
	}
	return entries, nil
}

// regionsConfig: comma-separated with a header row
var regionsConfig = DelimitedConfig{Comma: ',', Comment: '#', HasHeader: true}

// EachRegion streams the administrative regions CSV
func EachRegion(path string, fn func(row models.RawRegionRow) error) error {
	return EachRecord(path, regionsConfig, func(rec Record) error {
		return fn(models.RawRegionRow{
			CountryCode: strings.ToUpper(rec.GetNamed("country_code")),
			Code:        strings.ToUpper(rec.GetNamed("code")),
			Name:        rec.GetNamed("name"),
			AdminType:   strings.ToLower(rec.GetNamed("type")),
		})
	})
}

// airportsConfig: comma-separated with a header row
var airportsConfig = DelimitedConfig{Comma: ',', HasHeader: true}

// EachAirport streams the airports CSV
func EachAirport(path string, fn func(row models.RawAirportRow) error) error {
	return EachRecord(path, airportsConfig, func(rec Record) error {
		return fn(models.RawAirportRow{
			ExternalID:  rec.GetNamed("id"),
			Ident:       strings.ToUpper(rec.GetNamed("ident")),
			Type:        strings.ToLower(rec.GetNamed("type")),
			Name:        rec.GetNamed("name"),
			Latitude:    rec.GetNamed("latitude_deg"),
			Longitude:   rec.GetNamed("longitude_deg"),
			ElevationFt: rec.GetNamed("elevation_ft"),
			CountryISO:  strings.ToUpper(rec.GetNamed("iso_country")),
			RegionCode:  strings.ToUpper(rec.GetNamed("iso_region")),
			City:        rec.GetNamed("municipality"),
			IATA:        strings.ToUpper(rec.GetNamed("iata_code")),
			ICAO:        strings.ToUpper(rec.GetNamed("gps_code")),
			Timezone:    rec.GetNamed("timezone"),
		})
	})
}

// openflightsConfig: comma-separated, no header, \N for nulls
var openflightsConfig = DelimitedConfig{Comma: ',', NullToken: `\N`}

// EachAirline streams the airlines file (openflights column layout)
func EachAirline(path string, fn func(row models.RawAirlineRow) error) error {
	return EachRecord(path, openflightsConfig, func(rec Record) error {
		if rec.Len() < 8 {
			return nil
		}
		return fn(models.RawAirlineRow{
			ExternalID: rec.Get(0),
			Name:       rec.Get(1),
			Alias:      rec.Get(2),
			IATA:       strings.ToUpper(rec.Get(3)),
			ICAO:       strings.ToUpper(rec.Get(4)),
			Callsign:   rec.Get(5),
			Country:    rec.Get(6),
			Active:     strings.EqualFold(rec.Get(7), "Y"),
		})
	})
}

// EachRoute streams the routes file (openflights column layout). At route
// scale (~60k+ rows) this must stay a streaming read.
func EachRoute(path string, fn func(row models.RawRouteRow) error) error {
	return EachRecord(path, openflightsConfig, func(rec Record) error {
		if rec.Len() < 9 {
			return nil
		}
		stops, _ := strconv.Atoi(rec.Get(7))
		return fn(models.RawRouteRow{
			AirlineCode:       strings.ToUpper(rec.Get(0)),
			AirlineExternalID: rec.Get(1),
			SourceCode:        strings.ToUpper(rec.Get(2)),
			SourceExternalID:  rec.Get(3),
			DestCode:          strings.ToUpper(rec.Get(4)),
			DestExternalID:    rec.Get(5),
			Codeshare:         strings.EqualFold(rec.Get(6), "Y"),
			Stops:             stops,
			Equipment:         rec.Get(8),
		})
	})
}

// visaConfig: comma-separated with a header row
var visaConfig = DelimitedConfig{Comma: ',', Comment: '#', HasHeader: true}

// EachVisaRule streams the visa rules CSV
func EachVisaRule(path string, fn func(row models.RawVisaRow) error) error {
	return EachRecord(path, visaConfig, func(rec Record) error {
		return fn(models.RawVisaRow{
			Passport:    strings.ToUpper(rec.GetNamed("passport")),
			Destination: strings.ToUpper(rec.GetNamed("destination")),
			Requirement: strings.ToLower(rec.GetNamed("requirement")),
			AllowedStay: rec.GetNamed("allowed_stay_days"),
		})
	})
}
