package models

// Raw source records. Every reader decodes its loosely-typed input (CSV
// fields, JSON documents, feed items) into one of these shapes immediately,
// so the rest of the pipeline works on typed, partial data instead of maps
// keyed by column name. Fields stay strings where the source is free text;
// normalization happens downstream and a failed parse becomes a nil field,
// not an error.

// RawCountry is one entry of the countries JSON dump
type RawCountry struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2       string   `json:"cca2"`
	CCA3       string   `json:"cca3"`
	CCN3       string   `json:"ccn3"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Continents []string `json:"continents"`
	Capital    []string `json:"capital"`
	Borders    []string `json:"borders"` // alpha-3 codes of neighbours
	Flag       string   `json:"flag"`
	IDD        struct {
		Root     string   `json:"root"`
		Suffixes []string `json:"suffixes"`
	} `json:"idd"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	Languages map[string]string `json:"languages"` // ISO 639-2 -> display name
	Timezones []string          `json:"timezones"` // IANA names
}

// RawTimezone is one entry of the timezones JSON dataset
type RawTimezone struct {
	Name   string `json:"name"`   // IANA name
	Label  string `json:"label"`  // human label
	Offset string `json:"offset"` // "UTC+05:30"
	DST    bool   `json:"dst"`
}

// RawRegionRow is one row of the administrative regions CSV
type RawRegionRow struct {
	CountryCode string // ISO alpha-2
	Code        string // e.g. "US-CA"
	Name        string
	AdminType   string // state/province/territory/region/district
}

// RawAirportRow is one row of the airports CSV. Coordinates and elevation
// stay as source text; the airports stage parses and validates them.
type RawAirportRow struct {
	ExternalID  string // numeric id in the source dataset
	Ident       string
	Type        string // large_airport, medium_airport, ...
	Name        string
	Latitude    string
	Longitude   string
	ElevationFt string
	CountryISO  string // iso_country
	RegionCode  string // iso_region, e.g. "US-CA"
	City        string // municipality
	IATA        string
	ICAO        string // gps/icao code column
	Timezone    string // IANA name, optional column
}

// RawAirlineRow is one row of the airlines file
type RawAirlineRow struct {
	ExternalID string
	Name       string
	Alias      string
	IATA       string
	ICAO       string
	Callsign   string
	Country    string // free-text country name
	Active     bool
}

// RawRouteRow is one row of the routes file. Airline and airports are named
// by code and by source-dataset numeric id; either key space may be missing.
type RawRouteRow struct {
	AirlineCode       string
	AirlineExternalID string
	SourceCode        string
	SourceExternalID  string
	DestCode          string
	DestExternalID    string
	Codeshare         bool
	Stops             int
	Equipment         string // whitespace-delimited aircraft type tokens
}

// RawFactbookProfile is one country profile from the factbook-style JSON.
// All fields are free text and run through the normalizers.
type RawFactbookProfile struct {
	Name             string `json:"name"`
	Population       string `json:"population"`
	PopulationGrowth string `json:"population_growth"`
	Literacy         string `json:"literacy"`
	Independence     string `json:"independence"`
	Religions        string `json:"religions"`
	MedianAge        string `json:"median_age"`
	Coordinates      string `json:"coordinates"`
}

// RawCrimeEntry is one country's entry in the extracted crime dataset
type RawCrimeEntry struct {
	Country string         `json:"country"`
	Year    int            `json:"year"`
	Index   float64        `json:"index"`
	Rank    int            `json:"rank"`
	Trend   *RawCrimeTrend `json:"trend,omitempty"`
}

// RawCrimeTrend is an optional year-over-year movement attached to a crime
// entry
type RawCrimeTrend struct {
	Indicator string `json:"indicator"`
	Direction string `json:"direction"` // rising/falling/stable
	ChangePct string `json:"change_pct"`
}

// RawVisaRow is one row of the visa rules CSV
type RawVisaRow struct {
	Passport    string // ISO alpha-2
	Destination string // ISO alpha-2
	Requirement string
	AllowedStay string // days, free text
}

// RawFeedItem is one syndication feed entry
type RawFeedItem struct {
	Title       string
	Description string
	Link        string
	PubDate     string
}
