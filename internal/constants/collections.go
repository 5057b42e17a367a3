package constants

// Collection names in the document store
const (
	CollectionCountries           = "countries"
	CollectionRegions             = "regions"
	CollectionTimezones           = "timezones"
	CollectionCurrencies          = "currencies"
	CollectionLanguages           = "languages"
	CollectionAirports            = "airports"
	CollectionAirlines            = "airlines"
	CollectionRoutes              = "routes"
	CollectionCrimeIndices        = "crime-indices"
	CollectionCrimeTrends         = "crime-trends"
	CollectionVisaRequirements    = "visa-requirements"
	CollectionTravelAdvisories    = "travel-advisories"
	CollectionDestinationProfiles = "destination-profiles"
)

// ClearOrder lists collections in reverse dependency order for full reseeds.
// Dependents must be removed before the records they reference.
var ClearOrder = []string{
	CollectionRoutes,
	CollectionAirlines,
	CollectionTravelAdvisories,
	CollectionCrimeTrends,
	CollectionCrimeIndices,
	CollectionVisaRequirements,
	CollectionDestinationProfiles,
	CollectionAirports,
	CollectionRegions,
	CollectionCountries,
}
