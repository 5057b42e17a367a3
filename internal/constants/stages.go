package constants

// Pipeline stage names
const (
	StageBaseReferenceData   = "BASE_REFERENCE_DATA"
	StageCountries           = "COUNTRIES"
	StageRegions             = "REGIONS"
	StageAirports            = "AIRPORTS"
	StageDestinationMetadata = "DESTINATION_METADATA"
	StageVisaRequirements    = "VISA_REQUIREMENTS"
	StageCrimeData           = "CRIME_DATA"
	StageTravelAdvisories    = "TRAVEL_ADVISORIES"
	StageAirlinesAndRoutes   = "AIRLINES_AND_ROUTES"
)

// Stage terminal statuses
const (
	StageStatusCompleted = "COMPLETED"
	StageStatusFailed    = "FAILED"
	StageStatusSkipped   = "SKIPPED"
)
