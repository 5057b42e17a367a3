package constants

// Skip reasons reported by record-level operations. These feed the per-stage
// counters, so they stay short and machine-friendly.
const (
	ReasonAlreadyExists     = "already_exists"
	ReasonUnchanged         = "unchanged"
	ReasonDuplicateRoute    = "duplicate_route"
	ReasonNoIdentifier      = "no_identifier"
	ReasonInvalidCoordinate = "invalid_coordinates"
	ReasonMissingName       = "missing_name"
	ReasonMissingCode       = "missing_code"
	ReasonCountryNotFound   = "country_not_found"
	ReasonAirlineNotFound   = "airline_not_found"
	ReasonAirportNotFound   = "airport_not_found"
	ReasonStoreError        = "store_error"
	ReasonDependencyFailed  = "dependency_failed"
	ReasonAlreadyPopulated  = "already_populated"
	ReasonUnparsableRow     = "unparsable_row"
)
