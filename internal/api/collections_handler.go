package api

import (
	"net/http"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/store"
)

// CollectionCounts is the GET /collections payload: document counts per
// collection, in clear order
type CollectionCounts struct {
	Collections map[string]int64 `json:"collections"`
}

// CollectionsHandler handles GET /api/v1/admin/collections
func CollectionsHandler(s store.Store) http.HandlerFunc {
	collections := []string{
		constants.CollectionCountries,
		constants.CollectionRegions,
		constants.CollectionTimezones,
		constants.CollectionCurrencies,
		constants.CollectionLanguages,
		constants.CollectionAirports,
		constants.CollectionAirlines,
		constants.CollectionRoutes,
		constants.CollectionCrimeIndices,
		constants.CollectionCrimeTrends,
		constants.CollectionVisaRequirements,
		constants.CollectionTravelAdvisories,
		constants.CollectionDestinationProfiles,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		counts := make(map[string]int64, len(collections))
		for _, collection := range collections {
			n, err := s.Count(r.Context(), collection, nil)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			counts[collection] = n
		}
		resp := CollectionCounts{Collections: counts}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}
