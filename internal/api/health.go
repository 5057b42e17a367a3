package api

import (
	"encoding/json"
	"net/http"
	"time"

	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/store"
)

// ServiceStatus describes one dependency in the health response
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// HealthCheckResponse is the GET /healthCheck payload
type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}

// HealthCheckHandler handles GET /healthCheck. The document store is probed
// with a cheap count against the countries collection.
func HealthCheckHandler(s store.Store, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]ServiceStatus)

		storeStatus := "ok"
		storeDetails := "document store reachable"
		if _, err := s.Count(r.Context(), constants.CollectionCountries, nil); err != nil {
			storeStatus = "down"
			storeDetails = err.Error()
		}
		services["store"] = ServiceStatus{
			Status:  storeStatus,
			Details: storeDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		resp := HealthCheckResponse{
			Status:   overallStatus,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Services: services,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
