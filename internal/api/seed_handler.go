package api

import (
	"context"
	"net/http"
	"sync"

	"roamio/gazetteer/internal/logging"
	"roamio/gazetteer/internal/pipeline"
)

// SeedRunner is the part of the pipeline the admin endpoints need
type SeedRunner interface {
	Run(ctx context.Context) (*pipeline.RunReport, error)
}

// SeedHandler exposes manual trigger and status endpoints for the import
// pipeline. Only one run may be in flight at a time.
type SeedHandler struct {
	runner SeedRunner

	mu         sync.Mutex
	running    bool
	lastReport *pipeline.RunReport
	lastError  string
}

// NewSeedHandler creates a seed handler around a runnable pipeline
func NewSeedHandler(runner SeedRunner) *SeedHandler {
	return &SeedHandler{runner: runner}
}

// TriggerSeedResponse is the POST /seed acknowledgement payload
type TriggerSeedResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// SeedStatusResponse is the GET /seed/status payload
type SeedStatusResponse struct {
	Running    bool                `json:"running"`
	LastReport *pipeline.RunReport `json:"lastReport,omitempty"`
	LastError  string              `json:"lastError,omitempty"`
}

// TriggerSeed handles POST /api/v1/admin/seed. The run happens in the
// background; a second trigger while one is in flight is rejected with 409.
func (h *SeedHandler) TriggerSeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		if h.running {
			h.mu.Unlock()
			respondWithError(w, http.StatusConflict, "a seed run is already in progress")
			return
		}
		h.running = true
		h.mu.Unlock()

		go h.runOnce()

		resp := TriggerSeedResponse{Started: true, Message: "seed run started"}
		respondWithSuccess(w, http.StatusAccepted, &resp)
	}
}

func (h *SeedHandler) runOnce() {
	// detached from the request context: the run outlives the HTTP call
	report, err := h.runner.Run(context.Background())

	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = false
	h.lastReport = report
	h.lastError = ""
	if err != nil {
		h.lastError = err.Error()
		logging.Error("manual seed run failed", "error", err.Error())
	}
}

// SeedStatus handles GET /api/v1/admin/seed/status
func (h *SeedHandler) SeedStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		resp := SeedStatusResponse{
			Running:    h.running,
			LastReport: h.lastReport,
			LastError:  h.lastError,
		}
		h.mu.Unlock()

		respondWithSuccess(w, http.StatusOK, &resp)
	}
}
