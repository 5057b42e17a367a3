package pipeline

import (
	"time"

	"roamio/gazetteer/internal/seed"
)

// StageResult is the outcome of a single pipeline stage.
type StageResult struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Stats    seed.Stats    `json:"stats"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RunReport is the full accounting of one pipeline run.
type RunReport struct {
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Mode       string        `json:"mode"`
	Stages     []StageResult `json:"stages"`
}

// Totals folds every stage's statistics into one aggregate.
func (r *RunReport) Totals() seed.Stats {
	var totals seed.Stats
	for _, st := range r.Stages {
		totals.Merge(st.Stats)
	}
	return totals
}

// CountStatus returns how many stages finished with the given status.
func (r *RunReport) CountStatus(status string) int {
	n := 0
	for _, st := range r.Stages {
		if st.Status == status {
			n++
		}
	}
	return n
}

// Stage returns the result for a named stage, or nil if it never ran.
func (r *RunReport) Stage(name string) *StageResult {
	for i := range r.Stages {
		if r.Stages[i].Name == name {
			return &r.Stages[i]
		}
	}
	return nil
}
