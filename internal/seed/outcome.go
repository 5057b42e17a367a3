package seed

import "fmt"

// Outcome classifies the result of one record-level operation. Record
// failures are data, not control flow: a bad row becomes a Skipped or
// Errored result and the batch keeps going.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeSkipped
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeErrored:
		return "errored"
	}
	return "unknown"
}

// Result is the outcome of one record-level operation
type Result struct {
	Outcome Outcome
	Reason  string // set for Skipped and Errored
	Detail  string // backing store error detail, when available
	ID      string // document id for Created/Updated
}

// Created returns a successful creation result
func Created(id string) Result {
	return Result{Outcome: OutcomeCreated, ID: id}
}

// Updated returns a successful update result
func Updated(id string) Result {
	return Result{Outcome: OutcomeUpdated, ID: id}
}

// Skipped returns a skip result with its reason
func Skipped(reason string) Result {
	return Result{Outcome: OutcomeSkipped, Reason: reason}
}

// Errored returns an error result carrying the store's detail
func Errored(reason string, err error) Result {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return Result{Outcome: OutcomeErrored, Reason: reason, Detail: detail}
}

// Stats aggregates record-level results for one stage. Stats are merged
// single-threaded after a batch settles, so no locking is needed.
type Stats struct {
	Created int
	Updated int
	Skipped int
	Errors  int
	Reasons map[string]int
}

// Add folds one result into the totals
func (s *Stats) Add(r Result) {
	switch r.Outcome {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeErrored:
		s.Errors++
	}
	if r.Reason != "" {
		if s.Reasons == nil {
			s.Reasons = make(map[string]int)
		}
		s.Reasons[r.Reason]++
	}
}

// AddAll folds a settled batch into the totals
func (s *Stats) AddAll(results []Result) {
	for _, r := range results {
		s.Add(r)
	}
}

// Merge folds another Stats into this one
func (s *Stats) Merge(other Stats) {
	s.Created += other.Created
	s.Updated += other.Updated
	s.Skipped += other.Skipped
	s.Errors += other.Errors
	for reason, n := range other.Reasons {
		if s.Reasons == nil {
			s.Reasons = make(map[string]int)
		}
		s.Reasons[reason] += n
	}
}

// Total returns the number of records accounted for
func (s Stats) Total() int {
	return s.Created + s.Updated + s.Skipped + s.Errors
}

func (s Stats) String() string {
	return fmt.Sprintf("created=%d updated=%d skipped=%d errors=%d",
		s.Created, s.Updated, s.Skipped, s.Errors)
}
