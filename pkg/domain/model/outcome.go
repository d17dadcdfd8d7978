package model

// OutcomeStatus tags the result of enriching one record
type OutcomeStatus string

const (
	OutcomeEnriched    OutcomeStatus = "enriched"
	OutcomeFailed      OutcomeStatus = "failed"
	OutcomeUnsupported OutcomeStatus = "unsupported"
	OutcomeSkipped     OutcomeStatus = "skipped" // record has no string url
)

// Outcome is the per-record result of an enrichment
type Outcome struct {
	Index  int
	Status OutcomeStatus
	Ref    RepoRef
	Err    error // set only when Status is OutcomeFailed
}

// BatchSummary counts outcomes of one annotate run
type BatchSummary struct {
	Total       int
	Enriched    int
	Failed      int
	Unsupported int
	Skipped     int

	QuotaWarning   bool // pre-flight found less quota than the estimate
	QuotaRemaining int
	QuotaEstimate  int
}

// Add counts one outcome
func (s *BatchSummary) Add(o Outcome) {
	s.Total++
	switch o.Status {
	case OutcomeEnriched:
		s.Enriched++
	case OutcomeFailed:
		s.Failed++
	case OutcomeUnsupported:
		s.Unsupported++
	case OutcomeSkipped:
		s.Skipped++
	}
}
