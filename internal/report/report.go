// Package report runs the billing pipeline over one snapshot of the input
// tables and holds the result for downstream renderers.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/anestrev/internal/model"
)

// Report is the outcome of one run. It is built once and never mutated.
type Report struct {
	RunID        uuid.UUID
	GeneratedAt  time.Time
	Source       string
	SourceSHA256 string

	// Columns are the surgeries table's own columns, in sheet order, for
	// renderers that pass them through next to the computed ones.
	Columns []string

	// Surgeries holds every surgery in input order; Ranking only those with
	// a revenue-per-hour, highest first.
	Surgeries  []model.SurgeryMetrics
	Ranking    []model.SurgeryMetrics
	Agreements []model.AgreementSummary
	Headlines  *model.Headlines
	Totals     model.Totals

	// ProcedureCodes and FeeSchedules count distinct reference keys, after
	// duplicates resolved.
	ProcedureCodes      int
	FeeSchedules        int
	DuplicateCodes      int
	DuplicateAgreements int
	FilteredOut         int
	Quality             Quality
}

// Quality counts input problems that made entries price at zero.
type Quality struct {
	PricedEntries     int
	UnknownAgreements int
	UnknownCodes      int
	NonNumericSizes   int
	MissingFeeColumns int
}

// Problems is the total number of problems counted.
func (q Quality) Problems() int {
	return q.UnknownAgreements + q.UnknownCodes + q.NonNumericSizes + q.MissingFeeColumns
}

// Summary condenses the report into the run metrics that get logged and stored.
func (r *Report) Summary() model.RunSummary {
	return model.RunSummary{
		RunID:               r.RunID.String(),
		Source:              r.Source,
		SourceSHA256:        r.SourceSHA256,
		GeneratedAt:         r.GeneratedAt,
		Surgeries:           len(r.Surgeries),
		Ranked:              len(r.Ranking),
		Agreements:          len(r.Agreements),
		DuplicateCodes:      r.DuplicateCodes,
		DuplicateAgreements: r.DuplicateAgreements,
	}
}

// Ranks maps the source row of every ranked surgery to its 1-based
// position in the ranking.
func (r *Report) Ranks() map[int]int {
	ranks := make(map[int]int, len(r.Ranking))
	for i := range r.Ranking {
		ranks[r.Ranking[i].Row] = i + 1
	}
	return ranks
}
