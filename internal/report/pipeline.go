package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/anestrev/internal/metrics"
	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/normalize"
	"github.com/gyeh/anestrev/internal/pricing"
	"github.com/gyeh/anestrev/internal/ranking"
	"github.com/gyeh/anestrev/internal/reftable"
	"github.com/gyeh/anestrev/internal/table"
)

// Pipeline phases, in execution order.
const (
	PhaseValidate  = "validate"
	PhaseReference = "reference"
	PhasePrice     = "price"
	PhaseRank      = "rank"
)

// ErrNoSurgeries is returned when there is nothing to report on.
var ErrNoSurgeries = errors.New("no surgeries registered")

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Options narrows a run. A zero Options reports on every surgery.
type Options struct {
	// DateColumn, From and To restrict the run to surgeries dated within
	// [From, To]. Either bound may be nil.
	DateColumn string
	From       *time.Time
	To         *time.Time
}

func (o Options) filtering() bool {
	return o.From != nil || o.To != nil
}

// Build executes the pipeline: validate → reference → price → rank.
// Structural problems (no surgeries, missing columns) stop the run;
// messy cell values never do.
func Build(log zerolog.Logger, in *table.Tables, opts Options) (*Report, error) {
	start := time.Now()

	// Phase 1: Validate
	if err := validate(in, opts); err != nil {
		return nil, &PipelineError{Phase: PhaseValidate, Err: err}
	}

	// Phase 2: Reference tables
	procs, err := reftable.BuildProcedureTable(in.Procedures)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseReference, Err: err}
	}
	fees, err := reftable.BuildFeeSchedules(in.Agreements)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseReference, Err: err}
	}
	log.Info().
		Int("procedure_codes", procs.Len()).
		Int("agreements", fees.Len()).
		Msg("reference tables built")
	if procs.Duplicates() > 0 || fees.Duplicates() > 0 {
		log.Warn().
			Int("duplicate_codes", procs.Duplicates()).
			Int("duplicate_agreements", fees.Duplicates()).
			Msg("duplicate reference keys, last row wins")
	}

	// Phase 3: Price
	records, filtered := surgeryRecords(in.Surgeries, opts)
	if len(records) == 0 {
		return nil, &PipelineError{Phase: PhasePrice, Err: fmt.Errorf("%w in the selected period (%d filtered out)", ErrNoSurgeries, filtered)}
	}
	engine := pricing.New(procs, fees)
	ms, quotes := metrics.DeriveQuoted(records, engine)
	quality := assessQuality(log, quotes)

	// Phase 4: Rank
	summaries := ranking.SummarizeByAgreement(ms)
	rep := &Report{
		RunID:               uuid.New(),
		GeneratedAt:         time.Now(),
		Source:              in.Source,
		SourceSHA256:        in.SHA256,
		Columns:             in.Surgeries.Columns(),
		Surgeries:           ms,
		Ranking:             ranking.RankSurgeries(ms, ranking.Desc),
		Agreements:          summaries,
		Headlines:           ranking.Headlines(summaries),
		Totals:              metrics.Totals(ms),
		ProcedureCodes:      procs.Len(),
		FeeSchedules:        fees.Len(),
		DuplicateCodes:      procs.Duplicates(),
		DuplicateAgreements: fees.Duplicates(),
		FilteredOut:         filtered,
		Quality:             quality,
	}

	log.Info().
		Str("run_id", rep.RunID.String()).
		Int("surgeries", rep.Totals.Surgeries).
		Int("ranked", len(rep.Ranking)).
		Int("agreements", len(rep.Agreements)).
		Float64("billed_value", rep.Totals.BilledValue).
		Str("duration", time.Since(start).String()).
		Msg("report built")

	return rep, nil
}

func validate(in *table.Tables, opts Options) error {
	if in == nil || in.Surgeries.Len() == 0 {
		return ErrNoSurgeries
	}
	cols := model.SurgeryColumns
	if opts.filtering() {
		if opts.DateColumn == "" {
			return errors.New("period filter needs a date column")
		}
		cols = append(cols[:len(cols):len(cols)], opts.DateColumn)
	}
	return in.Surgeries.Require(cols...)
}

// surgeryRecords lifts the surgeries table into records, applying the
// period filter. It returns the kept records and how many were dropped.
func surgeryRecords(t *table.Table, opts Options) ([]model.SurgeryRecord, int) {
	out := make([]model.SurgeryRecord, 0, t.Len())
	filtered := 0
	for i := 0; i < t.Len(); i++ {
		if opts.filtering() && !inPeriod(t.Value(i, opts.DateColumn), opts) {
			filtered++
			continue
		}
		out = append(out, model.SurgeryRecord{
			Row:        i + 1,
			Agreement:  t.Value(i, model.ColAgreement),
			Procedures: t.Value(i, model.ColProcedures),
			Duration:   t.Value(i, model.ColDuration),
			Fields:     t.RowMap(i),
		})
	}
	return out, filtered
}

func inPeriod(raw string, opts Options) bool {
	d := normalize.ParseDate(raw)
	if d == nil {
		return false
	}
	if opts.From != nil && d.Before(*opts.From) {
		return false
	}
	if opts.To != nil && d.After(*opts.To) {
		return false
	}
	return true
}

// assessQuality counts the data-quality problems that priced entries at
// zero, reading the quotes the metrics were derived from, and logs them in
// aggregate. Nothing here changes the computed values.
func assessQuality(log zerolog.Logger, quotes []pricing.Quote) Quality {
	var q Quality
	for _, quote := range quotes {
		if quote.Agreement != "" && !quote.Known {
			q.UnknownAgreements++
		}
		for _, l := range quote.Lines {
			switch l.Status {
			case pricing.StatusPriced:
				q.PricedEntries++
			case pricing.StatusUnknownCode:
				q.UnknownCodes++
			case pricing.StatusNonNumericSize:
				q.NonNumericSizes++
			case pricing.StatusMissingColumn:
				q.MissingFeeColumns++
			}
		}
	}
	if q.Problems() == 0 {
		return q
	}
	log.Warn().
		Int("unknown_agreements", q.UnknownAgreements).
		Int("unknown_codes", q.UnknownCodes).
		Int("non_numeric_sizes", q.NonNumericSizes).
		Int("missing_fee_columns", q.MissingFeeColumns).
		Msg("entries priced at zero")
	return q
}
