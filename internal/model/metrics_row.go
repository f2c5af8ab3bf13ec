package model

import "github.com/google/uuid"

// MetricsRow is the DB-ready representation of one surgery's metrics.
// Money values are stored as int64 cents.
type MetricsRow struct {
	RunID     uuid.UUID
	SourceRow int64
	Rank      *int32 // position in the revenue-per-hour ranking; nil when unranked

	Agreement  string
	Procedures string
	Duration   string

	BilledValueCents    int64
	Hours               *float64
	RevenuePerHourCents *int64
}

// MetricsColumns returns the ordered column names for COPY into coc.surgery_metrics.
func MetricsColumns() []string {
	return []string{
		"run_id",
		"source_row",
		"rank",
		"agreement",
		"procedures",
		"duration",
		"billed_value_cents",
		"hours",
		"revenue_per_hour_cents",
	}
}

// CopyValues returns the row values in the same order as MetricsColumns(),
// suitable for pgx CopyFromSource.
func (r *MetricsRow) CopyValues() []any {
	return []any{
		r.RunID,
		r.SourceRow,
		r.Rank,
		r.Agreement,
		r.Procedures,
		r.Duration,
		r.BilledValueCents,
		r.Hours,
		r.RevenuePerHourCents,
	}
}

// SummaryColumns returns the ordered column names for COPY into coc.agreement_summaries.
func SummaryColumns() []string {
	return []string{
		"run_id",
		"agreement",
		"surgeries",
		"total_value_cents",
		"total_hours",
		"revenue_per_hour_cents",
		"share_bps",
	}
}
