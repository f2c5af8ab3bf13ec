package store

import (
	"github.com/google/uuid"

	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/normalize"
)

// metricsRow converts one surgery's metrics to its DB form. rank is 0 for
// surgeries outside the ranking.
func metricsRow(runID uuid.UUID, m *model.SurgeryMetrics, rank int) *model.MetricsRow {
	row := &model.MetricsRow{
		RunID:               runID,
		SourceRow:           int64(m.Row),
		Agreement:           m.Agreement,
		Procedures:          m.Procedures,
		Duration:            m.Duration,
		BilledValueCents:    normalize.ToCents(m.BilledValue),
		Hours:               m.Hours,
		RevenuePerHourCents: normalize.ToCentsPtr(m.RevenuePerHour),
	}
	if rank > 0 {
		r := int32(rank)
		row.Rank = &r
	}
	return row
}

// summaryValues returns one agreement summary in SummaryColumns order.
func summaryValues(runID uuid.UUID, s *model.AgreementSummary) []any {
	return []any{
		runID,
		s.Agreement,
		int32(s.Surgeries),
		normalize.ToCents(s.TotalValue),
		s.TotalHours,
		normalize.ToCentsPtr(s.RevenuePerHour),
		normalize.PercentToBasisPoints(s.Share),
	}
}
