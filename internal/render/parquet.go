package render

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/report"
)

// Parquet renders the ranked surgeries as a Parquet file.
type Parquet struct{}

func (Parquet) Format() string { return "parquet" }

func (Parquet) Render(w io.Writer, r *report.Report) error {
	rows := make([]model.RankingRow, len(r.Ranking))
	for i, m := range r.Ranking {
		rows[i] = model.RankingRow{
			Rank:           int32(i + 1),
			SourceRow:      int64(m.Row),
			Agreement:      m.Agreement,
			Procedures:     m.Procedures,
			Duration:       m.Duration,
			BilledValue:    m.BilledValue,
			Hours:          m.Hours,
			RevenuePerHour: m.RevenuePerHour,
		}
	}
	return writeParquet(w, rows)
}

// AgreementParquet renders the strategic table as a Parquet file.
type AgreementParquet struct{}

func (AgreementParquet) Format() string { return "parquet-agreements" }

func (AgreementParquet) Render(w io.Writer, r *report.Report) error {
	rows := make([]model.AgreementRow, len(r.Agreements))
	for i, a := range r.Agreements {
		rows[i] = model.AgreementRow{
			Agreement:      a.Agreement,
			Surgeries:      int32(a.Surgeries),
			TotalValue:     a.TotalValue,
			TotalHours:     a.TotalHours,
			RevenuePerHour: a.RevenuePerHour,
			Share:          a.Share,
		}
	}
	return writeParquet(w, rows)
}

func writeParquet[T any](w io.Writer, rows []T) error {
	pw := parquet.NewGenericWriter[T](w)
	if _, err := pw.Write(rows); err != nil {
		pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
