package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gyeh/anestrev/internal/report"
)

// CSV renders the ranking, one row per surgery, with the surgeries table's
// own columns ahead of the computed ones.
type CSV struct{}

func (CSV) Format() string { return "csv" }

func (CSV) Render(w io.Writer, r *report.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rankingHeader(r)); err != nil {
		return err
	}
	for i, m := range r.Ranking {
		rec := make([]string, 0, len(r.Columns)+4)
		rec = append(rec, strconv.Itoa(i+1))
		for _, col := range r.Columns {
			rec = append(rec, m.Fields[col])
		}
		rec = append(rec,
			strconv.FormatFloat(m.BilledValue, 'f', 2, 64),
			formatHours(m.Hours),
			strconv.FormatFloat(*m.RevenuePerHour, 'f', 2, 64),
		)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
