package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/report"
)

// JSON renders the report as one indented JSON document.
type JSON struct{}

func (JSON) Format() string { return "json" }

type jsonSurgery struct {
	Rank           int               `json:"rank,omitempty"`
	Row            int               `json:"row"`
	Agreement      string            `json:"agreement"`
	Procedures     string            `json:"procedures"`
	Duration       string            `json:"duration"`
	BilledValue    float64           `json:"billed_value"`
	Hours          *float64          `json:"hours"`
	RevenuePerHour *float64          `json:"revenue_per_hour"`
	Fields         map[string]string `json:"fields,omitempty"`
}

type jsonReport struct {
	RunID        string                   `json:"run_id"`
	GeneratedAt  time.Time                `json:"generated_at"`
	Source       string                   `json:"source"`
	SourceSHA256 string                   `json:"source_sha256,omitempty"`
	Totals       model.Totals             `json:"totals"`
	Headlines    *model.Headlines         `json:"headlines,omitempty"`
	Ranking      []jsonSurgery            `json:"ranking"`
	Agreements   []model.AgreementSummary `json:"agreements"`
}

func (JSON) Render(w io.Writer, r *report.Report) error {
	out := jsonReport{
		RunID:        r.RunID.String(),
		GeneratedAt:  r.GeneratedAt,
		Source:       r.Source,
		SourceSHA256: r.SourceSHA256,
		Totals:       r.Totals,
		Headlines:    r.Headlines,
		Ranking:      make([]jsonSurgery, len(r.Ranking)),
		Agreements:   r.Agreements,
	}
	for i, m := range r.Ranking {
		out.Ranking[i] = jsonSurgery{
			Rank:           i + 1,
			Row:            m.Row,
			Agreement:      m.Agreement,
			Procedures:     m.Procedures,
			Duration:       m.Duration,
			BilledValue:    m.BilledValue,
			Hours:          m.Hours,
			RevenuePerHour: m.RevenuePerHour,
			Fields:         m.Fields,
		}
	}
	if out.Agreements == nil {
		out.Agreements = []model.AgreementSummary{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
