// Package render writes a report.Report in the supported output formats.
package render

import (
	"strconv"

	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/report"
)

// Options tune the renderers that support styling.
type Options struct {
	// Logo is an image file placed on the xlsx strategic sheet.
	Logo string
}

// NewRegistry returns a registry holding every renderer in this package.
func NewRegistry(opts Options) *report.Registry {
	return report.NewRegistry(
		Text{},
		JSON{},
		CSV{},
		&XLSX{Logo: opts.Logo},
		Parquet{},
		AgreementParquet{},
	)
}

// rankingHeader is the passthrough columns followed by the computed ones.
func rankingHeader(r *report.Report) []string {
	h := make([]string, 0, len(r.Columns)+4)
	h = append(h, "#")
	h = append(h, r.Columns...)
	return append(h, model.ColBilledValue, model.ColHours, model.ColRevenuePerHour)
}

func formatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', 2, 64)
}
