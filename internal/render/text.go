package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gyeh/anestrev/internal/normalize"
	"github.com/gyeh/anestrev/internal/report"
)

// Text renders the headline metrics, the ranking and the strategic table
// as aligned plain text.
type Text struct{}

func (Text) Format() string { return "text" }

func (Text) Render(w io.Writer, r *report.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Faturamento virtual total:\t%s\n", normalize.FormatCurrency(r.Totals.BilledValue))
	fmt.Fprintf(tw, "Cirurgias:\t%d\n", r.Totals.Surgeries)
	fmt.Fprintf(tw, "Ticket médio:\t%s\n", normalize.FormatCurrency(r.Totals.AverageTicket))
	if h := r.Headlines; h != nil {
		fmt.Fprintf(tw, "Maior faturamento:\t%s (%s)\n", h.TopRevenue.Agreement, normalize.FormatCurrency(h.TopRevenue.Value))
		if h.MostProfitable != nil {
			fmt.Fprintf(tw, "Mais rentável:\t%s (%s/h)\n", h.MostProfitable.Agreement, normalize.FormatCurrency(h.MostProfitable.Value))
		}
		if h.LeastProfitable != nil {
			fmt.Fprintf(tw, "Menos rentável:\t%s (%s/h)\n", h.LeastProfitable.Agreement, normalize.FormatCurrency(h.LeastProfitable.Value))
		}
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "#\tConvênio\tValor Virtual\tHoras\tR$/Hora")
	for i, m := range r.Ranking {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1, m.Agreement,
			normalize.FormatCurrency(m.BilledValue),
			formatHours(m.Hours),
			normalize.FormatCurrency(*m.RevenuePerHour))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Convênio\tCirurgias\tValor Virtual\tHoras\tR$/Hora\t% Faturamento")
	for _, a := range r.Agreements {
		rph := "-"
		if a.RevenuePerHour != nil {
			rph = normalize.FormatCurrency(*a.RevenuePerHour)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.2f\t%s\t%s\n",
			a.Agreement, a.Surgeries,
			normalize.FormatCurrency(a.TotalValue),
			a.TotalHours, rph,
			normalize.FormatPercent(a.Share))
	}
	return tw.Flush()
}
