// Package metrics attaches billed value, hours and revenue-per-hour to
// every surgery and computes the overall totals.
package metrics

import (
	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/normalize"
	"github.com/gyeh/anestrev/internal/pricing"
)

// Derive prices every record and derives its hours and revenue-per-hour.
// Output order matches input order.
func Derive(records []model.SurgeryRecord, engine *pricing.Engine) []model.SurgeryMetrics {
	ms, _ := DeriveQuoted(records, engine)
	return ms
}

// DeriveQuoted is Derive that also returns the quote behind each surgery's
// billed value, index-aligned with the metrics.
func DeriveQuoted(records []model.SurgeryRecord, engine *pricing.Engine) ([]model.SurgeryMetrics, []pricing.Quote) {
	ms := make([]model.SurgeryMetrics, len(records))
	quotes := make([]pricing.Quote, len(records))
	for i, rec := range records {
		quotes[i] = engine.Quote(rec.Agreement, rec.Procedures)
		ms[i] = withValue(rec, quotes[i].Total)
	}
	return ms, quotes
}

// DeriveOne computes the metrics of a single surgery. RevenuePerHour is set
// only when the duration parsed to a positive number of hours.
func DeriveOne(rec model.SurgeryRecord, engine *pricing.Engine) model.SurgeryMetrics {
	return withValue(rec, engine.Value(rec.Agreement, rec.Procedures))
}

func withValue(rec model.SurgeryRecord, value float64) model.SurgeryMetrics {
	m := model.SurgeryMetrics{
		SurgeryRecord: rec,
		BilledValue:   value,
		Hours:         normalize.ParseDurationHours(rec.Duration),
	}
	if m.Hours != nil && *m.Hours > 0 {
		rph := m.BilledValue / *m.Hours
		m.RevenuePerHour = &rph
	}
	return m
}

// Totals sums over every surgery, whether or not it has valid hours.
func Totals(ms []model.SurgeryMetrics) model.Totals {
	var t model.Totals
	t.Surgeries = len(ms)
	for i := range ms {
		t.BilledValue += ms[i].BilledValue
		if ms[i].HasRevenuePerHour() {
			t.WithHours++
		} else {
			t.WithoutHours++
		}
		if ms[i].BilledValue == 0 {
			t.UnpricedSurgeries++
		}
	}
	if t.Surgeries > 0 {
		t.AverageTicket = t.BilledValue / float64(t.Surgeries)
	}
	return t
}
