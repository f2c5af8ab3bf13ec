// Package ranking groups surgery metrics by agreement and orders surgeries
// and agreements by value and by revenue-per-hour.
package ranking

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gyeh/anestrev/internal/model"
)

// Order is a sort direction.
type Order int

const (
	Desc Order = iota
	Asc
)

// Key selects the figure agreements are sorted by.
type Key int

const (
	ByValue Key = iota
	ByRevenuePerHour
)

// Valid returns the surgeries that take part in hour-based rankings, in
// input order.
func Valid(ms []model.SurgeryMetrics) []model.SurgeryMetrics {
	out := make([]model.SurgeryMetrics, 0, len(ms))
	for _, m := range ms {
		if m.HasRevenuePerHour() {
			out = append(out, m)
		}
	}
	return out
}

// RankSurgeries returns the valid surgeries sorted by revenue-per-hour.
// The sort is stable: ties keep input order.
func RankSurgeries(ms []model.SurgeryMetrics, order Order) []model.SurgeryMetrics {
	out := Valid(ms)
	slices.SortStableFunc(out, func(a, b model.SurgeryMetrics) int {
		c := cmp.Compare(*a.RevenuePerHour, *b.RevenuePerHour)
		if order == Desc {
			return -c
		}
		return c
	})
	return out
}

// SummarizeByAgreement aggregates the valid surgeries per agreement and
// returns the summaries sorted by total value, highest first. Shares are
// taken over the summarized total and are all zero when that total is zero.
func SummarizeByAgreement(ms []model.SurgeryMetrics) []model.AgreementSummary {
	groups := make(map[string]*model.AgreementSummary)
	var grand float64
	for _, m := range ms {
		if !m.HasRevenuePerHour() {
			continue
		}
		name := strings.TrimSpace(m.Agreement)
		g, ok := groups[name]
		if !ok {
			g = &model.AgreementSummary{Agreement: name}
			groups[name] = g
		}
		g.Surgeries++
		g.TotalValue += m.BilledValue
		g.TotalHours += *m.Hours
		grand += m.BilledValue
	}

	out := make([]model.AgreementSummary, 0, len(groups))
	for _, g := range groups {
		if g.TotalHours > 0 {
			rph := g.TotalValue / g.TotalHours
			g.RevenuePerHour = &rph
		}
		if grand > 0 {
			g.Share = g.TotalValue / grand * 100
		}
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b model.AgreementSummary) int {
		return strings.Compare(a.Agreement, b.Agreement)
	})
	return SortSummaries(out, ByValue, Desc)
}

// SortSummaries returns a sorted copy of s. Summaries without a
// revenue-per-hour go last when sorting by it, in either direction.
func SortSummaries(s []model.AgreementSummary, key Key, order Order) []model.AgreementSummary {
	out := slices.Clone(s)
	slices.SortStableFunc(out, func(a, b model.AgreementSummary) int {
		var c int
		switch key {
		case ByRevenuePerHour:
			switch {
			case a.RevenuePerHour == nil && b.RevenuePerHour == nil:
				return 0
			case a.RevenuePerHour == nil:
				return 1
			case b.RevenuePerHour == nil:
				return -1
			}
			c = cmp.Compare(*a.RevenuePerHour, *b.RevenuePerHour)
		default:
			c = cmp.Compare(a.TotalValue, b.TotalValue)
		}
		if order == Desc {
			return -c
		}
		return c
	})
	return out
}

// Headlines picks the agreement with the highest total value and those with
// the highest and lowest revenue-per-hour. Returns nil for no summaries.
func Headlines(s []model.AgreementSummary) *model.Headlines {
	if len(s) == 0 {
		return nil
	}
	top := SortSummaries(s, ByValue, Desc)[0]
	h := &model.Headlines{
		TopRevenue: model.Headline{Agreement: top.Agreement, Value: top.TotalValue},
	}
	if best := SortSummaries(s, ByRevenuePerHour, Desc)[0]; best.RevenuePerHour != nil {
		h.MostProfitable = &model.Headline{Agreement: best.Agreement, Value: *best.RevenuePerHour}
	}
	if worst := SortSummaries(s, ByRevenuePerHour, Asc)[0]; worst.RevenuePerHour != nil {
		h.LeastProfitable = &model.Headline{Agreement: worst.Agreement, Value: *worst.RevenuePerHour}
	}
	return h
}
