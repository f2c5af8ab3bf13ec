package model

import "time"

// Totals are computed over every surgery, including those whose duration
// could not be parsed.
type Totals struct {
	BilledValue       float64 `json:"billed_value"`
	Surgeries         int     `json:"surgeries"`
	AverageTicket     float64 `json:"average_ticket"`
	WithHours         int     `json:"with_hours"`
	WithoutHours      int     `json:"without_hours"`
	UnpricedSurgeries int     `json:"unpriced_surgeries"`
}

// AgreementSummary aggregates the surgeries of one agreement that have
// valid hours. RevenuePerHour is nil when TotalHours is 0.
type AgreementSummary struct {
	Agreement      string   `json:"agreement"`
	Surgeries      int      `json:"surgeries"`
	TotalValue     float64  `json:"total_value"`
	TotalHours     float64  `json:"total_hours"`
	RevenuePerHour *float64 `json:"revenue_per_hour"`
	Share          float64  `json:"share"`
}

// Headline names an agreement and the figure it leads with.
type Headline struct {
	Agreement string  `json:"agreement"`
	Value     float64 `json:"value"`
}

// Headlines are the three facts shown above the strategic table.
type Headlines struct {
	TopRevenue      Headline  `json:"top_revenue"`
	MostProfitable  *Headline `json:"most_profitable,omitempty"`
	LeastProfitable *Headline `json:"least_profitable,omitempty"`
}

// RunSummary captures metrics from a single report run.
type RunSummary struct {
	RunID               string
	Source              string
	SourceSHA256        string
	GeneratedAt         time.Time
	Surgeries           int
	Ranked              int
	Agreements          int
	DuplicateCodes      int
	DuplicateAgreements int
	DurationLoad        time.Duration
	DurationBuild       time.Duration
	DurationTotal       time.Duration
}
