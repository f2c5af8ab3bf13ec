package model

// RankingRow mirrors the Parquet schema written for one ranked surgery.
type RankingRow struct {
	Rank           int32    `parquet:"rank"`
	SourceRow      int64    `parquet:"source_row"`
	Agreement      string   `parquet:"agreement"`
	Procedures     string   `parquet:"procedures"`
	Duration       string   `parquet:"duration"`
	BilledValue    float64  `parquet:"billed_value"`
	Hours          *float64 `parquet:"hours,optional"`
	RevenuePerHour *float64 `parquet:"revenue_per_hour,optional"`
}

// AgreementRow mirrors the Parquet schema written for one agreement summary.
type AgreementRow struct {
	Agreement      string   `parquet:"agreement"`
	Surgeries      int32    `parquet:"surgeries"`
	TotalValue     float64  `parquet:"total_value"`
	TotalHours     float64  `parquet:"total_hours"`
	RevenuePerHour *float64 `parquet:"revenue_per_hour,optional"`
	Share          float64  `parquet:"share"`
}
