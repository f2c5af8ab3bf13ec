package model

// SurgeryRecord is one row of the surgeries table. The three columns the
// billing engine reads are lifted out; Fields keeps every source column so
// downstream output can pass them through untouched.
type SurgeryRecord struct {
	Row        int // 1-based data row in the source table
	Agreement  string
	Procedures string
	Duration   string
	Fields     map[string]string
}

// SurgeryMetrics is a SurgeryRecord with the three derived fields.
// Hours and RevenuePerHour are nil when absent.
type SurgeryMetrics struct {
	SurgeryRecord
	BilledValue    float64
	Hours          *float64
	RevenuePerHour *float64
}

// HasRevenuePerHour reports whether the surgery takes part in hour-based rankings.
func (m *SurgeryMetrics) HasRevenuePerHour() bool {
	return m.RevenuePerHour != nil
}
