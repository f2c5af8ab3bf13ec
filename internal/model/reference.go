package model

// ProcedureCode is one row of the procedure-code (CBHPM) table.
// AnesthesiaSize is the raw "Porte Anest." text; only all-digit values are billable.
type ProcedureCode struct {
	Code           string
	AnesthesiaSize string
	Fields         map[string]string
}

// FeeSchedule is one agreement's row of the fee table. Prices maps a fee
// column (AN1..ANn) to its currency text as entered in the spreadsheet.
type FeeSchedule struct {
	Agreement string
	Prices    map[string]string
}

// Price returns the currency text for a fee column and whether the column exists.
func (f *FeeSchedule) Price(column string) (string, bool) {
	v, ok := f.Prices[column]
	return v, ok
}
