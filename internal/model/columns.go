package model

import "strings"

// Column names of the three input tables. They are matched case- and
// accent-sensitively after NFC normalization.
const (
	ColAgreement  = "CONVÊNIO"
	ColProcedures = "PROCEDIMENTO"
	ColDuration   = "DURAÇÃO"

	ColFeeAgreement  = "Convênio"
	ColProcedureCode = "Código"
	ColAnesthSize    = "Porte Anest."
)

// Computed columns attached to ranked output, named as the clinical
// administration reads them.
const (
	ColBilledValue    = "Valor Virtual"
	ColHours          = "Horas"
	ColRevenuePerHour = "R$/Hora"
	ColShare          = "% Faturamento"
	ColSurgeries      = "Cirurgias"
)

// AbsentMarker is the literal spreadsheet exports use for an empty cell.
const AbsentMarker = "nan"

// FeeColumnPrefix prefixes the anesthesia size class to form a fee
// schedule column, e.g. size "3" is priced from column "AN3".
const FeeColumnPrefix = "AN"

// SurgeryColumns lists the columns a surgeries table must carry.
var SurgeryColumns = []string{ColAgreement, ColProcedures, ColDuration}

// ProcedureColumns lists the columns a non-empty procedure-code table must carry.
var ProcedureColumns = []string{ColProcedureCode, ColAnesthSize}

// FeeColumn returns the fee schedule column for a numeric size class.
func FeeColumn(size string) string {
	return FeeColumnPrefix + size
}

// IsFeeColumn reports whether col names a per-size-class price column (AN<digits>).
func IsFeeColumn(col string) bool {
	rest, ok := strings.CutPrefix(col, FeeColumnPrefix)
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
