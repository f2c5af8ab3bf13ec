// Package pricing computes the virtual revenue of a surgery from its
// procedure list and the agreement's fee schedule.
package pricing

import (
	"strings"

	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/normalize"
	"github.com/gyeh/anestrev/internal/reftable"
)

// SecondaryFactor is the share of its price that every procedure after the
// first contributes. The first procedure in the list, as typed, is billed
// in full.
const SecondaryFactor = 0.5

// LineStatus explains how one procedure entry was priced.
type LineStatus string

const (
	StatusPriced         LineStatus = "priced"
	StatusUnknownCode    LineStatus = "unknown_code"
	StatusNonNumericSize LineStatus = "non_numeric_size"
	StatusMissingColumn  LineStatus = "missing_column"
)

// Line is one procedure entry of a quote.
type Line struct {
	Index        int
	Entry        string
	Code         string
	SizeClass    string
	Column       string
	UnitPrice    float64
	Factor       float64
	Contribution float64
	Status       LineStatus
}

// Quote is the priced breakdown of one surgery. Known reports whether the
// agreement has a fee schedule; without one there are no lines.
type Quote struct {
	Agreement string
	Known     bool
	Lines     []Line
	Total     float64
}

// Engine prices surgeries against a fixed pair of reference tables.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	procedures *reftable.ProcedureTable
	fees       *reftable.FeeScheduleTable
}

// New returns an Engine over the given reference tables.
func New(procedures *reftable.ProcedureTable, fees *reftable.FeeScheduleTable) *Engine {
	return &Engine{procedures: procedures, fees: fees}
}

// ComputeSurgeryValue returns the billed value of one surgery.
func ComputeSurgeryValue(agreement, procedures string, procTable *reftable.ProcedureTable, feeTable *reftable.FeeScheduleTable) float64 {
	return New(procTable, feeTable).Value(agreement, procedures)
}

// Value returns the billed value of one surgery. It never fails: bad
// entries contribute zero and the rest of the list is still priced.
func (e *Engine) Value(agreement, procedures string) float64 {
	return e.Quote(agreement, procedures).Total
}

// Quote prices a surgery and returns the per-entry breakdown.
func (e *Engine) Quote(agreement, procedures string) Quote {
	agreement = strings.TrimSpace(agreement)
	procedures = strings.TrimSpace(procedures)
	q := Quote{Agreement: agreement}
	if agreement == "" {
		return q
	}
	schedule, ok := e.fees.Get(agreement)
	q.Known = ok
	if !ok || procedures == "" || procedures == model.AbsentMarker {
		return q
	}

	entries := strings.Split(procedures, "\n")
	q.Lines = make([]Line, 0, len(entries))
	for i, entry := range entries {
		line := e.priceEntry(&schedule, entry)
		line.Index = i
		line.Factor = 1
		if i > 0 {
			line.Factor = SecondaryFactor
		}
		line.Contribution = line.UnitPrice * line.Factor
		q.Total += line.Contribution
		q.Lines = append(q.Lines, line)
	}
	return q
}

func (e *Engine) priceEntry(schedule *model.FeeSchedule, entry string) Line {
	line := Line{Entry: entry, Code: normalize.ProcedureCode(entry)}

	proc, ok := e.procedures.Get(line.Code)
	if !ok {
		line.Status = StatusUnknownCode
		return line
	}

	line.SizeClass = strings.TrimSpace(proc.AnesthesiaSize)
	if !normalize.IsDigits(line.SizeClass) {
		line.Status = StatusNonNumericSize
		return line
	}

	line.Column = model.FeeColumn(line.SizeClass)
	raw, ok := schedule.Price(line.Column)
	if !ok {
		line.Status = StatusMissingColumn
		return line
	}
	line.UnitPrice = normalize.ParseCurrency(raw)
	line.Status = StatusPriced
	return line
}
