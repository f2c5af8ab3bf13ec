package reftable

import (
	"fmt"
	"strings"

	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/table"
)

// ProcedureTable maps procedure code to its CBHPM row.
type ProcedureTable = Index[model.ProcedureCode]

// FeeScheduleTable maps agreement name to its fee schedule.
type FeeScheduleTable = Index[model.FeeSchedule]

// BuildProcedureTable folds the procedure-code table keyed by "Código".
// An empty table yields an empty index.
func BuildProcedureTable(t *table.Table) (*ProcedureTable, error) {
	if err := t.RequireIfRows(model.ProcedureColumns...); err != nil {
		return nil, fmt.Errorf("procedure table: %w", err)
	}
	return Fold(t.Len(),
		func(i int) string { return t.Value(i, model.ColProcedureCode) },
		func(i int, code string) model.ProcedureCode {
			return model.ProcedureCode{
				Code:           code,
				AnesthesiaSize: strings.TrimSpace(t.Value(i, model.ColAnesthSize)),
				Fields:         t.RowMap(i),
			}
		},
	), nil
}

// BuildFeeSchedules folds the agreement table keyed by "Convênio". Only
// AN<digits> columns are kept as prices. An empty table yields an empty index.
func BuildFeeSchedules(t *table.Table) (*FeeScheduleTable, error) {
	if err := t.RequireIfRows(model.ColFeeAgreement); err != nil {
		return nil, fmt.Errorf("agreement table: %w", err)
	}
	var feeCols []string
	for _, col := range t.Columns() {
		if model.IsFeeColumn(col) {
			feeCols = append(feeCols, col)
		}
	}
	return Fold(t.Len(),
		func(i int) string { return t.Value(i, model.ColFeeAgreement) },
		func(i int, name string) model.FeeSchedule {
			prices := make(map[string]string, len(feeCols))
			for _, col := range feeCols {
				if v, ok := t.Cell(i, col); ok {
					prices[col] = v
				}
			}
			return model.FeeSchedule{Agreement: name, Prices: prices}
		},
	), nil
}
