package render

import (
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/report"
)

// Sheet names of the exported workbook.
const (
	SheetRanking    = "Ranking"
	SheetAgreements = "Convênios"
)

const currencyFormat = `"R$" #,##0.00`

// XLSX renders the ranking and the strategic table as a workbook.
type XLSX struct {
	Logo string
}

func (*XLSX) Format() string { return "xlsx" }

func (x *XLSX) Render(w io.Writer, r *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRanking); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetAgreements); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := writeRanking(f, st, r); err != nil {
		return err
	}
	if err := writeAgreements(f, st, r); err != nil {
		return err
	}
	if x.Logo != "" {
		col, _ := excelize.ColumnNumberToName(len(agreementHeader) + 2)
		if err := f.AddPicture(SheetAgreements, col+"1", x.Logo, &excelize.GraphicOptions{
			ScaleX: 0.5,
			ScaleY: 0.5,
		}); err != nil {
			return fmt.Errorf("add logo: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type styles struct {
	header   int
	currency int
	hours    int
	percent  int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, fmt.Errorf("header style: %w", err)
	}
	cur := currencyFormat
	if st.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &cur}); err != nil {
		return st, fmt.Errorf("currency style: %w", err)
	}
	if st.hours, err = f.NewStyle(&excelize.Style{NumFmt: 2}); err != nil {
		return st, fmt.Errorf("hours style: %w", err)
	}
	pct := `0.0"%"`
	if st.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &pct}); err != nil {
		return st, fmt.Errorf("percent style: %w", err)
	}
	return st, nil
}

func writeRanking(f *excelize.File, st styles, r *report.Report) error {
	header := rankingHeader(r)
	if err := writeHeader(f, st, SheetRanking, header); err != nil {
		return err
	}
	for i, m := range r.Ranking {
		vals := make([]any, 0, len(header))
		vals = append(vals, i+1)
		for _, col := range r.Columns {
			vals = append(vals, m.Fields[col])
		}
		vals = append(vals, m.BilledValue, *m.Hours, *m.RevenuePerHour)
		if err := setRow(f, SheetRanking, i+2, vals); err != nil {
			return err
		}
	}
	if len(r.Ranking) == 0 {
		return nil
	}
	first := len(header) - 2
	last := len(r.Ranking) + 1
	if err := styleColumn(f, SheetRanking, first, 2, last, st.currency); err != nil {
		return err
	}
	if err := styleColumn(f, SheetRanking, first+1, 2, last, st.hours); err != nil {
		return err
	}
	return styleColumn(f, SheetRanking, first+2, 2, last, st.currency)
}

var agreementHeader = []string{
	"Convênio", model.ColSurgeries, model.ColBilledValue, model.ColHours, model.ColRevenuePerHour, model.ColShare,
}

func writeAgreements(f *excelize.File, st styles, r *report.Report) error {
	if err := writeHeader(f, st, SheetAgreements, agreementHeader); err != nil {
		return err
	}
	for i, a := range r.Agreements {
		var rph any
		if a.RevenuePerHour != nil {
			rph = *a.RevenuePerHour
		}
		vals := []any{a.Agreement, a.Surgeries, a.TotalValue, a.TotalHours, rph, a.Share}
		if err := setRow(f, SheetAgreements, i+2, vals); err != nil {
			return err
		}
	}
	if len(r.Agreements) == 0 {
		return nil
	}
	last := len(r.Agreements) + 1
	for col, style := range map[int]int{3: st.currency, 4: st.hours, 5: st.currency, 6: st.percent} {
		if err := styleColumn(f, SheetAgreements, col, 2, last, style); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, st styles, sheet string, header []string) error {
	vals := make([]any, len(header))
	for i, h := range header {
		vals[i] = h
	}
	if err := setRow(f, sheet, 1, vals); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", end, st.header)
}

func setRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("write sheet %q row %d: %w", sheet, row, err)
	}
	return nil
}

func styleColumn(f *excelize.File, sheet string, col, fromRow, toRow, style int) error {
	top, err := excelize.CoordinatesToCellName(col, fromRow)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(col, toRow)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, top, bottom, style)
}
