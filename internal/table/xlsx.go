package table

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/anestrev/internal/normalize"
)

// XLSXSource reads the three tables from worksheets of one workbook.
type XLSXSource struct {
	Path   string
	Sheets SheetNames
}

// Load opens the workbook and reads the formatted cell text of each sheet.
func (s *XLSXSource) Load(ctx context.Context) (*Tables, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	names := s.Sheets.WithDefaults()
	out := &Tables{Source: "xlsx:" + s.Path}
	for _, tgt := range []struct {
		sheet string
		dst   **Table
	}{
		{names.Surgeries, &out.Surgeries},
		{names.Agreements, &out.Agreements},
		{names.Procedures, &out.Procedures},
	} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := ReadSheet(f, tgt.sheet)
		if err != nil {
			return nil, err
		}
		*tgt.dst = t
	}

	sha, err := normalize.FileHash(s.Path)
	if err != nil {
		return nil, err
	}
	out.SHA256 = sha
	return out, nil
}

// ReadSheet reads one worksheet of an open workbook into a Table.
// Cells holding numbers rendered as plain or currency figures are
// rewritten in pt-BR notation ("1234,56"), the same form the hand-typed
// cells use, so numeric and text prices parse alike. Dates, times and
// percentages keep their formatted text.
func ReadSheet(f *excelize.File, sheet string) (*Table, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in workbook", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	for i := range rows {
		if i >= len(raw) {
			break
		}
		for j := range rows[i] {
			if j >= len(raw[i]) {
				break
			}
			conv := numericCell(rows[i][j], raw[i][j])
			if conv == rows[i][j] {
				continue
			}
			numeric, err := isNumericCell(f, sheet, j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
			}
			if numeric {
				rows[i][j] = conv
			}
		}
	}
	return FromRecords(sheet, rows), nil
}

// numericCell returns the pt-BR text of a numeric cell whose formatted
// text is a plain or currency figure, and formatted unchanged otherwise.
func numericCell(formatted, raw string) string {
	if formatted == "" || !isFigure(formatted) {
		return formatted
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return formatted
	}
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}

// isNumericCell reports whether the cell stores a number rather than text.
func isNumericCell(f *excelize.File, sheet string, col, row int) (bool, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false, err
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return false, err
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeFormula:
		return true, nil
	}
	return false, nil
}

// isFigure reports whether s looks like a rendered number: an optional
// sign and currency symbol followed by digits and separators only.
func isFigure(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "R$"), "$"))
	s = strings.TrimPrefix(s, "-")
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',' || r == ' ':
		default:
			return false
		}
	}
	return digits > 0
}

// WriteSheet writes a Table to a worksheet, header first. The sheet is
// created when missing.
func WriteSheet(f *excelize.File, t *Table) error {
	if idx, _ := f.GetSheetIndex(t.Name); idx < 0 {
		if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", t.Name, err)
		}
	}
	if err := writeRow(f, t.Name, 1, t.Header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, t.Name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	vals := make([]any, len(cells))
	for i, c := range cells {
		vals[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("write sheet %q row %d: %w", sheet, rowNum, err)
	}
	return nil
}
