// Package table holds the three input tables as plain rows of text and the
// loaders that fill them from a workbook, CSV exports or Google Sheets.
package table

import (
	"strings"

	"github.com/gyeh/anestrev/internal/normalize"
)

// Table is one worksheet: a header row and the data rows below it.
// Rows may be shorter than Header; missing trailing cells read as absent.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// Tables are the three inputs of a report, read from one snapshot of the source.
type Tables struct {
	Surgeries  *Table
	Agreements *Table
	Procedures *Table

	// Source describes where the tables came from; SHA256 fingerprints
	// the snapshot so stored runs can be traced back to it.
	Source string
	SHA256 string
}

// New builds a Table from a header and data rows. Header names are
// normalized with normalize.NormalizeKey; when a name repeats, the first
// column wins.
func New(name string, header []string, rows [][]string) *Table {
	t := &Table{
		Name:   name,
		Header: make([]string, len(header)),
		Rows:   rows,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = normalize.NormalizeKey(h)
		t.Header[i] = h
		if h == "" {
			continue
		}
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// FromRecords treats the first record as the header and the rest as data.
// Records whose cells are all blank are dropped.
func FromRecords(name string, records [][]string) *Table {
	if len(records) == 0 {
		return New(name, nil, nil)
	}
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return New(name, records[0], rows)
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Has reports whether the header contains col.
func (t *Table) Has(col string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[col]
	return ok
}

// Cell returns the raw text at (row, col). ok is false when the column
// does not exist or the row stops before it.
func (t *Table) Cell(row int, col string) (string, bool) {
	if t == nil {
		return "", false
	}
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	r := t.Rows[row]
	if i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Value is Cell without the presence flag.
func (t *Table) Value(row int, col string) string {
	v, _ := t.Cell(row, col)
	return v
}

// RowMap returns every named column of a row.
func (t *Table) RowMap(row int) map[string]string {
	m := make(map[string]string, len(t.index))
	for col := range t.index {
		if v, ok := t.Cell(row, col); ok {
			m[col] = v
		}
	}
	return m
}

// Columns returns the non-blank header names in sheet order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	cols := make([]string, 0, len(t.Header))
	for i, h := range t.Header {
		if h != "" && t.index[h] == i {
			cols = append(cols, h)
		}
	}
	return cols
}
