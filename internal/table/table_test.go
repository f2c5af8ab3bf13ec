package table

import (
	"errors"
	"testing"
)

func TestFromRecords(t *testing.T) {
	tbl := FromRecords("CIRURGIAS", [][]string{
		{" CONVÊNIO ", "PROCEDIMENTO", "DURAÇÃO", "", "CONVÊNIO"},
		{"X", "P1", "1:00"},
		{"", " ", ""},
		{"Y", "P2", "2:00", "extra", "shadowed"},
	})

	if tbl.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (blank row dropped)", tbl.Len())
	}
	if !tbl.Has("CONVÊNIO") {
		t.Error("header should be trimmed")
	}
	if got := tbl.Value(1, "CONVÊNIO"); got != "Y" {
		t.Errorf("duplicate header should resolve to first column, got %q", got)
	}
	if _, ok := tbl.Cell(0, "DURAÇÃO"); !ok {
		t.Error("DURAÇÃO should be present on row 0")
	}
	if _, ok := tbl.Cell(0, "missing"); ok {
		t.Error("unknown column should be absent")
	}
	if _, ok := tbl.Cell(5, "CONVÊNIO"); ok {
		t.Error("out-of-range row should be absent")
	}

	cols := tbl.Columns()
	if len(cols) != 3 || cols[0] != "CONVÊNIO" || cols[2] != "DURAÇÃO" {
		t.Errorf("Columns = %v", cols)
	}
	m := tbl.RowMap(0)
	if m["PROCEDIMENTO"] != "P1" || len(m) != 3 {
		t.Errorf("RowMap = %v", m)
	}
}

func TestCell_ShortRow(t *testing.T) {
	tbl := New("t", []string{"a", "b"}, [][]string{{"1"}})
	if _, ok := tbl.Cell(0, "b"); ok {
		t.Error("cell past the end of a short row should be absent")
	}
}

func TestFromRecords_Empty(t *testing.T) {
	tbl := FromRecords("empty", nil)
	if tbl.Len() != 0 || tbl.Has("x") {
		t.Error("empty records should give an empty table")
	}
	var nilTable *Table
	if nilTable.Len() != 0 || nilTable.Has("x") {
		t.Error("nil table should behave as empty")
	}
}

func TestRequire(t *testing.T) {
	tbl := New("CIRURGIAS", []string{"CONVÊNIO", "PROCEDIMENTO"}, [][]string{{"X", "P1"}})

	if err := tbl.Require("CONVÊNIO"); err != nil {
		t.Fatalf("Require: %v", err)
	}
	err := tbl.Require("CONVÊNIO", "DURAÇÃO")
	var mce *MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if len(mce.Columns) != 1 || mce.Columns[0] != "DURAÇÃO" || mce.Table != "CIRURGIAS" {
		t.Errorf("unexpected error detail: %+v", mce)
	}
}

func TestRequireIfRows(t *testing.T) {
	empty := New("Página3", nil, nil)
	if err := empty.RequireIfRows("Código"); err != nil {
		t.Errorf("empty table should pass: %v", err)
	}
	filled := New("Página3", []string{"Descrição"}, [][]string{{"x"}})
	if err := filled.RequireIfRows("Código"); err == nil {
		t.Error("non-empty table without Código should fail")
	}
}

func TestContentHash_Stable(t *testing.T) {
	a := New("s", []string{"h"}, [][]string{{"1"}})
	b := New("s", []string{"h"}, [][]string{{"1"}})
	c := New("s", []string{"h"}, [][]string{{"2"}})
	if contentHash(a) != contentHash(b) {
		t.Error("identical tables should hash the same")
	}
	if contentHash(a) == contentHash(c) {
		t.Error("different tables should hash differently")
	}
}

func TestValuesToRecords(t *testing.T) {
	recs := valuesToRecords([][]any{{"CONVÊNIO", nil, 3.5}})
	if recs[0][0] != "CONVÊNIO" || recs[0][1] != "" || recs[0][2] != "3.5" {
		t.Errorf("valuesToRecords = %v", recs)
	}
	if got := quoteSheet("Página 2's"); got != "'Página 2''s'" {
		t.Errorf("quoteSheet = %q", got)
	}
}
