package reftable

import (
	"errors"
	"testing"

	"github.com/gyeh/anestrev/internal/table"
)

func TestBuildProcedureTable(t *testing.T) {
	tbl := table.New("Página3", []string{"Código", "Porte Anest.", "Descrição"}, [][]string{
		{" 30602246 ", " 3 ", "Mastectomia"},
		{"P2", "", "Consulta"},
		{"", "9", "sem código"},
		{"30602246", "5", "Mastectomia (revisado)"},
	})

	idx, err := BuildProcedureTable(tbl)
	if err != nil {
		t.Fatalf("BuildProcedureTable: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (blank code skipped, duplicate merged)", idx.Len())
	}
	if idx.Duplicates() != 1 {
		t.Errorf("Duplicates = %d, want 1", idx.Duplicates())
	}
	p, ok := idx.Get("30602246")
	if !ok {
		t.Fatal("code 30602246 not found")
	}
	if p.AnesthesiaSize != "5" {
		t.Errorf("last write should win: size = %q, want 5", p.AnesthesiaSize)
	}
	if p.Fields["Descrição"] != "Mastectomia (revisado)" {
		t.Errorf("Fields not carried: %v", p.Fields)
	}
	if keys := idx.Keys(); keys[0] != "30602246" || keys[1] != "P2" {
		t.Errorf("Keys should keep first-insertion order, got %v", keys)
	}
}

func TestBuildProcedureTable_Empty(t *testing.T) {
	idx, err := BuildProcedureTable(table.New("Página3", nil, nil))
	if err != nil {
		t.Fatalf("empty table should not fail: %v", err)
	}
	if idx.Len() != 0 {
		t.Errorf("Len = %d, want 0", idx.Len())
	}
}

func TestBuildProcedureTable_MissingColumn(t *testing.T) {
	tbl := table.New("Página3", []string{"Código"}, [][]string{{"P1"}})
	_, err := BuildProcedureTable(tbl)
	var mce *table.MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
}

func TestBuildFeeSchedules(t *testing.T) {
	tbl := table.New("Página2", []string{"Convênio", "AN1", "AN2", "ANX", "Observação"}, [][]string{
		{"Unimed", "R$ 100,00", "R$ 200,00", "R$ 1,00", "ok"},
		{" Bradesco ", "R$ 90,00"},
		{"Unimed", "R$ 110,00", "R$ 220,00"},
	})

	idx, err := BuildFeeSchedules(tbl)
	if err != nil {
		t.Fatalf("BuildFeeSchedules: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2", idx.Len())
	}
	u, _ := idx.Get("Unimed")
	if v, _ := u.Price("AN1"); v != "R$ 110,00" {
		t.Errorf("Unimed AN1 = %q, want last row's value", v)
	}
	if _, ok := u.Price("ANX"); ok {
		t.Error("non-numeric AN column should not be a price")
	}
	if _, ok := u.Price("Observação"); ok {
		t.Error("non-price column should be dropped")
	}
	b, ok := idx.Get("  Bradesco")
	if !ok {
		t.Fatal("trimmed agreement name should be found")
	}
	if _, ok := b.Price("AN2"); ok {
		t.Error("short row should not carry AN2")
	}
}

func TestBuildFeeSchedules_MissingKeyColumn(t *testing.T) {
	tbl := table.New("Página2", []string{"Nome", "AN1"}, [][]string{{"X", "1"}})
	if _, err := BuildFeeSchedules(tbl); err == nil {
		t.Fatal("expected error when Convênio column is missing")
	}
}

func TestIndex_NilSafe(t *testing.T) {
	var idx *FeeScheduleTable
	if _, ok := idx.Get("x"); ok {
		t.Error("nil index should find nothing")
	}
	if idx.Len() != 0 || idx.Keys() != nil || idx.Duplicates() != 0 {
		t.Error("nil index should be empty")
	}
}

func TestIndex_RangeStops(t *testing.T) {
	idx := NewIndex[int]()
	idx.Set("a", 1)
	idx.Set("b", 2)
	idx.Set("c", 3)
	var seen []string
	idx.Range(func(k string, v int) bool {
		seen = append(seen, k)
		return k != "b"
	})
	if len(seen) != 2 {
		t.Errorf("Range should stop after b, saw %v", seen)
	}
}
