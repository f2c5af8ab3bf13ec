package table

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestReadCSV_UTF8(t *testing.T) {
	in := "\ufeffCONVÊNIO,PROCEDIMENTO,DURAÇÃO\nX,\"P1 - a\nP2 - b\",1:30\n"
	tbl, err := ReadCSV("cirurgias", strings.NewReader(in), "", 0)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !tbl.Has("CONVÊNIO") {
		t.Errorf("BOM should be stripped from header, got %q", tbl.Header)
	}
	if got := tbl.Value(0, "PROCEDIMENTO"); got != "P1 - a\nP2 - b" {
		t.Errorf("PROCEDIMENTO = %q", got)
	}
}

func TestReadCSV_Latin1Semicolon(t *testing.T) {
	var buf bytes.Buffer
	enc := charmap.ISO8859_1.NewEncoder()
	data, err := enc.String("Convênio;AN1\nUnimed;R$ 1.000,00\n")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	buf.WriteString(data)

	tbl, err := ReadCSV("convenios", &buf, "latin1", ';')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got := tbl.Value(0, "Convênio"); got != "Unimed" {
		t.Errorf("Convênio = %q", got)
	}
	if got := tbl.Value(0, "AN1"); got != "R$ 1.000,00" {
		t.Errorf("AN1 = %q", got)
	}
}

func TestReadCSV_UnknownEncoding(t *testing.T) {
	if _, err := ReadCSV("x", strings.NewReader("a\n"), "ebcdic", 0); err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}

func TestCSVSource_Load(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	src := &CSVSource{
		Surgeries:  write("cirurgias.csv", "CONVÊNIO,PROCEDIMENTO,DURAÇÃO\nX,P1,1:00\n"),
		Agreements: write("convenios.csv", "Convênio,AN1\nX,100\n"),
		Procedures: write("cbhpm.csv", "Código,Porte Anest.\nP1,1\n"),
	}
	tables, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tables.Surgeries.Name != "cirurgias" {
		t.Errorf("table name = %q", tables.Surgeries.Name)
	}
	if tables.Procedures.Value(0, "Porte Anest.") != "1" {
		t.Error("procedure size class not read")
	}
	if tables.SHA256 == "" {
		t.Error("expected fingerprint")
	}
}
