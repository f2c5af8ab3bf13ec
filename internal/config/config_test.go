package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gyeh/anestrev/internal/table"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFromFile_Overlay(t *testing.T) {
	path := writeFile(t, "cocrank.yaml", `
format: xlsx
source:
  kind: csv
csv:
  surgeries: cirurgias.csv
  encoding: latin1
  delimiter: ";"
sheets:
  surgeries: Cirurgias 2025
filter:
  from: 01/01/2025
`)

	c := Config{Format: "text", OutputPath: "out.txt", Sheets: table.SheetNames{Agreements: "Tabela"}}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.Format != "xlsx" {
		t.Errorf("Format = %q, want file value", c.Format)
	}
	if c.OutputPath != "out.txt" {
		t.Errorf("OutputPath = %q, unset keys should keep flag values", c.OutputPath)
	}
	if c.Sheets.Surgeries != "Cirurgias 2025" || c.Sheets.Agreements != "Tabela" {
		t.Errorf("Sheets = %+v", c.Sheets)
	}
	if c.SourceKind() != SourceCSV || c.CSV.Encoding != "latin1" || c.CSV.Delimiter != ";" {
		t.Errorf("csv = %+v", c.CSV)
	}
	if c.Filter.From != "01/01/2025" {
		t.Errorf("Filter.From = %q", c.Filter.From)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	if err := c.LoadFromFile("/nonexistent/cocrank.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "source: [unterminated\n")
	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSourceKind(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"default", Config{}, SourceXLSX},
		{"explicit", Config{Source: SourceConfig{Kind: "CSV"}}, SourceCSV},
		{"spreadsheet id", Config{Source: SourceConfig{SpreadsheetID: "abc"}}, SourceSheets},
		{"csv paths", Config{CSV: CSVConfig{Surgeries: "c.csv"}}, SourceCSV},
	}
	for _, tt := range tests {
		if got := tt.cfg.SourceKind(); got != tt.want {
			t.Errorf("%s: SourceKind = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	wb := writeFile(t, "planilha.xlsx", "x")
	csvPath := writeFile(t, "c.csv", "a\n")

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"xlsx ok", Config{Source: SourceConfig{Path: wb}}, false},
		{"xlsx missing path", Config{}, true},
		{"xlsx missing file", Config{Source: SourceConfig{Path: "/nonexistent.xlsx"}}, true},
		{"csv ok", Config{CSV: CSVConfig{Surgeries: csvPath, Agreements: csvPath, Procedures: csvPath}}, false},
		{"csv incomplete", Config{Source: SourceConfig{Kind: SourceCSV}, CSV: CSVConfig{Surgeries: csvPath}}, true},
		{"csv long delimiter", Config{CSV: CSVConfig{Surgeries: csvPath, Agreements: csvPath, Procedures: csvPath, Delimiter: ";;"}}, true},
		{"sheets ok", Config{Source: SourceConfig{Kind: SourceSheets, SpreadsheetID: "abc"}}, false},
		{"sheets missing id", Config{Source: SourceConfig{Kind: SourceSheets}}, true},
		{"unknown kind", Config{Source: SourceConfig{Kind: "ods"}}, true},
		{"missing logo", Config{Source: SourceConfig{Path: wb}, Export: ExportConfig{Logo: "/nonexistent.png"}}, true},
		{"bad filter", Config{Source: SourceConfig{Path: wb}, Filter: FilterConfig{From: "ontem"}}, true},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateWithDSN(t *testing.T) {
	wb := writeFile(t, "planilha.xlsx", "x")
	c := Config{Source: SourceConfig{Path: wb}}
	if err := c.ValidateWithDSN(); err == nil {
		t.Error("expected error without DSN")
	}
	c.DSN = "postgres://localhost/coc"
	if err := c.ValidateWithDSN(); err != nil {
		t.Errorf("ValidateWithDSN: %v", err)
	}
}

func TestTableSource(t *testing.T) {
	c := Config{Source: SourceConfig{Path: "p.xlsx"}, Sheets: table.SheetNames{Surgeries: "S"}}
	src, err := c.TableSource()
	if err != nil {
		t.Fatalf("TableSource: %v", err)
	}
	x, ok := src.(*table.XLSXSource)
	if !ok || x.Path != "p.xlsx" || x.Sheets.Surgeries != "S" {
		t.Errorf("xlsx source = %#v", src)
	}

	c = Config{CSV: CSVConfig{Surgeries: "a", Agreements: "b", Procedures: "c", Delimiter: ";"}}
	src, _ = c.TableSource()
	if cs, ok := src.(*table.CSVSource); !ok || cs.Delimiter != ';' {
		t.Errorf("csv source = %#v", src)
	}

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/etc/sa.json")
	c = Config{Source: SourceConfig{SpreadsheetID: "abc"}}
	src, _ = c.TableSource()
	if ss, ok := src.(*table.SheetsSource); !ok || ss.CredentialsFile != "/etc/sa.json" {
		t.Errorf("sheets source = %#v", src)
	}
}

func TestReportOptions(t *testing.T) {
	c := Config{}
	opts, err := c.ReportOptions()
	if err != nil || opts.From != nil || opts.To != nil {
		t.Fatalf("empty filter = %+v, %v", opts, err)
	}

	c.Filter = FilterConfig{From: "01/02/2025", To: "2025-02-28"}
	opts, err = c.ReportOptions()
	if err != nil {
		t.Fatalf("ReportOptions: %v", err)
	}
	if opts.DateColumn != DefaultDateColumn {
		t.Errorf("DateColumn = %q", opts.DateColumn)
	}
	if !opts.From.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("From = %v", opts.From)
	}
	if last := time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC); opts.To.Before(last) {
		t.Errorf("To = %v, want the whole last day", opts.To)
	}

	c.Filter = FilterConfig{From: "2025-03-01", To: "2025-02-01"}
	if _, err := c.ReportOptions(); err == nil {
		t.Error("expected error when to is before from")
	}
}
