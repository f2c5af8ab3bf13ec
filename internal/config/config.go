package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/anestrev/internal/normalize"
	"github.com/gyeh/anestrev/internal/report"
	"github.com/gyeh/anestrev/internal/table"
)

// Source kinds.
const (
	SourceXLSX   = "xlsx"
	SourceCSV    = "csv"
	SourceSheets = "sheets"
)

// DefaultDateColumn is the surgeries column the period filter reads.
const DefaultDateColumn = "DATA"

// Config holds all runtime configuration for a cocrank run.
type Config struct {
	DSN        string
	ConfigPath string
	LogFormat  string // "text" or "json"
	Format     string // output format, see render.NewRegistry
	OutputPath string // "" or "-" writes to stdout
	Store      bool   // persist the run to Postgres

	Source SourceConfig     `yaml:"source"`
	Sheets table.SheetNames `yaml:"sheets"`
	CSV    CSVConfig        `yaml:"csv"`
	Export ExportConfig     `yaml:"export"`
	Filter FilterConfig     `yaml:"filter"`
}

// SourceConfig selects where the three input tables are read from.
type SourceConfig struct {
	Kind            string `yaml:"kind"` // xlsx, csv or sheets
	Path            string `yaml:"path"` // workbook, for xlsx
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

// CSVConfig names the three CSV exports and how they are encoded.
type CSVConfig struct {
	Surgeries  string `yaml:"surgeries"`
	Agreements string `yaml:"agreements"`
	Procedures string `yaml:"procedures"`
	Encoding   string `yaml:"encoding"`
	Delimiter  string `yaml:"delimiter"`
}

// ExportConfig styles the xlsx output.
type ExportConfig struct {
	Logo string `yaml:"logo"`
}

// FilterConfig restricts a run to a period. Dates are day-first
// (02/01/2006) or ISO (2006-01-02).
type FilterConfig struct {
	DateColumn string `yaml:"date_column"`
	From       string `yaml:"from"`
	To         string `yaml:"to"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Format string           `yaml:"format"`
	Output string           `yaml:"output"`
	Source SourceConfig     `yaml:"source"`
	Sheets table.SheetNames `yaml:"sheets"`
	CSV    CSVConfig        `yaml:"csv"`
	Export ExportConfig     `yaml:"export"`
	Filter FilterConfig     `yaml:"filter"`
}

// LoadFromFile reads a YAML config file and overlays every value it sets
// onto Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	set(&c.Format, yc.Format)
	set(&c.OutputPath, yc.Output)

	set(&c.Source.Kind, yc.Source.Kind)
	set(&c.Source.Path, yc.Source.Path)
	set(&c.Source.SpreadsheetID, yc.Source.SpreadsheetID)
	set(&c.Source.CredentialsFile, yc.Source.CredentialsFile)

	set(&c.Sheets.Surgeries, yc.Sheets.Surgeries)
	set(&c.Sheets.Agreements, yc.Sheets.Agreements)
	set(&c.Sheets.Procedures, yc.Sheets.Procedures)

	set(&c.CSV.Surgeries, yc.CSV.Surgeries)
	set(&c.CSV.Agreements, yc.CSV.Agreements)
	set(&c.CSV.Procedures, yc.CSV.Procedures)
	set(&c.CSV.Encoding, yc.CSV.Encoding)
	set(&c.CSV.Delimiter, yc.CSV.Delimiter)

	set(&c.Export.Logo, yc.Export.Logo)

	set(&c.Filter.DateColumn, yc.Filter.DateColumn)
	set(&c.Filter.From, yc.Filter.From)
	set(&c.Filter.To, yc.Filter.To)
	return nil
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// SourceKind returns the configured kind, inferring it when unset: a
// spreadsheet ID means sheets, CSV paths mean csv, anything else xlsx.
func (c *Config) SourceKind() string {
	switch {
	case c.Source.Kind != "":
		return strings.ToLower(c.Source.Kind)
	case c.Source.SpreadsheetID != "":
		return SourceSheets
	case c.CSV.Surgeries != "":
		return SourceCSV
	default:
		return SourceXLSX
	}
}

// Validate checks the input side of the config: the source and the filter.
func (c *Config) Validate() error {
	switch c.SourceKind() {
	case SourceXLSX:
		if c.Source.Path == "" {
			return errors.New("--file is required")
		}
		if _, err := os.Stat(c.Source.Path); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	case SourceCSV:
		for _, p := range []string{c.CSV.Surgeries, c.CSV.Agreements, c.CSV.Procedures} {
			if p == "" {
				return errors.New("csv source needs surgeries, agreements and procedures files")
			}
			if _, err := os.Stat(p); err != nil {
				return fmt.Errorf("file not accessible: %w", err)
			}
		}
		if utf8.RuneCountInString(c.CSV.Delimiter) > 1 {
			return fmt.Errorf("csv delimiter %q must be a single character", c.CSV.Delimiter)
		}
	case SourceSheets:
		if c.Source.SpreadsheetID == "" {
			return errors.New("--spreadsheet-id is required for the sheets source")
		}
	default:
		return fmt.Errorf("unknown source kind %q (want xlsx, csv or sheets)", c.Source.Kind)
	}

	if c.Export.Logo != "" {
		if _, err := os.Stat(c.Export.Logo); err != nil {
			return fmt.Errorf("logo not accessible: %w", err)
		}
	}
	_, err := c.ReportOptions()
	return err
}

// ValidateWithDSN checks the source and the DSN.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.RequireDSN()
}

// RequireDSN checks only the DSN, for commands that never read a source.
func (c *Config) RequireDSN() error {
	if c.DSN == "" {
		return errors.New("--dsn or COCRANK_DB_URL is required")
	}
	return nil
}

// TableSource builds the loader for the configured source.
func (c *Config) TableSource() (table.Source, error) {
	switch c.SourceKind() {
	case SourceXLSX:
		return &table.XLSXSource{Path: c.Source.Path, Sheets: c.Sheets}, nil
	case SourceCSV:
		delim, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
		if delim == utf8.RuneError {
			delim = 0
		}
		return &table.CSVSource{
			Surgeries:  c.CSV.Surgeries,
			Agreements: c.CSV.Agreements,
			Procedures: c.CSV.Procedures,
			Encoding:   c.CSV.Encoding,
			Delimiter:  delim,
		}, nil
	case SourceSheets:
		creds := c.Source.CredentialsFile
		if creds == "" {
			creds = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		}
		return &table.SheetsSource{
			SpreadsheetID:   c.Source.SpreadsheetID,
			CredentialsFile: creds,
			Sheets:          c.Sheets,
		}, nil
	}
	return nil, fmt.Errorf("unknown source kind %q", c.Source.Kind)
}

// ReportOptions converts the filter section into pipeline options.
func (c *Config) ReportOptions() (report.Options, error) {
	var opts report.Options
	if c.Filter.From == "" && c.Filter.To == "" {
		return opts, nil
	}
	opts.DateColumn = c.Filter.DateColumn
	if opts.DateColumn == "" {
		opts.DateColumn = DefaultDateColumn
	}

	var err error
	if opts.From, err = parseBound("from", c.Filter.From); err != nil {
		return opts, err
	}
	if opts.To, err = parseBound("to", c.Filter.To); err != nil {
		return opts, err
	}
	if opts.To != nil {
		// Inclusive: the whole last day counts.
		end := opts.To.Add(24*time.Hour - time.Nanosecond)
		opts.To = &end
	}
	if opts.From != nil && opts.To != nil && opts.To.Before(*opts.From) {
		return opts, fmt.Errorf("filter: to (%s) is before from (%s)", c.Filter.To, c.Filter.From)
	}
	return opts, nil
}

func parseBound(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t := normalize.ParseDate(raw)
	if t == nil {
		return nil, fmt.Errorf("filter: cannot parse %s date %q", name, raw)
	}
	return t, nil
}
