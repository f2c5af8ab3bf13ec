package table

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// Default worksheet names of the clinic's spreadsheet.
const (
	DefaultSurgeriesSheet  = "CIRURGIAS"
	DefaultAgreementsSheet = "Página2"
	DefaultProceduresSheet = "Página3"
)

// Source loads the three input tables. Each Load reads a fresh snapshot;
// callers own any caching.
type Source interface {
	Load(ctx context.Context) (*Tables, error)
}

// SheetNames maps each input table to its worksheet.
type SheetNames struct {
	Surgeries  string `yaml:"surgeries"`
	Agreements string `yaml:"agreements"`
	Procedures string `yaml:"procedures"`
}

// WithDefaults fills blank names with the clinic's defaults.
func (s SheetNames) WithDefaults() SheetNames {
	if s.Surgeries == "" {
		s.Surgeries = DefaultSurgeriesSheet
	}
	if s.Agreements == "" {
		s.Agreements = DefaultAgreementsSheet
	}
	if s.Procedures == "" {
		s.Procedures = DefaultProceduresSheet
	}
	return s
}

// contentHash fingerprints tables that do not come from local files.
func contentHash(tables ...*Table) string {
	h := sha256.New()
	for _, t := range tables {
		fmt.Fprintf(h, "%s\x00", t.Name)
		for _, col := range t.Header {
			fmt.Fprintf(h, "%s\x00", col)
		}
		for _, row := range t.Rows {
			for _, c := range row {
				fmt.Fprintf(h, "%s\x00", c)
			}
			h.Write([]byte{'\n'})
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
