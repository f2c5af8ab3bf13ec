package table

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/gyeh/anestrev/internal/normalize"
)

// CSVSource reads the three tables from separate CSV exports.
type CSVSource struct {
	Surgeries  string
	Agreements string
	Procedures string

	// Encoding is "utf-8" (default) or "latin1" for ISO-8859-1 exports.
	Encoding string
	// Delimiter defaults to ','. Spreadsheet exports in pt-BR locales use ';'.
	Delimiter rune
}

// Load reads each file in full.
func (s *CSVSource) Load(ctx context.Context) (*Tables, error) {
	out := &Tables{Source: "csv:" + strings.Join([]string{s.Surgeries, s.Agreements, s.Procedures}, ",")}
	for _, tgt := range []struct {
		path string
		dst  **Table
	}{
		{s.Surgeries, &out.Surgeries},
		{s.Agreements, &out.Agreements},
		{s.Procedures, &out.Procedures},
	} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := s.readFile(tgt.path)
		if err != nil {
			return nil, err
		}
		*tgt.dst = t
	}

	sha, err := normalize.FileHash(s.Surgeries, s.Agreements, s.Procedures)
	if err != nil {
		return nil, err
	}
	out.SHA256 = sha
	return out, nil
}

func (s *CSVSource) readFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := ReadCSV(name, f, s.Encoding, s.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV parses a CSV stream into a Table.
func ReadCSV(name string, r io.Reader, encoding string, delim rune) (*Table, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported csv encoding %q", encoding)
	}

	reader := csv.NewReader(bufio.NewReaderSize(r, 64*1024))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	if delim != 0 {
		reader.Comma = delim
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return FromRecords(name, records), nil
}
