package table

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads the three tables from worksheets of a Google
// spreadsheet with a service account. An empty CredentialsFile falls back
// to application default credentials.
type SheetsSource struct {
	SpreadsheetID   string
	CredentialsFile string
	Sheets          SheetNames
}

// Load fetches the formatted values of the three worksheets in one batch call.
func (s *SheetsSource) Load(ctx context.Context) (*Tables, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	if s.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.CredentialsFile))
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	names := s.Sheets.WithDefaults()
	order := []string{names.Surgeries, names.Agreements, names.Procedures}
	ranges := make([]string, len(order))
	for i, n := range order {
		ranges[i] = quoteSheet(n)
	}

	resp, err := srv.Spreadsheets.Values.BatchGet(s.SpreadsheetID).
		Ranges(ranges...).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetch spreadsheet %s: %w", s.SpreadsheetID, err)
	}
	if len(resp.ValueRanges) != len(order) {
		return nil, fmt.Errorf("fetch spreadsheet %s: got %d ranges, want %d", s.SpreadsheetID, len(resp.ValueRanges), len(order))
	}

	tables := make([]*Table, len(order))
	for i, vr := range resp.ValueRanges {
		tables[i] = FromRecords(order[i], valuesToRecords(vr.Values))
	}
	return &Tables{
		Surgeries:  tables[0],
		Agreements: tables[1],
		Procedures: tables[2],
		Source:     "sheets:" + s.SpreadsheetID,
		SHA256:     contentHash(tables...),
	}, nil
}

// quoteSheet turns a worksheet name into an A1 range covering the whole sheet.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func valuesToRecords(values [][]any) [][]string {
	records := make([][]string, len(values))
	for i, row := range values {
		rec := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				rec[j] = fmt.Sprint(v)
			}
		}
		records[i] = rec
	}
	return records
}
