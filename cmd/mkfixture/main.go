// mkfixture creates a small representative workbook from a full surgery log.
// Two-pass: first buckets every surgery by interesting traits, then selects the best N.
// Usage: go run ./cmd/mkfixture --in testdata/planilha.xlsx --out testdata/planilha-small.xlsx --rows 60
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/anestrev/internal/config"
	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/normalize"
	"github.com/gyeh/anestrev/internal/table"
)

func main() {
	in := flag.String("in", "testdata/planilha.xlsx", "input workbook")
	out := flag.String("out", "testdata/planilha-small.xlsx", "output workbook")
	maxRows := flag.Int("rows", 60, "max surgeries to output")
	perAgreement := flag.Int("per-agreement", 3, "surgeries kept per agreement before the general pool")
	anonymize := flag.Bool("anonymize", true, "blank every surgeries column the pricing does not read")
	checkOnly := flag.Bool("check", false, "only print stats, don't write")
	flag.Parse()

	src := &table.XLSXSource{Path: *in}
	tables, err := src.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load workbook: %v\n", err)
		os.Exit(1)
	}
	surg := tables.Surgeries
	if err := surg.Require(model.SurgeryColumns...); err != nil {
		fmt.Fprintf(os.Stderr, "surgeries: %v\n", err)
		os.Exit(1)
	}

	if *checkOnly {
		agreements := make(map[string]int)
		multi, noHours := 0, 0
		for i := 0; i < surg.Len(); i++ {
			agreements[strings.TrimSpace(surg.Value(i, model.ColAgreement))]++
			if strings.Contains(surg.Value(i, model.ColProcedures), "\n") {
				multi++
			}
			if normalize.ParseDurationHours(surg.Value(i, model.ColDuration)) == nil {
				noHours++
			}
		}
		fmt.Printf("Surgeries: %d, Agreements: %d, Multi-procedure: %d, Without hours: %d\n",
			surg.Len(), len(agreements), multi, noHours)
		fmt.Printf("Fee schedules: %d, Procedure codes: %d\n", tables.Agreements.Len(), tables.Procedures.Len())
		return
	}

	// Pass 1: bucket every surgery by interesting traits.
	type bucket struct {
		name string
		rows []int
		want int
	}
	buckets := []*bucket{
		{name: "multi_procedure", want: 15},
		{name: "no_hours", want: 5},
		{name: "per_agreement", want: *maxRows},
		{name: "general", want: 0},
	}
	bucketMap := make(map[string]*bucket)
	for _, b := range buckets {
		bucketMap[b.name] = b
	}
	seen := make(map[string]int)

	for i := 0; i < surg.Len(); i++ {
		agreement := normalize.NormalizeKey(surg.Value(i, model.ColAgreement))

		placed := false
		if strings.Contains(surg.Value(i, model.ColProcedures), "\n") && len(bucketMap["multi_procedure"].rows) < bucketMap["multi_procedure"].want {
			bucketMap["multi_procedure"].rows = append(bucketMap["multi_procedure"].rows, i)
			placed = true
		}
		if normalize.ParseDurationHours(surg.Value(i, model.ColDuration)) == nil && len(bucketMap["no_hours"].rows) < bucketMap["no_hours"].want {
			bucketMap["no_hours"].rows = append(bucketMap["no_hours"].rows, i)
			placed = true
		}
		if !placed && seen[agreement] < *perAgreement {
			seen[agreement]++
			bucketMap["per_agreement"].rows = append(bucketMap["per_agreement"].rows, i)
			placed = true
		}
		if !placed && len(bucketMap["general"].rows) < *maxRows {
			bucketMap["general"].rows = append(bucketMap["general"].rows, i)
		}
	}
	fmt.Printf("Scanned %d surgeries\n", surg.Len())

	// Merge buckets in priority order
	var selected []int
	for _, b := range buckets {
		for _, i := range b.rows {
			if len(selected) >= *maxRows {
				break
			}
			selected = append(selected, i)
		}
	}
	slices.Sort(selected)

	rows := make([][]string, len(selected))
	for n, i := range selected {
		rows[n] = sampleRow(surg, i, *anonymize)
	}
	sample := table.New(surg.Name, surg.Header, rows)

	// Write output
	f := excelize.NewFile()
	defer f.Close()
	for _, t := range []*table.Table{sample, tables.Agreements, tables.Procedures} {
		if err := table.WriteSheet(f, t); err != nil {
			fmt.Fprintf(os.Stderr, "write: %v\n", err)
			os.Exit(1)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		fmt.Fprintf(os.Stderr, "delete default sheet: %v\n", err)
		os.Exit(1)
	}
	if err := f.SaveAs(*out); err != nil {
		fmt.Fprintf(os.Stderr, "save: %v\n", err)
		os.Exit(1)
	}

	// Print summary
	agreements := make(map[string]int)
	for i := 0; i < sample.Len(); i++ {
		agreements[normalize.NormalizeKey(sample.Value(i, model.ColAgreement))]++
	}
	fmt.Printf("Wrote %d surgeries (%d agreements) to %s\n", len(rows), len(agreements), *out)
	for _, b := range buckets {
		fmt.Printf("  %-16s %d\n", b.name, len(b.rows))
	}
}

// sampleRow copies surgery i. With anonymize set, only the columns the
// pricing and the period filter read are kept.
func sampleRow(t *table.Table, i int, anonymize bool) []string {
	row := make([]string, len(t.Header))
	for c, col := range t.Header {
		if anonymize && col != config.DefaultDateColumn && !slices.Contains(model.SurgeryColumns, col) {
			continue
		}
		if c < len(t.Rows[i]) {
			row[c] = t.Rows[i][c]
		}
	}
	return row
}
