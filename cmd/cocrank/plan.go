package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyeh/anestrev/internal/logging"
	"github.com/gyeh/anestrev/internal/normalize"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and data-quality stats (no writes)",
	RunE:  runPlan,
}

func init() {
	addSourceFlags(planCmd.Flags())
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.WithLevel(logging.Setup(cfg.LogFormat), logLevel)
	ctx := context.Background()

	tables, loadDur := loadTables(ctx, log)
	rep, _ := buildReport(log, tables)
	q := rep.Quality

	fmt.Println("=== cocrank plan ===")
	fmt.Printf("Source:         %s\n", tables.Source)
	fmt.Printf("SHA-256:        %s\n", tables.SHA256)
	fmt.Printf("Load time:      %s\n", loadDur)
	fmt.Printf("Surgeries:      %d (%d outside the period)\n", len(rep.Surgeries), rep.FilteredOut)
	fmt.Printf("Agreements:     %d fee schedules from %d rows (%d duplicate rows)\n", rep.FeeSchedules, tables.Agreements.Len(), rep.DuplicateAgreements)
	fmt.Printf("Procedures:     %d codes from %d rows (%d duplicate rows)\n", rep.ProcedureCodes, tables.Procedures.Len(), rep.DuplicateCodes)
	fmt.Println()
	fmt.Println("Durations:")
	fmt.Printf("  with hours    %6d\n", rep.Totals.WithHours)
	fmt.Printf("  without hours %6d\n", rep.Totals.WithoutHours)
	fmt.Println()
	fmt.Println("Procedure entries:")
	fmt.Printf("  priced              %6d\n", q.PricedEntries)
	fmt.Printf("  unknown code        %6d\n", q.UnknownCodes)
	fmt.Printf("  non-numeric size    %6d\n", q.NonNumericSizes)
	fmt.Printf("  missing fee column  %6d\n", q.MissingFeeColumns)
	fmt.Printf("Unknown agreements:   %6d surgeries\n", q.UnknownAgreements)
	fmt.Printf("Unpriced surgeries:   %6d\n", rep.Totals.UnpricedSurgeries)
	fmt.Println()
	fmt.Printf("Estimated billed value: %s\n", normalize.FormatCurrency(rep.Totals.BilledValue))
	if q.Problems() == 0 {
		fmt.Println("Data quality: OK")
	} else {
		fmt.Printf("Data quality: %d problem(s), affected entries price at zero\n", q.Problems())
	}
	return nil
}
