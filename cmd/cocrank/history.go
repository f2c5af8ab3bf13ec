package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gyeh/anestrev/internal/db"
	"github.com/gyeh/anestrev/internal/exitcode"
	"github.com/gyeh/anestrev/internal/logging"
	"github.com/gyeh/anestrev/internal/normalize"
	"github.com/gyeh/anestrev/internal/store"
)

var (
	historyLimit  int
	historyDelete string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored report runs",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.IntVar(&historyLimit, "limit", 20, "Number of runs to list")
	f.StringVar(&historyDelete, "delete", "", "Delete the run with this ID instead of listing")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	log := logging.WithLevel(logging.Setup(cfg.LogFormat), logLevel)
	ctx := context.Background()

	if err := cfg.RequireDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	var deleteID uuid.UUID
	if historyDelete != "" {
		id, err := uuid.Parse(historyDelete)
		if err != nil {
			log.Error().Err(err).Msg("invalid run id")
			os.Exit(exitcode.UsageError)
		}
		deleteID = id
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if deleteID != uuid.Nil {
		found, err := store.DeleteRun(ctx, pool, log, deleteID)
		if err != nil {
			log.Error().Err(err).Msg("delete failed")
			os.Exit(exitcode.StoreError)
		}
		if !found {
			log.Warn().Str("run_id", deleteID.String()).Msg("run not found")
		}
		return nil
	}

	runs, err := store.ListRuns(ctx, pool, historyLimit)
	if err != nil {
		log.Error().Err(err).Msg("list failed")
		os.Exit(exitcode.StoreError)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tGENERATED\tSURGERIES\tRANKED\tAGREEMENTS\tBILLED\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.RunID, r.GeneratedAt.Local().Format("2006-01-02 15:04"),
			r.Surgeries, r.Ranked, r.Agreements,
			normalize.FormatCurrency(float64(r.BilledValueCents)/100), r.Source)
	}
	return tw.Flush()
}
