package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/anestrev/internal/db"
	"github.com/gyeh/anestrev/internal/exitcode"
	"github.com/gyeh/anestrev/internal/logging"
	"github.com/gyeh/anestrev/internal/normalize"
	"github.com/gyeh/anestrev/internal/render"
	"github.com/gyeh/anestrev/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute billed values and write the ranking report",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	addSourceFlags(f)
	f.StringVar(&cfg.Format, "format", "text", "Output format: text, json, csv, xlsx, parquet or parquet-agreements")
	f.StringVarP(&cfg.OutputPath, "output", "o", "", "Output file (default stdout)")
	f.StringVar(&cfg.Export.Logo, "logo", "", "Image placed on the xlsx strategic sheet")
	f.BoolVar(&cfg.Store, "store", false, "Also persist the run to Postgres")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.WithLevel(logging.Setup(cfg.LogFormat), logLevel)
	ctx := context.Background()
	start := time.Now()

	if cfg.Store {
		if err := cfg.RequireDSN(); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}
	}
	renderer, err := render.NewRegistry(render.Options{Logo: cfg.Export.Logo}).Lookup(cfg.Format)
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	tables, loadDur := loadTables(ctx, log)
	rep, buildDur := buildReport(log, tables)

	if err := writeOutput(cfg.OutputPath, func(w io.Writer) error { return renderer.Render(w, rep) }); err != nil {
		log.Error().Err(err).Str("format", renderer.Format()).Msg("render failed")
		os.Exit(exitcode.RenderError)
	}

	if cfg.Store {
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()

		if _, err := store.Save(ctx, pool, log, rep); err != nil {
			log.Error().Err(err).Msg("store failed")
			os.Exit(exitcode.StoreError)
		}
	}

	summary := rep.Summary()
	summary.DurationLoad = loadDur
	summary.DurationBuild = buildDur
	summary.DurationTotal = time.Since(start)
	log.Info().
		Str("run_id", summary.RunID).
		Int("surgeries", summary.Surgeries).
		Int("ranked", summary.Ranked).
		Int("agreements", summary.Agreements).
		Str("billed_value", normalize.FormatCurrency(rep.Totals.BilledValue)).
		Str("duration", summary.DurationTotal.String()).
		Msg("report complete")
	return nil
}

// writeOutput runs fn against the output file, or stdout when path is
// empty or "-".
func writeOutput(path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
