package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/anestrev/internal/exitcode"
	"github.com/gyeh/anestrev/internal/report"
	"github.com/gyeh/anestrev/internal/table"
)

// loadTables validates the source config and reads one snapshot of the
// input tables. It exits the process on failure.
func loadTables(ctx context.Context, log zerolog.Logger) (*table.Tables, time.Duration) {
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	src, err := cfg.TableSource()
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	start := time.Now()
	tables, err := src.Load(ctx)
	if err != nil {
		log.Error().Err(err).Str("source", cfg.SourceKind()).Msg("failed to load tables")
		os.Exit(exitcode.SourceError)
	}
	dur := time.Since(start)

	log.Info().
		Str("source", tables.Source).
		Int("surgeries", tables.Surgeries.Len()).
		Int("agreements", tables.Agreements.Len()).
		Int("procedures", tables.Procedures.Len()).
		Str("duration", dur.String()).
		Msg("tables loaded")
	return tables, dur
}

// buildReport runs the pipeline and exits with a phase-specific code on failure.
func buildReport(log zerolog.Logger, tables *table.Tables) (*report.Report, time.Duration) {
	opts, err := cfg.ReportOptions()
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	start := time.Now()
	rep, err := report.Build(log, tables, opts)
	if err != nil {
		if pe, ok := err.(*report.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("report failed")
			switch pe.Phase {
			case report.PhaseValidate, report.PhaseReference:
				os.Exit(exitcode.ValidationError)
			default:
				os.Exit(exitcode.ReportError)
			}
		}
		log.Error().Err(err).Msg("report failed")
		os.Exit(exitcode.ReportError)
	}
	return rep, time.Since(start)
}
