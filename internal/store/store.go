// Package store persists report runs to Postgres so past runs can be
// listed and compared.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/anestrev/internal/db"
	"github.com/gyeh/anestrev/internal/model"
	"github.com/gyeh/anestrev/internal/normalize"
	"github.com/gyeh/anestrev/internal/report"
	embedsql "github.com/gyeh/anestrev/internal/sql"
)

const copyBufferSize = 1024

// SaveResult holds metrics from saving one run.
type SaveResult struct {
	MetricsCopied   int64
	SummariesCopied int64
	Duration        time.Duration
}

// Run is one stored report run, as listed by ListRuns.
type Run struct {
	RunID              uuid.UUID
	GeneratedAt        time.Time
	Source             string
	SourceSHA256       string
	Surgeries          int
	Ranked             int
	Agreements         int
	BilledValueCents   int64
	AverageTicketCents int64
	UnpricedSurgeries  int
}

// Save writes the run header, every surgery's metrics and the agreement
// summaries in one transaction. Metrics are streamed to COPY through a
// channel-backed CopyFromSource.
func Save(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, rep *report.Report) (*SaveResult, error) {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, embedsql.InsertRun,
		rep.RunID,
		rep.GeneratedAt,
		rep.Source,
		rep.SourceSHA256,
		rep.Totals.Surgeries,
		len(rep.Ranking),
		len(rep.Agreements),
		normalize.ToCents(rep.Totals.BilledValue),
		normalize.ToCents(rep.Totals.AverageTicket),
		rep.Totals.UnpricedSurgeries,
	); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	ranks := rep.Ranks()

	ch := make(chan *model.MetricsRow, copyBufferSize)
	errCh := make(chan error, 1)

	// Producer goroutine: metrics → DB rows → channel
	go func() {
		defer close(ch)
		for i := range rep.Surgeries {
			m := &rep.Surgeries[i]
			select {
			case ch <- metricsRow(rep.RunID, m, ranks[m.Row]):
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	// Consumer: COPY from channel into coc.surgery_metrics
	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"coc", "surgery_metrics"},
		model.MetricsColumns(),
		db.NewChannelSource(ch),
	)
	if err != nil {
		// Drain so the producer can exit.
		for range ch {
		}
	}
	if prodErr := <-errCh; prodErr != nil {
		return nil, fmt.Errorf("metrics producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("copy metrics: %w", err)
	}

	rows := make([][]any, len(rep.Agreements))
	for i := range rep.Agreements {
		rows[i] = summaryValues(rep.RunID, &rep.Agreements[i])
	}
	summaries, err := tx.CopyFrom(ctx,
		pgx.Identifier{"coc", "agreement_summaries"},
		model.SummaryColumns(),
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return nil, fmt.Errorf("copy summaries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Str("run_id", rep.RunID.String()).
		Int64("metrics", copied).
		Int64("summaries", summaries).
		Str("duration", dur.String()).
		Msg("run stored")

	return &SaveResult{
		MetricsCopied:   copied,
		SummariesCopied: summaries,
		Duration:        dur,
	}, nil
}

// ListRuns returns the most recent runs, newest first.
func ListRuns(ctx context.Context, pool *pgxpool.Pool, limit int) ([]Run, error) {
	rows, err := pool.Query(ctx, embedsql.ListRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Run, error) {
		var r Run
		err := row.Scan(
			&r.RunID, &r.GeneratedAt, &r.Source, &r.SourceSHA256,
			&r.Surgeries, &r.Ranked, &r.Agreements,
			&r.BilledValueCents, &r.AverageTicketCents, &r.UnpricedSurgeries,
		)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and, by cascade, its metrics and summaries.
// It reports whether the run existed.
func DeleteRun(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID) (bool, error) {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.DeleteRun, runID)
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}

	log.Info().
		Str("run_id", runID.String()).
		Int64("rows_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("run deleted")

	return tag.RowsAffected() > 0, nil
}
