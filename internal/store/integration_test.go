package store_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/anestrev/internal/db"
	"github.com/gyeh/anestrev/internal/report"
	"github.com/gyeh/anestrev/internal/store"
	"github.com/gyeh/anestrev/internal/table"
)

const (
	testPort     = 15433
	testDB       = "coctest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stderr, "SKIP: store integration tests need embedded postgres")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)
	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.Exit(code)
}

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS coc CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}
	// Twice, to check the migrations are idempotent.
	for range 2 {
		if err := db.ApplyMigrations(ctx, pool, zerolog.Nop()); err != nil {
			pool.Close()
			t.Fatalf("migrations: %v", err)
		}
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func sampleReport(t *testing.T) *report.Report {
	t.Helper()
	in := &table.Tables{
		Surgeries: table.New("CIRURGIAS",
			[]string{"CONVÊNIO", "PROCEDIMENTO", "DURAÇÃO"},
			[][]string{
				{"X", "P1\nP2", "1:00"},
				{"X", "P2", "2:00"},
				{"Y", "P1", ""},
			}),
		Agreements: table.New("Página2",
			[]string{"Convênio", "AN1", "AN2"},
			[][]string{{"X", "100", "200"}}),
		Procedures: table.New("Página3",
			[]string{"Código", "Porte Anest."},
			[][]string{{"P1", "1"}, {"P2", "2"}}),
		Source: "test",
	}
	rep, err := report.Build(zerolog.Nop(), in, report.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return rep
}

func TestSaveAndList(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	rep := sampleReport(t)

	res, err := store.Save(ctx, pool, zerolog.Nop(), rep)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if res.MetricsCopied != 3 || res.SummariesCopied != 1 {
		t.Errorf("copied %d metrics, %d summaries", res.MetricsCopied, res.SummariesCopied)
	}

	var ranked, rphCents int64
	err = pool.QueryRow(ctx, `
		SELECT count(rank), max(revenue_per_hour_cents)
		FROM coc.surgery_metrics WHERE run_id = $1`, rep.RunID).Scan(&ranked, &rphCents)
	if err != nil {
		t.Fatalf("query metrics: %v", err)
	}
	if ranked != 2 || rphCents != 20000 {
		t.Errorf("ranked = %d, max rph cents = %d", ranked, rphCents)
	}

	var shareBps int32
	var totalCents int64
	err = pool.QueryRow(ctx, `
		SELECT share_bps, total_value_cents
		FROM coc.agreement_summaries WHERE run_id = $1 AND agreement = 'X'`, rep.RunID).Scan(&shareBps, &totalCents)
	if err != nil {
		t.Fatalf("query summaries: %v", err)
	}
	if shareBps != 10000 || totalCents != 40000 {
		t.Errorf("share_bps = %d, total_value_cents = %d", shareBps, totalCents)
	}

	runs, err := store.ListRuns(ctx, pool, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != rep.RunID || runs[0].Surgeries != 3 || runs[0].UnpricedSurgeries != 1 {
		t.Errorf("runs = %+v", runs)
	}
	if runs[0].SourceSHA256 != "" {
		t.Errorf("SourceSHA256 = %q, want empty", runs[0].SourceSHA256)
	}
}

func TestSaveDuplicateRunRollsBack(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	rep := sampleReport(t)

	if _, err := store.Save(ctx, pool, zerolog.Nop(), rep); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Save(ctx, pool, zerolog.Nop(), rep); err == nil {
		t.Fatal("expected error saving the same run twice")
	}

	var n int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM coc.surgery_metrics").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("surgery_metrics has %d rows, want 3", n)
	}
}

func TestDeleteRun(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	rep := sampleReport(t)

	if _, err := store.Save(ctx, pool, zerolog.Nop(), rep); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ok, err := store.DeleteRun(ctx, pool, zerolog.Nop(), rep.RunID)
	if err != nil || !ok {
		t.Fatalf("DeleteRun = %v, %v", ok, err)
	}

	var n int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM coc.agreement_summaries").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("summaries left after delete: %d", n)
	}

	ok, err = store.DeleteRun(ctx, pool, zerolog.Nop(), rep.RunID)
	if err != nil || ok {
		t.Errorf("second DeleteRun = %v, %v", ok, err)
	}
}
