package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gyeh/anestrev/internal/config"
)

var (
	cfg      config.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "cocrank",
	Short: "Anesthesia billing estimates and agreement profitability ranking",
	Long: "Reads the surgery log and the fee reference tables of an anesthesia group, " +
		"estimates the billed value of every surgery per agreement, and ranks surgeries " +
		"and agreements by revenue per hour.",
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvAndConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", "", "Postgres connection string (or set COCRANK_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&cfg.ConfigPath, "config", "", "YAML config file overlaid on the flags")
}

// loadEnvAndConfig reads .env (when present) and the YAML config file
// before any subcommand runs.
func loadEnvAndConfig(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("COCRANK_DB_URL")
	}
	if cfg.ConfigPath != "" {
		if err := cfg.LoadFromFile(cfg.ConfigPath); err != nil {
			return err
		}
	}
	return nil
}

// addSourceFlags registers the flags that pick the input tables.
func addSourceFlags(f *pflag.FlagSet) {
	f.StringVar(&cfg.Source.Kind, "source", "", "Input kind: xlsx, csv or sheets (inferred when empty)")
	f.StringVar(&cfg.Source.Path, "file", "", "Workbook holding the three sheets")
	f.StringVar(&cfg.Source.SpreadsheetID, "spreadsheet-id", "", "Google spreadsheet ID")
	f.StringVar(&cfg.Source.CredentialsFile, "credentials", "", "Service account JSON (or set GOOGLE_APPLICATION_CREDENTIALS)")
	f.StringVar(&cfg.Sheets.Surgeries, "surgeries-sheet", "", "Surgeries worksheet (default CIRURGIAS)")
	f.StringVar(&cfg.Sheets.Agreements, "agreements-sheet", "", "Fee schedule worksheet (default Página2)")
	f.StringVar(&cfg.Sheets.Procedures, "procedures-sheet", "", "Procedure code worksheet (default Página3)")
	f.StringVar(&cfg.CSV.Surgeries, "surgeries-csv", "", "Surgeries CSV export")
	f.StringVar(&cfg.CSV.Agreements, "agreements-csv", "", "Fee schedule CSV export")
	f.StringVar(&cfg.CSV.Procedures, "procedures-csv", "", "Procedure code CSV export")
	f.StringVar(&cfg.CSV.Encoding, "csv-encoding", "", "CSV encoding: utf-8, latin1 or cp1252")
	f.StringVar(&cfg.CSV.Delimiter, "csv-delimiter", "", "CSV delimiter (default ,)")
	f.StringVar(&cfg.Filter.DateColumn, "date-column", "", "Surgeries column holding the date (default DATA)")
	f.StringVar(&cfg.Filter.From, "from", "", "Only surgeries on or after this date")
	f.StringVar(&cfg.Filter.To, "to", "", "Only surgeries on or before this date")
}
