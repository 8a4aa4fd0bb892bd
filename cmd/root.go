package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AlirezaBelal/linkedin-connection-remover/config"
	"github.com/AlirezaBelal/linkedin-connection-remover/input"
	"github.com/AlirezaBelal/linkedin-connection-remover/linkedin"
	"github.com/AlirezaBelal/linkedin-connection-remover/recorder"
	"github.com/AlirezaBelal/linkedin-connection-remover/services"
	"github.com/AlirezaBelal/linkedin-connection-remover/session"
	"github.com/AlirezaBelal/linkedin-connection-remover/storage"
	"github.com/AlirezaBelal/linkedin-connection-remover/utils"
)

type rootFlags struct {
	inputCSV    string
	resultsCSV  string
	debugDir    string
	userDataDir string
	dryRun      bool
	minDelay    float64
	maxDelay    float64
	headless    bool
	useDB       bool
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:   "linkedin-connection-remover",
	Short: "Remove LinkedIn connections listed in a CSV, one profile at a time",
	Long: `Reads profile URLs from a Connections.csv export, drives a dedicated
Chrome profile through the remove-connection flow for each, and appends one
result row per URL to the results log. First run requires a manual login in
the opened Chrome window.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	defaults := config.Default()
	rootCmd.Flags().StringVar(&flags.inputCSV, "input", defaults.InputCSV, "input CSV with a URL column")
	rootCmd.Flags().StringVar(&flags.resultsCSV, "out", defaults.ResultsCSV, "results CSV (appended)")
	rootCmd.Flags().StringVar(&flags.debugDir, "debug-dir", defaults.DebugDir, "directory for failure snapshots")
	rootCmd.Flags().StringVar(&flags.userDataDir, "user-data-dir", defaults.UserDataDir, "dedicated Chrome profile directory")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", defaults.DryRun, "locate the remove control but never click it")
	rootCmd.Flags().Float64Var(&flags.minDelay, "min-delay", defaults.MinDelay, "lower bound of the inter-profile wait (seconds)")
	rootCmd.Flags().Float64Var(&flags.maxDelay, "max-delay", defaults.MaxDelay, "upper bound of the inter-profile wait (seconds)")
	rootCmd.Flags().BoolVar(&flags.headless, "headless", defaults.Headless, "run Chrome headless (manual login needs a window)")
	rootCmd.Flags().BoolVar(&flags.useDB, "db", defaults.DBEnabled, "mirror results into PostgreSQL")
}

// Execute runs the root command. Setup failures exit non-zero; a completed
// batch exits zero even when individual profiles failed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	cfg.InputCSV = flags.inputCSV
	cfg.ResultsCSV = flags.resultsCSV
	cfg.DebugDir = flags.debugDir
	cfg.UserDataDir = flags.userDataDir
	cfg.DryRun = flags.dryRun
	cfg.MinDelay = flags.minDelay
	cfg.MaxDelay = flags.maxDelay
	cfg.Headless = flags.headless
	cfg.DBEnabled = flags.useDB

	runID := uuid.NewString()

	log.Printf("╔═══════════════════════════════════════════════════╗")
	log.Printf("║        LinkedIn Connection Remover                ║")
	log.Printf("╚═══════════════════════════════════════════════════╝")
	log.Printf("Run      : %s", runID)
	log.Printf("Input    : %s", cfg.InputCSV)
	log.Printf("Output   : %s", cfg.ResultsCSV)
	log.Printf("Delay    : %.1f–%.1f s between profiles", cfg.MinDelay, cfg.MaxDelay)
	log.Printf("Dry run  : %v", cfg.DryRun)
	if cfg.DBEnabled {
		log.Printf("Postgres : %s:%d/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	}

	entries, skipped, err := input.Load(cfg.InputCSV)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	if skipped > 0 {
		log.Printf("⚠ %d input rows skipped (empty or malformed URL)", skipped)
	}
	if len(entries) == 0 {
		log.Printf("No profile URLs to process.")
		return nil
	}
	log.Printf("Profiles : %d", len(entries))

	rec, err := recorder.OpenCSV(cfg.ResultsCSV)
	if err != nil {
		return fmt.Errorf("open recorder: %w", err)
	}
	defer rec.Close()

	snaps, err := recorder.NewSnapshotWriter(cfg.DebugDir)
	if err != nil {
		return fmt.Errorf("open snapshot writer: %w", err)
	}

	var store services.ResultStore
	if cfg.DBEnabled {
		pg, err := storage.NewPostgresStore(cfg, runID)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pg.Close()
		store = pg
	}

	// Interrupts cancel the root context; the deferred session close still
	// runs, so Chrome is released on every exit path.
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx, cancelRun := context.WithTimeout(rootCtx, cfg.GlobalTimeout)
	defer cancelRun()

	client := linkedin.NewClient(cfg.NavTimeout)
	sess, err := session.Open(runCtx, cfg, client, session.StdinConfirm)
	if err != nil {
		return fmt.Errorf("open browser session: %w", err)
	}
	defer sess.Close()

	// The tab context is a child of runCtx, so interrupts and the global
	// timeout propagate into every browser action.
	runner := services.NewRunner(cfg, client, rec, snaps, store)
	results := runner.Run(sess.Ctx, entries)

	stats := utils.BuildSummaryStats(results)
	log.Printf("═══════════════════════════════════════════════════")
	log.Printf("  DONE — %d of %d profiles processed → %s", stats.Total, len(entries), cfg.ResultsCSV)
	log.Printf("    Removed : %d", stats.Removed)
	log.Printf("    Dry-run : %d", stats.DryRun)
	log.Printf("    Skipped : %d", stats.Skipped)
	log.Printf("    Failed  : %d", stats.Failed)
	for _, u := range stats.FailedURLs {
		log.Printf("      ✗ %s", u)
	}
	log.Printf("═══════════════════════════════════════════════════")

	return nil
}
