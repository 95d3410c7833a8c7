package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/novelcards/internal/config"
	"github.com/abdulachik/novelcards/internal/db"
	"github.com/spf13/cobra"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show generation run history",
	Long:  `Display totals and the most recent runs recorded in the run ledger.`,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsLimit, "limit", 10, "Number of recent runs to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForStats(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	// Ensure migrations are run
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	total, err := store.CountRuns(ctx)
	if err != nil {
		return fmt.Errorf("count runs: %w", err)
	}

	byPipeline, err := store.CountRunsByPipeline(ctx)
	if err != nil {
		return fmt.Errorf("count runs by pipeline: %w", err)
	}

	recent, err := store.ListRecentRuns(ctx, int64(statsLimit))
	if err != nil {
		return fmt.Errorf("list recent runs: %w", err)
	}

	fmt.Println("=== novelcards runs ===")
	fmt.Println()
	fmt.Printf("Database: %s\n", cfg.DatabasePath)
	fmt.Printf("Total runs: %d\n", total)
	fmt.Println()

	if len(byPipeline) > 0 {
		fmt.Println("By pipeline:")
		for _, row := range byPipeline {
			fmt.Printf("  %s (%s): %d\n", row.Pipeline, row.Status, row.Count)
		}
		fmt.Println()
	}

	if len(recent) > 0 {
		fmt.Println("Recent runs:")
		for _, run := range recent {
			printRun(ctx, store, run)
		}
	}

	return nil
}

func printRun(ctx context.Context, store *db.Store, run db.GenerationRun) {
	started := "-"
	if run.StartedAt.Valid {
		started = run.StartedAt.Time.Format("2006-01-02 15:04:05")
	}

	fmt.Printf("  #%d %s %s %s -> %s\n", run.ID, started, run.Pipeline, run.Status, run.OutputPath)

	switch run.Status {
	case db.StatusFailed:
		fmt.Printf("      error: %s\n", run.ErrorMessage.String)
	case db.StatusCompleted:
		fmt.Printf("      records: %d", run.RecordCount)
		if run.OutputSha256.Valid {
			fmt.Printf(", sha256: %.12s", run.OutputSha256.String)
		}
		fmt.Println()
	}

	counts, err := store.ListRunCounts(ctx, run.ID)
	if err != nil {
		slog.Warn("failed to list run counts", "run", run.ID, "error", err)
		return
	}
	for _, c := range counts {
		fmt.Printf("      %s: %d\n", c.Label, c.Count)
	}
}
