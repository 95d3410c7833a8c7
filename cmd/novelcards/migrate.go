package main

import (
	"context"
	"fmt"
	"io"

	"github.com/abdulachik/novelcards/internal/config"
	"github.com/abdulachik/novelcards/internal/db"
	"github.com/spf13/cobra"
)

var migrateStatusOnly bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the run ledger schema",
	Long: `Apply pending run ledger migrations and list every migration with the
time it was applied. The chapters and vocab commands migrate on their own.

Examples:
  novelcards migrate            # Apply pending migrations
  novelcards migrate --status   # Only show what is applied and pending`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatusOnly, "status", false, "Show migration status without applying anything")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
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

	before, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("read migration status: %w", err)
	}

	after := before
	if !migrateStatusOnly {
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		if after, err = store.MigrationStatus(ctx); err != nil {
			return fmt.Errorf("read migration status: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n", cfg.DatabasePath)
	printMigrations(cmd.OutOrStdout(), before, after)
	return nil
}

// printMigrations lists after, marking the versions that were pending in before.
func printMigrations(w io.Writer, before, after []db.Migration) {
	wasPending := make(map[string]bool, len(before))
	for _, m := range before {
		wasPending[m.Version] = m.Pending()
	}

	var applied, pending int
	for _, m := range after {
		switch {
		case m.Pending():
			pending++
			fmt.Fprintf(w, "  %-28s pending\n", m.Version)
		case wasPending[m.Version]:
			applied++
			fmt.Fprintf(w, "  %-28s applied now\n", m.Version)
		default:
			fmt.Fprintf(w, "  %-28s %s\n", m.Version, m.AppliedAt.Time.Format("2006-01-02 15:04:05"))
		}
	}
	fmt.Fprintf(w, "Applied %d, pending %d\n", applied, pending)
}
