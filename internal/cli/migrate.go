package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aryan-gupta7/track-it-v1/internal/adapters/turso"
	"github.com/aryan-gupta7/track-it-v1/internal/infrastructure/logging"
	"github.com/aryan-gupta7/track-it-v1/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema.

Every command that uses the database migrates it up automatically; this
command exists for inspection and rollback.

Examples:
  trackit migrate up        # Run all pending migrations
  trackit migrate status    # Show the current version
  trackit migrate down 1    # Roll back to version 1`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run all pending migrations",
	RunE:  runMigrateUp,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the schema version and pending migrations",
	RunE:  runMigrateStatus,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down <version>",
	Short: "Roll back to a version (0 removes everything)",
	Args:  cobra.ExactArgs(1),
	RunE:  runMigrateDown,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd, migrateDownCmd)
}

// openMigrator connects without applying migrations.
func openMigrator(cmd *cobra.Command) (*migrate.Migrator, *turso.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	db, err := turso.NewDB(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return migrate.New(db.DB, logger), db, nil
}

func syncMigrations(cmd *cobra.Command, db *turso.DB) {
	if err := db.Sync(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to sync migrations to remote: %v\n", err)
	}
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	m, db, err := openMigrator(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := m.Up(cmd.Context())
	if err != nil {
		return err
	}
	syncMigrations(cmd, db)

	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run")
		return nil
	}
	st, err := m.Status(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrated to version %d (%d migrations applied)\n", st.Current, n)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	m, db, err := openMigrator(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := m.Status(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Current version: %d\n", st.Current)
	fmt.Fprintf(w, "Latest version:  %d\n", st.Latest)
	if st.Dirty {
		fmt.Fprintln(w, "State:           dirty (manual intervention required)")
	}
	if len(st.Pending) == 0 {
		fmt.Fprintln(w, "Pending:         none")
		return nil
	}
	fmt.Fprintln(w, "Pending:")
	for _, mig := range st.Pending {
		fmt.Fprintf(w, "  %03d_%s\n", mig.Version, mig.Name)
	}
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	target, err := strconv.Atoi(args[0])
	if err != nil || target < 0 {
		return fmt.Errorf("invalid version number: %s", args[0])
	}

	m, db, err := openMigrator(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := m.DownTo(cmd.Context(), target); err != nil {
		return err
	}
	syncMigrations(cmd, db)
	fmt.Fprintf(cmd.OutOrStdout(), "Migrated to version %d\n", target)
	return nil
}
