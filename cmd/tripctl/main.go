package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/tripshare/tripshare/internal/config"
	"github.com/tripshare/tripshare/internal/database"
)

type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Force(version int) error
	Version() (uint, bool, error)
	Close() error
}

// openFunc opens a migrator over the migrations directory.
type openFunc func(migrationsPath string) (migrator, error)

func main() {
	if err := newRootCommand(openFromConfig, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openFromConfig(migrationsPath string) (migrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	m, err := database.NewMigrator(cfg.Database.DSN(), migrationsPath)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newRootCommand(open openFunc, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tripctl",
		Short:         "Operator tooling for the tripshare backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(newMigrateCommand(open))
	return cmd
}

func newMigrateCommand(open openFunc) *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Directory containing migration files")

	// withMigrator opens the migrator, runs fn, reports the resulting version.
	withMigrator := func(cmd *cobra.Command, fn func(m migrator) error) error {
		m, err := open(migrationsPath)
		if err != nil {
			return err
		}
		defer func() { _ = m.Close() }()

		if err := fn(m); err != nil {
			return err
		}
		return printVersion(cmd.OutOrStdout(), m)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(m migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(m migrator) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply N migrations (negative rolls back)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil || n == 0 {
					return fmt.Errorf("steps must be a non-zero integer, got %q", args[0])
				}
				return withMigrator(cmd, func(m migrator) error { return m.Steps(n) })
			},
		},
		&cobra.Command{
			Use:   "force V",
			Short: "Set the schema version without running migrations and clear the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("version must be an integer, got %q", args[0])
				}
				return withMigrator(cmd, func(m migrator) error { return m.Force(v) })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(migrator) error { return nil })
			},
		},
	)
	return cmd
}

func printVersion(out io.Writer, m migrator) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, err = fmt.Fprintln(out, "no migrations applied")
		return err
	}
	if err != nil {
		return fmt.Errorf("reading version: %w", err)
	}
	if dirty {
		_, err = fmt.Fprintf(out, "version %d (dirty)\n", version)
		return err
	}
	_, err = fmt.Fprintf(out, "version %d\n", version)
	return err
}
