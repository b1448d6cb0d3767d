// cmd/leagus/database.go
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/codr1/leagus/internal/config"
	"github.com/codr1/leagus/internal/db"
	"github.com/codr1/leagus/internal/store"
)

func (c *cli) newDatabaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "database",
		Short: "Commands for managing the database",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "bootstrap",
			Short: "Create the schema or indexes the application relies on",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.run(cmd, func(ctx context.Context, s store.Store) error {
					// open already bootstrapped the store
					cmd.Printf("Bootstrapped %s database\n", c.cfg.Database.Driver)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List leagues with their ids",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.run(cmd, func(ctx context.Context, s store.Store) error {
					return listLeagues(ctx, cmd, s)
				})
			},
		},
		c.newMigrateCmd(),
	)
	return cmd
}

func (c *cli) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate up|down|version",
		Short:     "Run SQLite schema migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Database.Driver != config.DriverSQLite {
				return fmt.Errorf("migrations apply to the sqlite driver only, not %s", c.cfg.Database.Driver)
			}

			sqlDB, err := db.Open(c.cfg.Database.Filename)
			if err != nil {
				return err
			}
			m, err := db.NewMigrate(sqlDB)
			if err != nil {
				sqlDB.Close()
				return err
			}
			defer m.Close()

			switch args[0] {
			case "up":
				if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("migration up failed: %w", err)
				}
				cmd.Println("Migrations applied")
			case "down":
				if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("migration down failed: %w", err)
				}
				cmd.Println("Migrations reverted")
			case "version":
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					cmd.Println("Version: none")
					return nil
				}
				if err != nil {
					return fmt.Errorf("get version failed: %w", err)
				}
				cmd.Printf("Version: %d, Dirty: %v\n", version, dirty)
			default:
				return fmt.Errorf("unknown migrate command: %s", args[0])
			}
			return nil
		},
	}
	return cmd
}
