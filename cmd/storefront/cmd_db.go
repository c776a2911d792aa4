package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// withDB loads config, connects, runs fn and always disconnects.
func withDB(fn func() error) error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close() //nolint:errcheck
	return fn()
}

// connectCache points the ORM cache at Redis so seeders can drop the
// snapshots the server reads. Without Redis there is nothing to drop.
func connectCache(ctx context.Context) func() {
	orm.CacheStore = cache.Store{}
	if err := cache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, cached catalog left as is", "error", err)
	}
	return func() { cache.Close() } //nolint:errcheck
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func() error {
			ran, err := migration.New(database.DB).Run()
			for _, name := range ran {
				fmt.Fprintf(cmd.OutOrStdout(), "  ✔ %s\n", name)
			}
			if err == nil && len(ran) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate.")
			}
			return err
		})
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func() error {
			undone, err := migration.New(database.DB).Rollback()
			for _, name := range undone {
				fmt.Fprintf(cmd.OutOrStdout(), "  ↩ %s\n", name)
			}
			if err == nil && len(undone) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to roll back.")
			}
			return err
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func() error {
			status, err := migration.New(database.DB).Status()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "RAN\tBATCH\tMIGRATION")
			for _, s := range status {
				ran, batch := "no", "-"
				if s.Ran {
					ran, batch = "yes", fmt.Sprint(s.Batch)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", ran, batch, s.Name)
			}
			return w.Flush()
		})
	},
}

var seedOnly []string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run the database seeders",
	Long:  "Run the database seeders in order. Every seeder is idempotent, so re-running is safe.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func() error {
			if err := storage.Connect(cmd.Context()); err != nil {
				return err
			}
			defer connectCache(cmd.Context())()
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(cmd.Context(), database.DB, cmd.OutOrStdout(), seedOnly...)
		})
	},
}

func init() {
	seedCmd.Flags().StringSliceVar(&seedOnly, "only", nil, "run only these seeders (accounts, variant_types, catalog)")
}
