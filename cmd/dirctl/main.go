package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"developer-directory/internal/config"
	"developer-directory/internal/database"
	"developer-directory/internal/database/migration"
	dbpostgres "developer-directory/internal/database/postgres"
	"developer-directory/internal/database/seeder"
	"developer-directory/internal/pkg/logger"
	"developer-directory/internal/pkg/password"
	"developer-directory/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:           "dirctl",
	Short:         "Maintenance commands for the developer directory",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// migrateCmd applies pending schema migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var migrateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the embedded migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		migs, err := migration.Load(migrations.FS)
		if err != nil {
			return err
		}
		for _, m := range migs {
			fmt.Fprintf(cmd.OutOrStdout(), "V%d\t%s\t%s\n", m.Version, m.Name, m.Checksum[:12])
		}
		return nil
	},
}

// seedCmd loads the demo account and sample profiles
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the demo account and sample developer profiles",
	Long: `Create the demo account (` + seeder.DemoEmail + `) and, when it owns no
profiles yet, a set of sample developers. Safe to run repeatedly.`,
	RunE: runSeed,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall command timeout")
	migrateCmd.AddCommand(migrateListCmd)
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	return withDB(cmd.Context(), func(ctx context.Context, db database.DB, _ config.Config, lg *zap.Logger) error {
		applied, err := migration.Runner{Source: migrations.FS, Logger: lg}.Run(ctx, db.SQLDB())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", len(applied))
		return nil
	})
}

func runSeed(cmd *cobra.Command, _ []string) error {
	return withDB(cmd.Context(), func(ctx context.Context, db database.DB, cfg config.Config, lg *zap.Logger) error {
		hasher := password.New(cfg.Security.PasswordHasher, cfg.Security.BcryptCost)
		r := seeder.Runner{Seeders: seeder.Defaults(hasher)}
		if err := r.Run(ctx, db); err != nil {
			return err
		}
		lg.Info("seed complete", zap.String("demo_email", seeder.DemoEmail))
		return nil
	})
}

func withDB(parent context.Context, fn func(context.Context, database.DB, config.Config, *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("DB_DRIVER=%s has no schema to manage", cfg.Database.Driver)
	}

	lg, err := logger.New(cfg.App.Environment, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return fn(ctx, db, cfg, lg)
}
