package main

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"field-ops-service/internal/config"
	"field-ops-service/internal/platform/db"
	"field-ops-service/internal/platform/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "dbtool",
	Short:         "Database maintenance for the field ops service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file")
	rootCmd.AddCommand(migrateCmd, seedCmd, reconcileCmd)
}

// openDatabase loads the configuration, connects and applies migrations.
func openDatabase(ctx context.Context) (*config.Config, *sql.DB, db.Dialect, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, "", err
	}
	if err := logger.Configure(cfg.App.Env, cfg.Log.Level); err != nil {
		return nil, nil, "", err
	}

	dialect, err := db.ParseDialect(cfg.DB.Driver)
	if err != nil {
		return nil, nil, "", err
	}
	if dialect == db.SQLite {
		if err := db.EnsureSQLiteDir(cfg.DB.URL); err != nil {
			return nil, nil, "", err
		}
	}

	conn, err := db.Open(ctx, dialect, cfg.DB.URL, cfg.DB.MaxOpenConns)
	if err != nil {
		return nil, nil, "", err
	}
	if err := db.Migrate(conn, dialect); err != nil {
		_ = conn.Close()
		return nil, nil, "", err
	}
	return cfg, conn, dialect, nil
}
