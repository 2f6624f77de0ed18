package main

import (
	"github.com/spf13/cobra"

	"field-ops-service/internal/adapters/repositories"
	"field-ops-service/internal/platform/logger"
)

var seedPath string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, stores, assignments and presence samples from JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, conn, dialect, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		path := seedPath
		if path == "" {
			path = cfg.Seed.Path
		}
		stats, err := repositories.SeedFromJSON(cmd.Context(), conn, dialect, path)
		if err != nil {
			return err
		}
		logger.New("dbtool").Infof("seed complete path=%s users=%d stores=%d assignments=%d samples=%d",
			path, stats.Users, stats.Stores, stats.Assignments, stats.Samples)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPath, "file", "", "seed file (defaults to seed.path)")
}
