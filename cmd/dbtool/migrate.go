package main

import (
	"github.com/spf13/cobra"

	"field-ops-service/internal/platform/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, conn, dialect, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		logger.New("dbtool").Infof("schema ready db=%s", dialect)
		return nil
	},
}
