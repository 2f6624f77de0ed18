package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"field-ops-service/internal/adapters/repositories"
	"field-ops-service/internal/platform/logger"
	"field-ops-service/internal/services"
)

var assignmentID int64

// reconcileCmd prints the GPS window for one assignment without saving it.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Print the reconciled vehicle timestamps of an assignment",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if assignmentID <= 0 {
			return errors.New("--assignment must be a positive id")
		}

		_, conn, dialect, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		reconciler := services.NewReconciler(repositories.NewSQLPresenceLog(conn, dialect), logger.New("reconciler"))
		svc := services.NewAssignmentService(repositories.NewSQLAssignmentRepository(conn, dialect), reconciler, logger.New("dbtool"))

		w, err := svc.VehicleTimestamps(cmd.Context(), assignmentID)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"assignment_id":         assignmentID,
			"assignment_created_at": w.AssignmentCreatedAt,
			"real_start_date":       w.RealStartDate,
			"real_completion_date":  w.RealCompletionDate,
		})
	},
}

func init() {
	reconcileCmd.Flags().Int64Var(&assignmentID, "assignment", 0, "assignment id")
}
