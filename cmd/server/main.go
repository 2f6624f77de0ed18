package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"field-ops-service/internal/adapters/repositories"
	"field-ops-service/internal/api"
	"field-ops-service/internal/config"
	"field-ops-service/internal/platform/db"
	"field-ops-service/internal/platform/logger"
	"field-ops-service/internal/platform/obs"
	"field-ops-service/internal/services"
)

// main is the application composition root.
// It wires concrete SQL adapters behind ports and starts the HTTP server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.New("main").Errorf("server stopped: %v", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Field ops HTTP service",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfgPath)
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "optional configuration file (.yaml, .yml or .json)")
	return cmd
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := logger.Configure(cfg.App.Env, cfg.Log.Level); err != nil {
		return err
	}
	log := logger.New("main")

	if err := obs.Register(nil); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	dialect, err := db.ParseDialect(cfg.DB.Driver)
	if err != nil {
		return err
	}
	if dialect == db.SQLite {
		if err := db.EnsureSQLiteDir(cfg.DB.URL); err != nil {
			return err
		}
	}

	conn, err := db.Open(ctx, dialect, cfg.DB.URL, cfg.DB.MaxOpenConns)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.Migrate(conn, dialect); err != nil {
		return err
	}

	// Local runs get demo data when a seed file is present.
	if cfg.App.Env == "dev" {
		if _, statErr := os.Stat(cfg.Seed.Path); statErr == nil {
			stats, err := repositories.SeedFromJSON(ctx, conn, dialect, cfg.Seed.Path)
			if err != nil {
				return err
			}
			log.Infof("seeded users=%d stores=%d assignments=%d samples=%d",
				stats.Users, stats.Stores, stats.Assignments, stats.Samples)
		}
	}

	presence := repositories.NewSQLPresenceLog(conn, dialect)
	assignmentRepo := repositories.NewSQLAssignmentRepository(conn, dialect)
	workLogRepo := repositories.NewSQLWorkLogRepository(conn, dialect)
	storeRepo := repositories.NewSQLStoreRepository(conn, dialect)
	userRepo := repositories.NewSQLUserRepository(conn, dialect)

	reconciler := services.NewReconciler(presence, logger.New("reconciler"))
	router := api.NewRouter(api.Deps{
		Assignments: services.NewAssignmentService(assignmentRepo, reconciler, logger.New("assignments")),
		Dashboard: &services.DashboardService{
			WorkLogs:    workLogRepo,
			Assignments: assignmentRepo,
			Stores:      storeRepo,
		},
		Workers: &services.WorkerService{
			Users:       userRepo,
			Assignments: assignmentRepo,
			WorkLogs:    workLogRepo,
		},
		Stores: storeRepo,
		Log:    logger.New("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("server listening addr=%s db=%s", srv.Addr, dialect)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
