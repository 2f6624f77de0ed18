package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"field-ops-service/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.New("dbtool").Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
