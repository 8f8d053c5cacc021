// Command server runs the carbon footprint HTTP API.
//
// Configuration is read from the YAML file named by CONFIG_PATH (default
// ./config.yaml) and environment variables. SIGINT or SIGTERM triggers a
// graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/carbontrack-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("application failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}
