package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"parceltrack/internal/app/bootstrap"
)

// Worker process entrypoint: drains the shipment outbox to the event bus
// until interrupted.
func main() {
	app, err := bootstrap.BuildWorker()
	if err != nil {
		slog.Error("worker bootstrap failed", "error", err.Error())
		os.Exit(1)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("worker run failed", "error", err.Error())
		os.Exit(1)
	}
}
