package main

import (
	"context"
	"log/slog"
	"os"

	"parceltrack/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + modules).
// 3) Start HTTP server.
func main() {
	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("api bootstrap failed", "error", err.Error())
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(context.Background()); err != nil {
		slog.Error("api run failed", "error", err.Error())
		os.Exit(1)
	}
}
