package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	access "parceltrack/contexts/identity-access/access-service"
	accessmemory "parceltrack/contexts/identity-access/access-service/adapters/memory"
	accesspostgres "parceltrack/contexts/identity-access/access-service/adapters/postgres"
	redisadapter "parceltrack/contexts/identity-access/access-service/adapters/redis"
	accessports "parceltrack/contexts/identity-access/access-service/ports"
	tracking "parceltrack/contexts/shipment-tracking/tracking-service"
	trackingmemory "parceltrack/contexts/shipment-tracking/tracking-service/adapters/memory"
	trackingpostgres "parceltrack/contexts/shipment-tracking/tracking-service/adapters/postgres"
	trackingports "parceltrack/contexts/shipment-tracking/tracking-service/ports"
	workerapp "parceltrack/contexts/shipment-tracking/tracking-service/application/workers"
	"parceltrack/internal/platform/config"
	"parceltrack/internal/platform/db"
	"parceltrack/internal/platform/httpserver"
	"parceltrack/internal/platform/identity"
	"parceltrack/internal/platform/messaging"

	"github.com/redis/go-redis/v9"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workerapp.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	pg, accessRepo, trackingRepo, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	var roleCache accessports.RoleCache
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		roleCache = redisadapter.NewRoleCache(client)
	}

	accessModule := access.NewModule(access.Dependencies{
		Repository:   accessRepo,
		RoleCache:    roleCache,
		Clock:        accesspostgres.SystemClock{},
		RoleCacheTTL: cfg.RoleCacheTTL,
		Logger:       logger,
	})
	trackingModule := tracking.NewModule(tracking.Dependencies{
		Repository:  trackingRepo,
		Authorizer:  accessModule.Service,
		Clock:       trackingpostgres.SystemClock{},
		IDGenerator: trackingpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(
		trackingModule,
		accessModule,
		identity.NewResolver(cfg.JWTSecret),
		cfg.BootstrapToken,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	pg, _, trackingRepo, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	outboxRepo, ok := trackingRepo.(trackingports.OutboxRepository)
	if !ok {
		_ = pg.Close()
		return nil, errors.New("tracking repository does not expose an outbox")
	}

	return &WorkerApp{
		postgres: pg,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    outboxRepo,
			Publisher: bus,
			Clock:     trackingpostgres.SystemClock{},
			Topic:     "shipment.events",
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

// buildRepositories picks postgres-backed adapters when a DSN is configured
// and falls back to in-memory stores for local development.
func buildRepositories(cfg config.Config, logger *slog.Logger) (*db.Postgres, accessports.Repository, trackingports.Repository, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Info("no postgres dsn configured, using in-memory stores",
			"event", "bootstrap_memory_stores",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return nil, accessmemory.NewStore(), trackingmemory.NewStore(), nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, nil, err
	}

	accessRepo := accesspostgres.NewRepository(pg.DB, logger)
	if err := accessRepo.AutoMigrate(); err != nil {
		_ = pg.Close()
		return nil, nil, nil, err
	}
	trackingRepo := trackingpostgres.NewRepository(pg.DB, logger)
	if err := trackingRepo.AutoMigrate(); err != nil {
		_ = pg.Close()
		return nil, nil, nil, err
	}
	return pg, accessRepo, trackingRepo, nil
}

func (a *APIApp) Run(_ context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
