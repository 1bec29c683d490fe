package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	estimationservice "sherpa/contexts/campaign-insights/estimation-service"
	postgresadapter "sherpa/contexts/campaign-insights/estimation-service/adapters/postgres"
	workerapp "sherpa/contexts/campaign-insights/estimation-service/application/workers"
	"sherpa/internal/platform/config"
	"sherpa/internal/platform/db"
	"sherpa/internal/platform/httpserver"
	"sherpa/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

var errMissingDSN = errors.New("POSTGRES_DSN is required")

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	outboxRelay   workerapp.OutboxRelay
	pruner        workerapp.SnapshotPruner
	relayEnabled  bool
	prunerEnabled bool
	pollInterval  time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	// Without a DSN the service runs on the in-memory store; forecasts are
	// then lost on restart, which is fine for local development.
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Warn("no postgres dsn configured, using in-memory store",
			"event", "bootstrap_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		module := estimationservice.NewInMemoryModule(logger)
		return &APIApp{
			server: httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort)),
			logger: logger,
		}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := postgresadapter.Migrate(pg.DB); err != nil {
		_ = pg.Close()
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := estimationservice.NewModule(estimationservice.Dependencies{
		Repository:     repo,
		Idempotency:    repo,
		Outbox:         repo,
		Clock:          postgresadapter.SystemClock{},
		IDGenerator:    postgresadapter.UUIDGenerator{},
		IdempotencyTTL: 24 * time.Hour,
		Logger:         logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
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
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errMissingDSN
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := postgresadapter.Migrate(pg.DB); err != nil {
		_ = pg.Close()
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			Topic:     "forecast.generated",
			BatchSize: 100,
			Logger:    logger,
		},
		pruner: workerapp.SnapshotPruner{
			Repo:      repo,
			Clock:     postgresadapter.SystemClock{},
			Retention: time.Duration(cfg.ForecastRetentionDays) * 24 * time.Hour,
			Logger:    logger,
		},
		relayEnabled:  cfg.EnableForecastOutboxRelay,
		prunerEnabled: cfg.EnableSnapshotPruning,
		pollInterval:  2 * time.Second,
		logger:        logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
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
		if w.prunerEnabled {
			if err := w.pruner.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
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
