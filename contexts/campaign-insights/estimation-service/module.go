package estimationservice

import (
	"log/slog"
	"time"

	httpadapter "sherpa/contexts/campaign-insights/estimation-service/adapters/http"
	"sherpa/contexts/campaign-insights/estimation-service/adapters/memory"
	"sherpa/contexts/campaign-insights/estimation-service/application"
	"sherpa/contexts/campaign-insights/estimation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository                            ports.Repository
	Idempotency                           ports.IdempotencyStore
	Outbox                                ports.OutboxWriter
	Clock                                 ports.Clock
	IDGenerator                           ports.IDGenerator
	IdempotencyTTL                        time.Duration
	DisableForecastGeneratedEventEmission bool
	Logger                                *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:                                  deps.Repository,
		Idempotency:                           deps.Idempotency,
		Outbox:                                deps.Outbox,
		Clock:                                 deps.Clock,
		IDGen:                                 deps.IDGenerator,
		IdempotencyTTL:                        deps.IdempotencyTTL,
		DisableForecastGeneratedEventEmission: deps.DisableForecastGeneratedEventEmission,
		Logger:                                deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:     store,
		Idempotency:    store,
		Outbox:         store,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 24 * time.Hour,
		Logger:         logger,
	})
	module.Store = store
	return module
}
