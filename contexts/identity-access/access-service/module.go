package access

import (
	"log/slog"
	"time"

	httpadapter "parceltrack/contexts/identity-access/access-service/adapters/http"
	"parceltrack/contexts/identity-access/access-service/adapters/memory"
	"parceltrack/contexts/identity-access/access-service/application"
	"parceltrack/contexts/identity-access/access-service/ports"
)

// Module is the access-service composition root exposed to runtime wiring.
// Service doubles as the Authorizer consumed by the tracking context.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository   ports.Repository
	RoleCache    ports.RoleCache
	Clock        ports.Clock
	RoleCacheTTL time.Duration
	Logger       *slog.Logger
}

// NewModule wires the access service against explicit ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:         deps.Repository,
		Cache:        deps.RoleCache,
		Clock:        deps.Clock,
		RoleCacheTTL: deps.RoleCacheTTL,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
