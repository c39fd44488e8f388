package app

import (
	"context"
	"errors"

	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/http"
)

var errCatalogEmpty = errors.New("catalog is empty")

// RouterComponents holds the health handler and the router configuration
// built from the other components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter wires readiness checks and the router configuration. Any
// of services, cat and db may be nil; missing parts are left out.
func InitializeRouter(
	services *ServiceComponents,
	cat *CatalogComponents,
	db *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	return &RouterComponents{
		HealthHandler: readinessChecks(services, cat, db),
		Config:        routerConfig(services, db, cfg),
	}
}

// readinessChecks makes /readyz fail while the catalog is empty, MongoDB
// does not answer, or a breaker is not closed.
func readinessChecks(services *ServiceComponents, cat *CatalogComponents, db *DatabaseComponents) *http.HealthHandler {
	h := http.NewHealthHandler()

	if cat != nil && cat.Store != nil {
		store := cat.Store
		h.RegisterChecker("catalog", http.CheckerFunc(func(context.Context) error {
			if store.Snapshot().Len() == 0 {
				return errCatalogEmpty
			}
			return nil
		}))
	}
	if db != nil {
		if db.DB != nil {
			h.RegisterChecker("mongodb", http.CheckerFunc(db.DB.HealthCheck))
		}
		h.RegisterCircuitBreaker("mongodb_catalog", db.CatalogCircuitBreaker)
		h.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	}
	if services != nil && services.Gateway != nil {
		h.RegisterCircuitBreaker("gateway", services.Gateway.Breaker())
	}
	return h
}

func routerConfig(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) http.RouterConfig {
	rc := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
	}
	if cfg.Auth.JWTSecret != "" {
		rc.JWTSecret = []byte(cfg.Auth.JWTSecret)
	}
	if db != nil {
		rc.LoggingService = db.LoggingService
	}
	if services != nil {
		if services.Formulations != nil {
			rc.Formulations = services.Formulations
		}
		if services.Catalog != nil {
			rc.Catalog = services.Catalog
		}
	}
	return rc
}
