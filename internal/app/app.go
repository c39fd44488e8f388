// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/http"
	"github.com/guttosm/blend-service/internal/middleware"
)

// Application is the wired HTTP router plus the resources released on shutdown.
type Application struct {
	Router   *gin.Engine
	Catalog  *CatalogComponents
	Services *ServiceComponents
	closers  []func()
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
// ctx bounds background work such as the catalog file watcher.
func InitializeApp(ctx context.Context, cfg config.Config) (*Application, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Logging)

	app := &Application{}

	// Initialize database components (MongoDB repositories and services)
	dbComponents := InitializeDatabase(cfg.Database)
	app.onClose(dbComponents.Close)

	catalogComponents, err := InitializeCatalog(ctx, cfg.Catalog, dbComponents)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Catalog = catalogComponents
	app.onClose(catalogComponents.Close)

	cacheComponents := InitializeCache(ctx, cfg.Redis, cfg.Gateway)
	app.onClose(cacheComponents.Close)

	// Initialize business services
	app.Services = InitializeServices(cfg, catalogComponents, cacheComponents.Estimates)
	app.onClose(app.Services.Close)

	if dbComponents != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
		app.onClose(middleware.StopAsyncLogger)
	}

	// Initialize router components (handlers and configuration)
	routerComponents := InitializeRouter(app.Services, catalogComponents, dbComponents, cfg)
	routerComponents.Config.IdempotencyCache = cacheComponents.Idempotency
	app.Router = http.NewRouter(routerComponents.HealthHandler, routerComponents.Config)

	return app, nil
}

// Close releases resources in reverse order of acquisition.
func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *Application) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}
