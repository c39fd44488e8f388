package app

import (
	"context"
	"time"

	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/circuitbreaker"
	"github.com/guttosm/blend-service/internal/repository"
	"github.com/guttosm/blend-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                    *repository.MongoDB
	CatalogRepo           *repository.CatalogRepository
	Catalog               repository.CatalogRepositoryInterface
	LoggingService        service.LoggingService
	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker    *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	catalogCB := newCircuitBreaker(cfg, "mongodb-catalog")
	logsCB := newCircuitBreaker(cfg, "mongodb-logs")

	catalogRepo := repository.NewCatalogRepository(db)
	logsRepo := repository.NewLogsRepository(db)

	return &DatabaseComponents{
		DB:                    db,
		CatalogRepo:           catalogRepo,
		Catalog:               repository.NewCatalogRepositoryWithCircuitBreaker(catalogRepo, catalogCB),
		LoggingService:        service.NewLoggingService(repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)),
		CatalogCircuitBreaker: catalogCB,
		LogsCircuitBreaker:    logsCB,
	}
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close() {
	if d == nil || d.DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}

// newCircuitBreaker builds a breaker from cfg, keeping defaults for unset thresholds.
func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	cbCfg := circuitbreaker.DefaultConfig()
	cbCfg.Name = name
	if cfg.CircuitBreakerFailureThreshold > 0 {
		cbCfg.FailureThreshold = cfg.CircuitBreakerFailureThreshold
	}
	if cfg.CircuitBreakerSuccessThreshold > 0 {
		cbCfg.SuccessThreshold = cfg.CircuitBreakerSuccessThreshold
	}
	if cfg.CircuitBreakerTimeout > 0 {
		cbCfg.Timeout = cfg.CircuitBreakerTimeout
	}
	return circuitbreaker.New(cbCfg)
}
