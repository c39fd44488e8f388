package app

import (
	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/circuitbreaker"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
	"github.com/guttosm/blend-service/internal/gateway"
	"github.com/guttosm/blend-service/internal/service"
	"github.com/guttosm/blend-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Formulations *service.FormulationServiceImpl
	Catalog      *service.CatalogServiceImpl
	// Gateway is nil when no gateway URL is configured.
	Gateway *gateway.Client
}

// InitializeServices initializes business logic services.
func InitializeServices(cfg config.Config, cat *CatalogComponents, estimates cache.Cache[model.Attributes]) *ServiceComponents {
	phMode := model.ParsePHMode(cfg.Engine.PHMode)
	calculator := engine.NewCalculator(
		engine.WithReferencePH(cfg.Engine.ReferencePH),
		engine.WithPHMode(phMode),
		engine.WithMinDiluent(cfg.Engine.MinDiluent),
		engine.WithVolumeML(cfg.Engine.VolumeML),
	)
	resolver := engine.NewResolver()

	opts := []service.FormulationOption{
		service.WithCalculator(calculator),
		service.WithResolver(resolver),
		service.WithSlots(cfg.Engine.Slots),
		service.WithSessionDefaults(service.SessionOptions{
			VolumeML:    cfg.Engine.VolumeML,
			PHMode:      phMode,
			ReferencePH: cfg.Engine.ReferencePH,
		}),
	}
	if cfg.Session.Capacity > 0 && cfg.Session.TTL > 0 {
		opts = append(opts, service.WithSessionStore(
			cache.NewSharded[*service.Session]("sessions", cfg.Session.Capacity, cfg.Session.TTL, cfg.Session.Shards)))
	}

	components := &ServiceComponents{}
	if cfg.Gateway.URL != "" {
		components.Gateway = newGatewayClient(cfg.Gateway, estimates)
		opts = append(opts, service.WithEstimator(components.Gateway))
		log.Info().Int("rate_per_minute", cfg.Gateway.RatePerMinute).Msg("Estimation gateway enabled")
	}

	components.Formulations = service.NewFormulationService(cat.Store, opts...)
	components.Catalog = service.NewCatalogService(cat.Store, cat.Loader, resolver)
	return components
}

// Close releases service resources.
func (s *ServiceComponents) Close() {
	if s == nil || s.Formulations == nil {
		return
	}
	s.Formulations.Close()
}

func newGatewayClient(cfg config.GatewayConfig, estimates cache.Cache[model.Attributes]) *gateway.Client {
	cbCfg := circuitbreaker.DefaultConfig()
	cbCfg.Name = "estimation-gateway"

	opts := []gateway.Option{
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithRateLimit(cfg.RatePerMinute, cfg.Burst),
		gateway.WithCircuitBreaker(circuitbreaker.New(cbCfg)),
	}
	if estimates != nil {
		opts = append(opts, gateway.WithCache(estimates))
	}
	return gateway.NewClient(cfg.URL, cfg.APIKey, opts...)
}
