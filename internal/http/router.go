package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/metrics"
	"github.com/guttosm/blend-service/internal/middleware"
	"github.com/guttosm/blend-service/internal/service"
	"github.com/guttosm/blend-service/internal/service/cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// APIPrefix is the base path of the versioned API.
const APIPrefix = "/api/v1"

// RouterConfig wires services and middleware settings into the router.
// Nil services leave their routes out.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration

	EnableAuth bool
	// JWTSecret takes precedence over APIKeys.
	JWTSecret []byte
	APIKeys   map[string]bool

	EnableIdempotency bool
	// IdempotencyCache stores replayable responses. Nil means a private
	// in-process cache.
	IdempotencyCache cache.Cache[*middleware.StoredResponse]

	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string

	LoggingService service.LoggingService
	Formulations   service.FormulationService
	Catalog        service.CatalogService
}

// DefaultRouterConfig returns an unauthenticated configuration allowing 100
// requests per minute per client.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultRequestTimeout,
	}
}

// NewRouter builds the engine: infrastructure routes at the root and the
// formulation and catalog API under APIPrefix.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.RequestLogger(cfg.LoggingService),
		metrics.PrometheusMiddleware(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Compression(),
		middleware.ErrorHandler(),
	)

	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerSwagger(router, cfg.SwaggerUser, cfg.SwaggerPass)

	api := router.Group(APIPrefix, apiMiddleware(&cfg)...)
	for _, group := range routeGroups(&cfg) {
		group.RegisterRoutes(api, &cfg)
	}
	return router
}

// registerSwagger serves the API docs, behind basic auth when both
// credentials are set.
func registerSwagger(router *gin.Engine, user, pass string) {
	var guard []gin.HandlerFunc
	if user != "" && pass != "" {
		guard = append(guard, gin.BasicAuth(gin.Accounts{user: pass}))
	}
	router.GET("/swagger/*any", append(guard, ginSwagger.WrapHandler(swaggerFiles.Handler))...)
}

// apiMiddleware orders the API chain: deadline, authentication, then rate
// limiting so limits apply per subject.
func apiMiddleware(cfg *RouterConfig) []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if cfg.RequestTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.EnableAuth {
		if len(cfg.JWTSecret) > 0 {
			chain = append(chain, middleware.JWTAuth(cfg.JWTSecret))
		} else if len(cfg.APIKeys) > 0 {
			chain = append(chain, middleware.APIKeyAuth(cfg.APIKeys))
		}
	}
	if cfg.RateLimit > 0 {
		chain = append(chain, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).RateLimit())
	}
	return chain
}

func routeGroups(cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup
	if cfg.Formulations != nil {
		handler := NewFormulationHandler(cfg.Formulations, WithAuditLogging(cfg.LoggingService))
		groups = append(groups, NewFormulationRoutes(handler))
	}
	if cfg.Catalog != nil {
		groups = append(groups, NewCatalogRoutes(NewCatalogHandler(cfg.Catalog, cfg.LoggingService)))
	}
	return groups
}
