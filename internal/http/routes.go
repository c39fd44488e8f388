package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/middleware"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// FormulationRoutes registers the session and evaluation endpoints.
type FormulationRoutes struct {
	handler *FormulationHandler
}

// NewFormulationRoutes creates a new FormulationRoutes instance.
func NewFormulationRoutes(handler *FormulationHandler) *FormulationRoutes {
	return &FormulationRoutes{handler: handler}
}

// RegisterRoutes registers the formulation endpoints. Session creation and
// gateway estimates honour Idempotency-Key when idempotency is enabled.
func (r *FormulationRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	var idempotent []gin.HandlerFunc
	if cfg.EnableIdempotency {
		idemCfg := middleware.DefaultIdempotencyConfig()
		if cfg.IdempotencyCache != nil {
			idemCfg.Cache = cfg.IdempotencyCache
		}
		idempotent = append(idempotent, middleware.Idempotency(idemCfg))
	}

	rg.POST("/evaluate", r.handler.EvaluateComposition)

	forms := rg.Group("/formulations")
	forms.POST("", append(idempotent, r.handler.CreateFormulation)...)
	forms.GET("/:id", r.handler.GetFormulation)
	forms.DELETE("/:id", r.handler.DeleteFormulation)
	forms.POST("/:id/reset", r.handler.ResetFormulation)
	forms.GET("/:id/evaluation", r.handler.EvaluateFormulation)
	forms.GET("/:id/history", r.handler.History)
	forms.POST("/:id/candidates", r.handler.ApplyCandidates)
	forms.POST("/:id/guide", r.handler.ApplyGuide)
	forms.POST("/:id/reference", r.handler.ReferenceLookup)
	forms.PUT("/:id/entries/:slot", r.handler.SetEntry)
	forms.DELETE("/:id/entries/:slot", r.handler.ClearEntry)
	forms.POST("/:id/entries/:slot/estimate", append(idempotent, r.handler.EstimateEntry)...)
}

// CatalogRoutes registers the catalog endpoints.
type CatalogRoutes struct {
	handler *CatalogHandler
}

// NewCatalogRoutes creates a new CatalogRoutes instance.
func NewCatalogRoutes(handler *CatalogHandler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

// RegisterRoutes registers the catalog endpoints.
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET("/materials", r.handler.ListMaterials)
	rg.GET("/materials/:name", r.handler.GetMaterial)
	rg.POST("/materials/infer", r.handler.InferMaterial)
	rg.POST("/materials/validate", r.handler.ValidateCandidates)
	rg.GET("/specifications", r.handler.ListSpecifications)
	rg.GET("/catalog", r.handler.CatalogInfo)
	rg.POST("/catalog/reload", r.handler.ReloadCatalog)
}
