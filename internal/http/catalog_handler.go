package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/circuitbreaker"
	"github.com/guttosm/blend-service/internal/domain/dto"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/i18n"
	"github.com/guttosm/blend-service/internal/middleware"
	"github.com/guttosm/blend-service/internal/service"
)

// CatalogHandler serves the material catalog and its specifications.
type CatalogHandler struct {
	catalog        service.CatalogService
	loggingService service.LoggingService
}

// NewCatalogHandler creates a new CatalogHandler. loggingService may be nil.
func NewCatalogHandler(catalog service.CatalogService, loggingService service.LoggingService) *CatalogHandler {
	registerJSONFieldNames()
	return &CatalogHandler{catalog: catalog, loggingService: loggingService}
}

// ListMaterials handles GET /api/v1/materials.
//
// @Summary      List catalog materials
// @Description  Lists catalog materials sorted by name, optionally narrowed by category and a case-insensitive name fragment.
// @Tags         Catalog
// @Produce      json
// @Param        category query string false "Material category" Enums(fruit, concentrate, puree, sugar, syrup, sweetener, high_intensity_sweetener, acidulant, stabilizer, flavor, vitamin, other)
// @Param        q query string false "Name fragment"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Material}
// @Security     BearerAuth
// @Router       /api/v1/materials [get]
func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	materials := h.catalog.Materials(c.Request.Context(), service.MaterialFilter{
		Category: model.ParseCategory(c.Query("category")),
		Query:    c.Query("q"),
	})
	NewResponseBuilder(c).SuccessOK(materials)
}

// GetMaterial handles GET /api/v1/materials/:name.
//
// @Summary      Get a catalog material
// @Description  Looks up a material by exact (case-insensitive) name. A miss returns up to five "did you mean" suggestions in the error details.
// @Tags         Catalog
// @Produce      json
// @Param        name path string true "Material name"
// @Success      200 {object} dto.SuccessResponse{data=model.Material}
// @Failure      404 {object} dto.ErrorResponse "Material not found"
// @Security     BearerAuth
// @Router       /api/v1/materials/{name} [get]
func (h *CatalogHandler) GetMaterial(c *gin.Context) {
	m, err := h.catalog.Material(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(m)
}

// InferMaterial handles POST /api/v1/materials/infer.
//
// @Summary      Infer material attributes
// @Description  Resolves a name with the name-pattern inference rules only. The catalog is not consulted.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.InferRequest true "Material name"
// @Success      200 {object} dto.SuccessResponse{data=engine.Inference}
// @Failure      400 {object} dto.ErrorResponse "Missing name"
// @Failure      422 {object} dto.ErrorResponse "No inference rule matched"
// @Security     BearerAuth
// @Router       /api/v1/materials/infer [post]
func (h *CatalogHandler) InferMaterial(c *gin.Context) {
	req, err := BuildRequest[dto.InferRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	inf, err := h.catalog.Infer(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(inf)
}

// ValidateCandidates handles POST /api/v1/materials/validate.
//
// @Summary      Validate candidate entries
// @Description  Checks proposed entries against the catalog without touching any session.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.CandidatesRequest true "Candidates"
// @Success      200 {object} dto.SuccessResponse{data=model.ValidationReport}
// @Failure      400 {object} dto.ErrorResponse "Invalid candidates"
// @Security     BearerAuth
// @Router       /api/v1/materials/validate [post]
func (h *CatalogHandler) ValidateCandidates(c *gin.Context) {
	req, err := BuildRequest[dto.CandidatesRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(h.catalog.Validate(c.Request.Context(), req.Candidates))
}

// ListSpecifications handles GET /api/v1/specifications.
//
// @Summary      List beverage specifications
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.Specification}
// @Security     BearerAuth
// @Router       /api/v1/specifications [get]
func (h *CatalogHandler) ListSpecifications(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.catalog.Specifications(c.Request.Context()))
}

// CatalogInfo handles GET /api/v1/catalog.
//
// @Summary      Catalog snapshot summary
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=service.CatalogInfo}
// @Security     BearerAuth
// @Router       /api/v1/catalog [get]
func (h *CatalogHandler) CatalogInfo(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.catalog.Info(c.Request.Context()))
}

// ReloadCatalog handles POST /api/v1/catalog/reload.
//
// @Summary      Reload the catalog
// @Description  Re-reads the catalog from its source and swaps it in atomically. A failed reload keeps the current snapshot. Sessions pick up the new catalog on their next edit.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=service.CatalogInfo}
// @Failure      409 {object} dto.ErrorResponse "Catalog has no reload source"
// @Failure      500 {object} dto.ErrorResponse "Catalog source could not be read"
// @Failure      503 {object} dto.ErrorResponse "Catalog source unavailable"
// @Security     BearerAuth
// @Router       /api/v1/catalog/reload [post]
func (h *CatalogHandler) ReloadCatalog(c *gin.Context) {
	info, err := h.catalog.Reload(c.Request.Context())
	if err != nil {
		middleware.AuditLogError(h.loggingService, c, "catalog_reload", "Catalog reload failed", err, nil)
		if errors.Is(err, service.ErrReloadUnavailable) || errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			respondError(c, err)
			return
		}
		NewResponseBuilder(c).Error(http.StatusInternalServerError, i18n.ErrKeyCatalogReloadFailed, err)
		return
	}

	middleware.AuditLog(h.loggingService, c, "catalog_reload", "Catalog reloaded", map[string]interface{}{
		"source":    info.Source,
		"materials": info.Materials,
	})
	NewResponseBuilder(c).SuccessOK(info)
}
