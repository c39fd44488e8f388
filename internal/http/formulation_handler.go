package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/domain/dto"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/i18n"
	"github.com/guttosm/blend-service/internal/middleware"
	"github.com/guttosm/blend-service/internal/service"
)

// FormulationHandler provides HTTP handlers for formulation sessions and
// stateless evaluation.
type FormulationHandler struct {
	formulations   service.FormulationService
	loggingService service.LoggingService
}

// FormulationHandlerOption configures a FormulationHandler.
type FormulationHandlerOption func(*FormulationHandler)

// WithAuditLogging records session mutations through the logging service.
func WithAuditLogging(ls service.LoggingService) FormulationHandlerOption {
	return func(h *FormulationHandler) {
		h.loggingService = ls
	}
}

// NewFormulationHandler creates a new FormulationHandler instance.
func NewFormulationHandler(formulations service.FormulationService, opts ...FormulationHandlerOption) *FormulationHandler {
	registerJSONFieldNames()
	h := &FormulationHandler{formulations: formulations}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateFormulation handles POST /api/v1/formulations.
//
// @Summary      Open a formulation session
// @Description  Creates a session with an empty formulation whose last slot holds the diluent. Options left at zero take the server defaults (500 ml, ion pH model, reference pH 3.5). Supports idempotency via Idempotency-Key header.
// @Tags         Formulations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CreateFormulationRequest true "Session options"
// @Success      201 {object} dto.SuccessResponse{data=service.SessionState} "Session created"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid options"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Security     BearerAuth
// @Router       /api/v1/formulations [post]
func (h *FormulationHandler) CreateFormulation(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.CreateFormulationRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	state, err := h.formulations.CreateSession(c.Request.Context(), sessionOptions(*req))
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.AuditLog(h.loggingService, c, "session_created", "Formulation session created", map[string]interface{}{
		"session_id":    state.ID,
		"beverage_type": state.Options.BeverageType,
		"flavor":        state.Options.Flavor,
	})
	NewResponseBuilder(c).SuccessCreated(state)
}

// GetFormulation handles GET /api/v1/formulations/:id.
//
// @Summary      Get a formulation session
// @Description  Returns the session with a fresh evaluation against the current catalog.
// @Tags         Formulations
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.SuccessResponse{data=service.SessionState}
// @Failure      404 {object} dto.ErrorResponse "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id} [get]
func (h *FormulationHandler) GetFormulation(c *gin.Context) {
	state, err := h.formulations.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(state)
}

// DeleteFormulation handles DELETE /api/v1/formulations/:id.
//
// @Summary      Discard a formulation session
// @Tags         Formulations
// @Param        id path string true "Session ID"
// @Success      204 "Session discarded"
// @Failure      404 {object} dto.ErrorResponse "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id} [delete]
func (h *FormulationHandler) DeleteFormulation(c *gin.Context) {
	if err := h.formulations.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	middleware.AuditLog(h.loggingService, c, "session_deleted", "Formulation session discarded", nil)
	c.Status(http.StatusNoContent)
}

// SetEntry handles PUT /api/v1/formulations/:id/entries/:slot.
//
// @Summary      Set a formulation entry
// @Description  Sets the material and percentage of a slot. The name is resolved against the catalog, then the supplied attributes, then the name-pattern inference rules. An unresolved material is kept and reported as an issue.
// @Tags         Formulations
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        slot path int true "Material slot (1-based)"
// @Param        request body dto.SetEntryRequest true "Entry"
// @Success      200 {object} dto.SuccessResponse{data=service.SessionState}
// @Failure      400 {object} dto.ErrorResponse "Invalid slot or percentage"
// @Failure      404 {object} dto.ErrorResponse "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id}/entries/{slot} [put]
func (h *FormulationHandler) SetEntry(c *gin.Context) {
	slot, ok := slotParam(c)
	if !ok {
		return
	}
	req, err := BuildRequest[dto.SetEntryRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	state, err := h.formulations.SetEntry(c.Request.Context(), c.Param("id"), slot, service.EntryInput{
		Name:       req.Name,
		Percentage: req.Percentage,
		Attributes: req.Attributes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.AuditLog(h.loggingService, c, "entry_set", "Formulation entry set", map[string]interface{}{
		"slot":       slot,
		"material":   req.Name,
		"percentage": req.Percentage,
	})
	NewResponseBuilder(c).SuccessOK(state)
}

// ClearEntry handles DELETE /api/v1/formulations/:id/entries/:slot.
//
// @Summary      Clear a formulation entry
// @Tags         Formulations
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        slot path int true "Material slot (1-based)"
// @Success      200 {object} dto.SuccessResponse{data=service.SessionState}
// @Failure      400 {object} dto.ErrorResponse "Invalid slot"
// @Failure      404 {object} dto.ErrorResponse "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id}/entries/{slot} [delete]
func (h *FormulationHandler) ClearEntry(c *gin.Context) {
	slot, ok := slotParam(c)
	if !ok {
		return
	}
	state, err := h.formulations.ClearEntry(c.Request.Context(), c.Param("id"), slot)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.AuditLog(h.loggingService, c, "entry_cleared", "Formulation entry cleared", map[string]interface{}{"slot": slot})
	NewResponseBuilder(c).SuccessOK(state)
}

// ResetFormulation handles POST /api/v1/formulations/:id/reset.
//
// @Summary      Reset a formulation
// @Description  Clears every material slot. The diluent slot is kept.
// @Tags         Formulations
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.SuccessResponse{data=service.SessionState}
// @Failure      404 {object} dto.ErrorResponse "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id}/reset [post]
func (h *FormulationHandler) ResetFormulation(c *gin.Context) {
	state, err := h.formulations.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.AuditLog(h.loggingService, c, "session_reset", "Formulation reset", nil)
	NewResponseBuilder(c).SuccessOK(state)
}

// EvaluateFormulation handles GET /api/v1/formulations/:id/evaluation.
//
// @Summary      Evaluate a formulation
// @Description  Returns the aggregate attributes, the compliance verdict per attribute and any attributable issues.
// @Tags         Formulations
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.SuccessResponse{data=engine.Evaluation}
// @Failure      404 {object} dto.ErrorResponse "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id}/evaluation [get]
func (h *FormulationHandler) EvaluateFormulation(c *gin.Context) {
	ev, err := h.formulations.Evaluate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(ev)
}

// ApplyCandidates handles POST /api/v1/formulations/:id/candidates.
//
// @Summary      Merge candidate entries
// @Description  Validates externally proposed entries against the catalog. Exact matches are merged into the session; the rest are returned as warnings with suggestions.
// @Tags         Formulations
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body dto.CandidatesRequest true "Candidates"
// @Success      200 {object} dto.SuccessResponse{data=service.ApplyResult}
// @Failure      400 {object} dto.ErrorResponse "Invalid candidates"
// @Failure      404 {object} dto.ErrorResponse "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id}/candidates [post]
func (h *FormulationHandler) ApplyCandidates(c *gin.Context) {
	req, err := BuildRequest[dto.CandidatesRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.formulations.ApplyCandidates(c.Request.Context(), c.Param("id"), req.Candidates)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.AuditLog(h.loggingService, c, "candidates_applied", "Candidate entries merged", map[string]interface{}{
		"accepted": len(result.Report.Accepted),
		"warnings": len(result.Report.Warnings),
	})
	NewResponseBuilder(c).SuccessOK(result)
}

// ApplyGuide handles POST /api/v1/formulations/:id/guide.
//
// @Summary      Load a stored guide
// @Description  Loads the recommended or case column of a stored guide. Empty beverage type or flavor fall back to the session's own. The body may be omitted.
// @Tags         Formulations
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body dto.GuideRequest false "Guide selection"
// @Success      200 {object} dto.SuccessResponse{data=service.ApplyResult}
// @Failure      404 {object} dto.ErrorResponse "Session or guide not found"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id}/guide [post]
func (h *FormulationHandler) ApplyGuide(c *gin.Context) {
	var req dto.GuideRequest
	if err := NewRequestBuilder(c).BindOptional(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.formulations.ApplyGuide(c.Request.Context(), c.Param("id"), service.GuideRequest{
		BeverageType: req.BeverageType,
		Flavor:       req.Flavor,
		Variant:      service.GuideVariant(req.Variant),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.AuditLog(h.loggingService, c, "guide_applied", "Stored guide loaded", map[string]interface{}{
		"beverage_type": req.BeverageType,
		"flavor":        req.Flavor,
		"variant":       req.Variant,
		"accepted":      len(result.Report.Accepted),
	})
	NewResponseBuilder(c).SuccessOK(result)
}

// EstimateEntry handles POST /api/v1/formulations/:id/entries/:slot/estimate.
//
// @Summary      Estimate entry attributes
// @Description  Asks the estimation gateway for the attributes of the material in a slot. A rejected or failed estimate leaves the entry unchanged. Supports idempotency via Idempotency-Key header.
// @Tags         Formulations
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        slot path int true "Material slot (1-based)"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.EstimateRequest false "Category hint"
// @Success      200 {object} dto.SuccessResponse{data=service.EstimateResult}
// @Failure      400 {object} dto.ErrorResponse "Invalid slot or empty entry"
// @Failure      404 {object} dto.ErrorResponse "Session not found"
// @Failure      409 {object} dto.ErrorResponse "Entry changed while the estimate was pending"
// @Failure      422 {object} dto.ErrorResponse "Estimate rejected"
// @Failure      502 {object} dto.ErrorResponse "Estimation gateway failure"
// @Failure      503 {object} dto.ErrorResponse "Estimation gateway unavailable"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id}/entries/{slot}/estimate [post]
func (h *FormulationHandler) EstimateEntry(c *gin.Context) {
	slot, ok := slotParam(c)
	if !ok {
		return
	}
	var req dto.EstimateRequest
	if err := NewRequestBuilder(c).BindOptional(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.formulations.EstimateEntry(c.Request.Context(), c.Param("id"), slot, model.ParseCategory(req.Category))
	if err != nil {
		middleware.AuditLogError(h.loggingService, c, "entry_estimate", "Estimate failed", err, map[string]interface{}{"slot": slot})
		respondError(c, err)
		return
	}
	middleware.AuditLog(h.loggingService, c, "entry_estimate", "Entry attributes estimated", map[string]interface{}{
		"slot":   slot,
		"source": string(result.Source),
	})
	NewResponseBuilder(c).SuccessOK(result)
}

// ReferenceLookup handles POST /api/v1/formulations/:id/reference.
//
// @Summary      Rebuild a formulation from a product label
// @Description  Replaces the session's entries with the label ingredients in label order. Names are matched exactly, then by leading characters; unmatched names become custom entries resolved by inference.
// @Tags         Formulations
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body dto.ReferenceRequest true "Label ingredients"
// @Success      200 {object} dto.SuccessResponse{data=service.ReferenceResult}
// @Failure      400 {object} dto.ErrorResponse "Invalid label"
// @Failure      404 {object} dto.ErrorResponse "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id}/reference [post]
func (h *FormulationHandler) ReferenceLookup(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.ReferenceRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	items := make([]service.ReferenceItem, 0, len(req.Items)+len(req.Lines))
	for _, it := range req.Items {
		items = append(items, service.ReferenceItem{Name: it.Name, Percentage: it.Percentage})
	}
	for _, line := range req.Lines {
		if it, ok := service.ParseLabelLine(line); ok {
			items = append(items, it)
		}
	}

	result, err := h.formulations.ReferenceLookup(c.Request.Context(), c.Param("id"), items)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.AuditLog(h.loggingService, c, "reference_loaded", "Reference formulation loaded", map[string]interface{}{
		"ingredients": len(result.Matches),
	})
	NewResponseBuilder(c).SuccessOK(result)
}

// EvaluateComposition handles POST /api/v1/evaluate.
//
// @Summary      Evaluate a composition
// @Description  Evaluates a one-off composition without creating a session.
// @Tags         Formulations
// @Accept       json
// @Produce      json
// @Param        request body dto.EvaluateRequest true "Composition"
// @Success      200 {object} dto.SuccessResponse{data=service.CompositionResult}
// @Failure      400 {object} dto.ErrorResponse "Invalid composition"
// @Security     BearerAuth
// @Router       /api/v1/evaluate [post]
func (h *FormulationHandler) EvaluateComposition(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.EvaluateRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	entries := make([]service.SlotInput, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, service.SlotInput{
			Slot: e.Slot,
			EntryInput: service.EntryInput{
				Name:       e.Name,
				Percentage: e.Percentage,
				Attributes: e.Attributes,
			},
		})
	}

	result, err := h.formulations.EvaluateComposition(c.Request.Context(), service.CompositionRequest{
		Options: sessionOptions(req.Options),
		Entries: entries,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(result)
}

// History handles GET /api/v1/formulations/:id/history.
//
// @Summary      Session audit history
// @Description  Lists the actions recorded for a session, newest first. History outlives the session. Requires a database.
// @Tags         Formulations
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        limit query int false "Maximum entries" default(50)
// @Param        action query string false "Only entries of this action type"
// @Param        include query string false "Set to requests to also list plain request logs"
// @Success      200 {object} dto.SuccessResponse{data=[]model.LogEntry}
// @Failure      503 {object} dto.ErrorResponse "Audit log unavailable"
// @Security     BearerAuth
// @Router       /api/v1/formulations/{id}/history [get]
func (h *FormulationHandler) History(c *gin.Context) {
	if h.loggingService == nil {
		NewResponseBuilder(c).Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, nil)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 500 {
		limit = 50
	}

	entries, err := h.loggingService.QueryLogs(c.Request.Context(), model.LogQueryOptions{
		SessionID:  c.Param("id"),
		ActionType: c.Query("action"),
		AuditOnly:  c.Query("include") != "requests",
		Limit:      limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(entries)
}

// slotParam parses the :slot route parameter, answering 400 when it is not a number.
func slotParam(c *gin.Context) (int, bool) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		NewResponseBuilder(c).ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidSlot, err,
			map[string]string{"slot": c.Param("slot")})
		return 0, false
	}
	return slot, true
}

func sessionOptions(req dto.CreateFormulationRequest) service.SessionOptions {
	return service.SessionOptions{
		BeverageType: req.BeverageType,
		Flavor:       req.Flavor,
		VolumeML:     req.VolumeML,
		PHMode:       model.PHMode(req.PHMode),
		ReferencePH:  req.ReferencePH,
		CostTarget:   req.CostTarget,
	}
}
