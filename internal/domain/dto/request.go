// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"strings"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrMissingBeverageType is returned when a session has no beverage type.
	ErrMissingBeverageType = &ValidationError{
		Field:   "beverage_type",
		Message: "must not be empty",
	}
	// ErrEmptyReference is returned when a reference request has neither items nor lines.
	ErrEmptyReference = &ValidationError{
		Field:   "items",
		Message: "items or lines are required",
	}
)

// CreateFormulationRequest opens a formulation session. Zero values take the
// server defaults.
//
// @Description Request to open a formulation session
type CreateFormulationRequest struct {
	// BeverageType selects the specification the session is checked against.
	BeverageType string `json:"beverage_type" binding:"required" example:"juice"`
	Flavor       string `json:"flavor,omitempty" example:"apple"`
	// VolumeML is the bottle volume used for the cost per bottle.
	VolumeML float64 `json:"volume_ml,omitempty" binding:"omitempty,gt=0" example:"500"`
	// PHMode is "ion" (default) or "linear".
	PHMode      string   `json:"ph_mode,omitempty" binding:"omitempty,oneof=ion linear" example:"ion"`
	ReferencePH float64  `json:"reference_ph,omitempty" binding:"omitempty,gt=0,lt=14" example:"3.5"`
	CostTarget  *float64 `json:"cost_target,omitempty" binding:"omitempty,gte=0" example:"1200"`
} // @name CreateFormulationRequest

// Validate rejects a blank beverage type.
func (r *CreateFormulationRequest) Validate() error {
	if strings.TrimSpace(r.BeverageType) == "" {
		return ErrMissingBeverageType
	}
	return nil
}

// SetEntryRequest sets the material and percentage of one slot. Attributes
// are only used when the name is not in the catalog.
//
// @Description Request to set one formulation entry
type SetEntryRequest struct {
	Name       string            `json:"name" example:"Apple concentrate 70Bx"`
	Percentage float64           `json:"percentage" example:"10"`
	Attributes *model.Attributes `json:"attributes,omitempty"`
} // @name SetEntryRequest

// CandidatesRequest carries externally proposed entries.
//
// @Description Candidate entries to validate or merge
type CandidatesRequest struct {
	Candidates []model.Candidate `json:"candidates" binding:"required,min=1,dive"`
} // @name CandidatesRequest

// GuideRequest selects a stored guide. Empty fields fall back to the session.
//
// @Description Request to load a stored guide
type GuideRequest struct {
	BeverageType string `json:"beverage_type,omitempty" example:"juice"`
	Flavor       string `json:"flavor,omitempty" example:"apple"`
	Variant      string `json:"variant,omitempty" binding:"omitempty,oneof=recommended case" example:"recommended"`
} // @name GuideRequest

// EstimateRequest optionally narrows the gateway estimate to a category.
//
// @Description Request to estimate the attributes of one entry
type EstimateRequest struct {
	Category string `json:"category,omitempty" example:"concentrate"`
} // @name EstimateRequest

// ReferenceItemRequest is one ingredient of a product label.
type ReferenceItemRequest struct {
	Name       string  `json:"name" binding:"required" example:"Apple juice concentrate"`
	Percentage float64 `json:"percentage" example:"12.5"`
} // @name ReferenceItemRequest

// ReferenceRequest carries a product label, either as structured items or as
// raw "name/percentage%/origin" lines.
//
// @Description Product label to rebuild a formulation from
type ReferenceRequest struct {
	Items []ReferenceItemRequest `json:"items,omitempty" binding:"omitempty,dive"`
	Lines []string               `json:"lines,omitempty" example:"Apple juice concentrate/12.5%/Chile"`
} // @name ReferenceRequest

// Validate requires at least one label ingredient.
func (r *ReferenceRequest) Validate() error {
	if len(r.Items) == 0 && len(r.Lines) == 0 {
		return ErrEmptyReference
	}
	return nil
}

// EntrySlotRequest is a SetEntryRequest addressed to a slot.
type EntrySlotRequest struct {
	Slot int `json:"slot" binding:"required,gt=0" example:"1"`
	SetEntryRequest
} // @name EntrySlotRequest

// EvaluateRequest evaluates a composition without creating a session.
//
// @Description Stateless composition evaluation request
type EvaluateRequest struct {
	Options CreateFormulationRequest `json:"options"`
	Entries []EntrySlotRequest       `json:"entries" binding:"dive"`
} // @name EvaluateRequest

// Validate checks the embedded session options.
func (r *EvaluateRequest) Validate() error {
	return r.Options.Validate()
}

// InferRequest asks for the inference-only resolution of a material name.
//
// @Description Material name to resolve by inference rules
type InferRequest struct {
	Name string `json:"name" binding:"required" example:"Mango puree 14Bx"`
} // @name InferRequest
