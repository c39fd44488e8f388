package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// Engine error taxonomy. Every occurrence is wrapped in an *EntryError so the
// offending slot, attribute and bound can be reported.
var (
	ErrInvalidPercentage  = errors.New("percentage outside [0, 100]")
	ErrInvalidAttribute   = errors.New("attribute outside its physical range")
	ErrOverComposed       = errors.New("material percentages exceed 100")
	ErrUnresolvedMaterial = errors.New("material matches neither catalog nor inference rules")
	ErrUndefinedRatio     = errors.New("sugar:acid ratio undefined for zero acidity")
	ErrGatewayFailure     = errors.New("estimation gateway failure")
)

// EntryError attributes an engine error to a slot and attribute.
// Slot 0 means the error concerns the whole formulation.
type EntryError struct {
	Slot      int             `json:"slot"`
	Name      string          `json:"name,omitempty"`
	Attribute model.Attribute `json:"attribute,omitempty"`
	Bound     *float64        `json:"bound,omitempty"`
	Err       error           `json:"-"`
}

func (e *EntryError) Error() string {
	var b strings.Builder
	if e.Slot > 0 {
		fmt.Fprintf(&b, "slot %d", e.Slot)
	} else {
		b.WriteString("formulation")
	}
	if e.Name != "" {
		fmt.Fprintf(&b, " (%s)", e.Name)
	}
	if e.Attribute != "" {
		fmt.Fprintf(&b, " %s", e.Attribute)
	}
	if e.Bound != nil {
		fmt.Fprintf(&b, " bound %g", *e.Bound)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Issue is the serializable form of an EntryError.
//
// @Description Attributable engine issue
type Issue struct {
	Code      string          `json:"code" example:"UNRESOLVED_MATERIAL"`
	Slot      int             `json:"slot" example:"3"`
	Name      string          `json:"name,omitempty" example:"dragonfruit syrup"`
	Attribute model.Attribute `json:"attribute,omitempty"`
	Bound     *float64        `json:"bound,omitempty"`
	Message   string          `json:"message"`
}

// Code returns the stable code of a taxonomy error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPercentage):
		return "INVALID_PERCENTAGE"
	case errors.Is(err, ErrInvalidAttribute):
		return "INVALID_ATTRIBUTE"
	case errors.Is(err, ErrOverComposed):
		return "OVER_COMPOSED"
	case errors.Is(err, ErrUnresolvedMaterial):
		return "UNRESOLVED_MATERIAL"
	case errors.Is(err, ErrUndefinedRatio):
		return "UNDEFINED_RATIO"
	case errors.Is(err, ErrGatewayFailure):
		return "GATEWAY_FAILURE"
	default:
		return "INTERNAL"
	}
}

// Issues converts entry errors into their serializable form.
func Issues(errs []*EntryError) []Issue {
	out := make([]Issue, 0, len(errs))
	for _, e := range errs {
		out = append(out, Issue{
			Code:      Code(e),
			Slot:      e.Slot,
			Name:      e.Name,
			Attribute: e.Attribute,
			Bound:     e.Bound,
			Message:   e.Error(),
		})
	}
	return out
}

// ValidatePercentage rejects percentages outside [0, 100] before they reach the calculator.
func ValidatePercentage(slot int, name string, pct float64) error {
	if pct >= 0 && pct <= 100 {
		return nil
	}
	bound := 0.0
	if pct > 100 {
		bound = 100
	}
	return &EntryError{Slot: slot, Name: name, Bound: &bound, Err: ErrInvalidPercentage}
}

type attributeRange struct {
	attribute model.Attribute
	value     *float64
	min, max  float64
}

// ValidateAttributes rejects caller-supplied attributes that no real material
// can have: sugar and acidity outside [0, 100], pH outside [0, 14], negative
// sweetness, price or per-1% coefficients. Unknown fields are not checked.
func ValidateAttributes(slot int, name string, a model.Attributes) error {
	unbounded := math.Inf(1)
	ranges := []attributeRange{
		{model.AttributeSugar, a.Sugar, 0, 100},
		{model.AttributePH, a.PH, 0, 14},
		{model.AttributeAcidity, a.Acidity, 0, 100},
		{model.AttributeSweetness, a.Sweetness, 0, unbounded},
		{model.AttributeCost, a.Price, 0, unbounded},
		{model.AttributeSugar, a.SugarCoeff, 0, unbounded},
		{model.AttributeAcidity, a.AcidityCoeff, 0, unbounded},
		{model.AttributeSweetness, a.SweetnessCoeff, 0, unbounded},
	}
	for _, r := range ranges {
		if r.value == nil {
			continue
		}
		v := *r.value
		if v >= r.min && v <= r.max {
			continue
		}
		bound := r.min
		if v > r.max {
			bound = r.max
		}
		return &EntryError{Slot: slot, Name: name, Attribute: r.attribute, Bound: &bound, Err: ErrInvalidAttribute}
	}
	return nil
}
