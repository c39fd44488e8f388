// Package gateway is the client for the external estimation gateway that
// supplies attributes for materials neither the catalog nor inference can resolve.
package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
)

var (
	// ErrMalformed marks a response that is not a decodable estimate.
	ErrMalformed = fmt.Errorf("%w: malformed response", engine.ErrGatewayFailure)
	// ErrIncomplete marks a response missing required fields or carrying out-of-range values.
	ErrIncomplete = fmt.Errorf("%w: incomplete response", engine.ErrGatewayFailure)
	// ErrSuspicious marks an estimate with zero sugar or sweetness for a sugar-bearing material.
	ErrSuspicious = fmt.Errorf("%w: suspicious estimate", engine.ErrGatewayFailure)
)

// Estimate is the gateway response contract. Every field is required; a
// pointer distinguishes an explicit zero from an omitted field.
type Estimate struct {
	Sugar          *float64 `json:"sugar" validate:"required,gte=0,lte=100"`
	PH             *float64 `json:"ph" validate:"required,gte=0,lte=14"`
	Acidity        *float64 `json:"acidity" validate:"required,gte=0,lte=100"`
	Sweetness      *float64 `json:"sweetness" validate:"required,gte=0"`
	Price          *float64 `json:"price" validate:"required,gte=0"`
	SugarCoeff     *float64 `json:"sugar_coeff" validate:"required,gte=0"`
	PHDelta        *float64 `json:"ph_delta" validate:"required,gte=-14,lte=14"`
	AcidityCoeff   *float64 `json:"acidity_coeff" validate:"required,gte=0"`
	SweetnessCoeff *float64 `json:"sweetness_coeff" validate:"required,gte=0"`
}

// Attributes converts a validated estimate into material attributes.
func (e Estimate) Attributes() model.Attributes {
	return model.Attributes{
		Sugar:          e.Sugar,
		PH:             e.PH,
		Acidity:        e.Acidity,
		Sweetness:      e.Sweetness,
		Price:          e.Price,
		SugarCoeff:     e.SugarCoeff,
		PHDelta:        e.PHDelta,
		AcidityCoeff:   e.AcidityCoeff,
		SweetnessCoeff: e.SweetnessCoeff,
	}.Clone()
}

var validate = validator.New()

// ParseEstimate decodes a gateway payload. The payload may be the estimate
// itself, the estimate wrapped in markdown code fences, or an envelope whose
// "content" string holds either of those.
func ParseEstimate(payload []byte, hint model.Category) (Estimate, error) {
	text := stripFences(string(payload))

	var envelope struct {
		Content *string `json:"content"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err == nil && envelope.Content != nil {
		text = stripFences(*envelope.Content)
	}

	text = outermostObject(text)
	if text == "" {
		return Estimate{}, ErrMalformed
	}

	var est Estimate
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(&est); err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := validate.Struct(est); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return Estimate{}, fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(fields, ", "))
		}
		return Estimate{}, fmt.Errorf("%w: %v", ErrIncomplete, err)
	}

	if err := checkPlausible(est, hint); err != nil {
		return Estimate{}, err
	}
	return est, nil
}

func checkPlausible(est Estimate, hint model.Category) error {
	switch {
	case hint.SugarBearing() && (*est.Sugar == 0 || *est.Sweetness == 0):
		return fmt.Errorf("%w: %s with sugar %g and sweetness %g", ErrSuspicious, hint, *est.Sugar, *est.Sweetness)
	case hint == model.CategoryHighIntensity && *est.Sweetness == 0:
		return fmt.Errorf("%w: %s with zero sweetness", ErrSuspicious, hint)
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// Drop the language tag line ("json").
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// outermostObject trims prose around the first JSON object.
func outermostObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}
