package engine

import (
	"math"

	"github.com/guttosm/blend-service/internal/domain/model"
)

const (
	// DefaultReferencePH is the baseline of the linear model and of delta-only entries.
	DefaultReferencePH = 3.5
	neutralPH          = 7.0
	phEpsilon          = 1e-12
)

// EstimatePH estimates the pH of a normalized formulation.
//
// Ion mode mixes hydrogen and hydroxide concentrations of the active material
// entries weighted by fractional percentage, ignoring buffering and
// dissociation constants. The diluent takes no part in the mix. Linear mode adds
// per-1% pH deltas to the reference pH. The approximation is intentional.
func EstimatePH(f *model.Formulation, mode model.PHMode, referencePH float64) float64 {
	if mode == model.PHModeLinear {
		return estimateLinear(f, referencePH)
	}
	return estimateIon(f, referencePH)
}

func estimateIon(f *model.Formulation, referencePH float64) float64 {
	var h, oh float64
	for _, e := range f.Entries {
		if !e.Active() {
			continue
		}
		frac := e.Percentage / 100
		pv := characteristicPH(e, referencePH)
		switch {
		case pv < neutralPH:
			h += frac * math.Pow(10, -pv)
		case pv > neutralPH:
			oh += frac * math.Pow(10, pv-14)
		default:
			h += frac * 1e-7
		}
	}

	net := h - oh
	switch {
	case net > phEpsilon:
		return -math.Log10(net)
	case net < -phEpsilon:
		return 14 + math.Log10(-net)
	default:
		return neutralPH
	}
}

// characteristicPH returns the pH an entry brings into the ion mix: its raw pH,
// else the reference shifted by its delta at the used percentage, else neutral.
func characteristicPH(e model.CompositionEntry, referencePH float64) float64 {
	switch {
	case e.Attributes.PH != nil:
		return *e.Attributes.PH
	case e.Attributes.PHDelta != nil:
		return referencePH + *e.Attributes.PHDelta*e.Percentage
	default:
		return neutralPH
	}
}

// estimateLinear treats the diluted product as the reference medium; the
// diluent itself does not shift the result.
func estimateLinear(f *model.Formulation, referencePH float64) float64 {
	ph := referencePH
	for _, e := range f.Entries {
		if !e.Active() {
			continue
		}
		switch {
		case e.Attributes.PHDelta != nil:
			ph += *e.Attributes.PHDelta * e.Percentage
		case e.Attributes.PH != nil:
			ph += (*e.Attributes.PH - referencePH) * e.Percentage / 100
		default:
			ph += (neutralPH - referencePH) * e.Percentage / 100
		}
	}
	return ph
}
