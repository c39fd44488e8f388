package engine

import (
	"fmt"
	"math"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// DefaultMinDiluent is the diluent share below which a formulation is implausible.
const DefaultMinDiluent = 50.0

// Targets carries caller-supplied thresholds that are not part of a specification.
type Targets struct {
	// UnitCost is the maximum acceptable unit cost; nil leaves cost informational.
	UnitCost *float64
	// MinDiluent defaults to DefaultMinDiluent when zero.
	MinDiluent float64
}

// Check classifies a result against a specification. A nil specification makes
// sugar and acidity informational. Values are rounded to presentation precision
// (sugar 2 decimals, acidity 4) before comparison.
func Check(result model.Result, spec *model.Specification, targets Targets) model.ComplianceReport {
	report := make(model.ComplianceReport, 6)

	sugar := round(result.Sugar, 2)
	acidity := round(result.Acidity, 4)

	if spec == nil {
		report[model.AttributeSugar] = informational(sugar, "sugar %.2f°Bx, no specification selected", sugar)
		report[model.AttributeAcidity] = informational(acidity, "acidity %.4f%%, no specification selected", acidity)
	} else {
		report[model.AttributeSugar] = checkRange("sugar", "°Bx", sugar, 2, spec.SugarMin, spec.SugarMax)
		if spec.HasAcidityRange() {
			report[model.AttributeAcidity] = checkRange("acidity", "%", acidity, 4, spec.AcidityMin, spec.AcidityMax)
		} else {
			report[model.AttributeAcidity] = informational(acidity,
				"acidity %.4f%%, no acidity range defined for %s", acidity, spec.BeverageType)
		}
	}

	report[model.AttributePH] = checkPH(round(result.PH, 2), spec)
	report[model.AttributeDiluent] = checkDiluent(result.DiluentPercentage, targets.MinDiluent)
	report[model.AttributeCost] = checkCost(result.UnitCost, targets.UnitCost)
	report[model.AttributeComposition] = checkComposition(result)

	return report
}

func checkRange(label, unit string, measured float64, decimals int, lo, hi float64) model.Verdict {
	// A zero maximum leaves the range open-ended.
	open := hi <= 0
	rng := fmt.Sprintf("%g~%g%s", lo, hi, unit)
	if open {
		rng = fmt.Sprintf("≥%g%s", lo, unit)
	}
	value := fmt.Sprintf("%.*f%s", decimals, measured, unit)

	switch {
	case measured < lo:
		return model.Verdict{
			Status:   model.StatusFail,
			Message:  fmt.Sprintf("%s %s below minimum %g%s (range %s)", label, value, lo, unit, rng),
			Measured: measured,
			Bound:    model.Float(lo),
		}
	case !open && measured > hi:
		return model.Verdict{
			Status:   model.StatusFail,
			Message:  fmt.Sprintf("%s %s above maximum %g%s (range %s)", label, value, hi, unit, rng),
			Measured: measured,
			Bound:    model.Float(hi),
		}
	default:
		return model.Verdict{
			Status:   model.StatusPass,
			Message:  fmt.Sprintf("%s %s within %s", label, value, rng),
			Measured: measured,
		}
	}
}

func checkPH(ph float64, spec *model.Specification) model.Verdict {
	if spec != nil && spec.HasPHRange() {
		return informational(ph, "estimated pH %.2f, specification %g~%g, measurement required", ph, spec.PHMin, spec.PHMax)
	}
	return informational(ph, "estimated pH %.2f, measurement required", ph)
}

func checkDiluent(pct, minimum float64) model.Verdict {
	if minimum <= 0 {
		minimum = DefaultMinDiluent
	}
	if pct >= minimum {
		return model.Verdict{
			Status:   model.StatusPass,
			Message:  fmt.Sprintf("diluent %.1f%% at or above %g%%", pct, minimum),
			Measured: pct,
		}
	}
	return model.Verdict{
		Status:   model.StatusFail,
		Message:  fmt.Sprintf("diluent %.1f%% below %g%%", pct, minimum),
		Measured: pct,
		Bound:    model.Float(minimum),
	}
}

func checkCost(cost float64, target *float64) model.Verdict {
	if target == nil {
		return informational(cost, "unit cost %.1f, no target supplied", cost)
	}
	if cost <= *target {
		return model.Verdict{
			Status:   model.StatusPass,
			Message:  fmt.Sprintf("unit cost %.1f within target %g", cost, *target),
			Measured: cost,
		}
	}
	return model.Verdict{
		Status:   model.StatusFail,
		Message:  fmt.Sprintf("unit cost %.1f above target %g", cost, *target),
		Measured: cost,
		Bound:    model.Float(*target),
	}
}

func checkComposition(result model.Result) model.Verdict {
	if result.OverComposed {
		return model.Verdict{
			Status:   model.StatusFail,
			Message:  fmt.Sprintf("materials total %.2f%% exceeds 100%%, diluent forced to 0", result.MaterialTotal),
			Measured: result.MaterialTotal,
			Bound:    model.Float(100),
		}
	}
	return model.Verdict{
		Status:   model.StatusPass,
		Message:  fmt.Sprintf("materials %.2f%% + diluent %.2f%%", result.MaterialTotal, result.DiluentPercentage),
		Measured: result.MaterialTotal,
	}
}

func informational(measured float64, format string, args ...interface{}) model.Verdict {
	return model.Verdict{
		Status:   model.StatusInformational,
		Message:  fmt.Sprintf(format, args...),
		Measured: measured,
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
