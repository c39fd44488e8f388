// Package engine implements the formulation blend model: aggregate accumulation,
// diluent normalization, pH estimation, compliance classification and the
// ingredient resolution rules.
//
// All functions operate on a formulation snapshot and hold no state of their own.
package engine

import "github.com/guttosm/blend-service/internal/domain/model"

// Aggregates are the linear sums over a formulation's active entries.
type Aggregates struct {
	Sugar         float64
	Acidity       float64
	Sweetness     float64
	UnitCost      float64
	MaterialTotal float64
	ActiveCount   int
}

// ComputeAggregates accumulates the weighted contribution of every active entry.
//
// Each active material adds coefficient × percentage for sugar, acidity and
// sweetness, and price × percentage / 100 to the unit cost. A missing per-1%
// coefficient falls back to raw value / 100. Dimensions that remain unknown
// contribute nothing and are reported as UnresolvedMaterial for that entry only.
// The diluent contributes by its own attributes but is not counted as active.
func ComputeAggregates(f *model.Formulation) (Aggregates, []*EntryError) {
	var (
		agg  Aggregates
		errs []*EntryError
	)

	for _, e := range f.Entries {
		agg.MaterialTotal += e.Percentage
		if !e.Active() {
			continue
		}
		agg.ActiveCount++

		if e.Unresolved() {
			errs = append(errs, &EntryError{Slot: e.Slot, Name: e.Name, Err: ErrUnresolvedMaterial})
			continue
		}
		errs = append(errs, accumulate(&agg, e)...)
	}

	if f.Diluent.Active() {
		// Diluent attributes are optional; water without a price simply adds nothing.
		d := f.Diluent
		if v, ok := d.Attributes.SugarPerPercent(); ok {
			agg.Sugar += v * d.Percentage
		}
		if v, ok := d.Attributes.AcidityPerPercent(); ok {
			agg.Acidity += v * d.Percentage
		}
		if v, ok := d.Attributes.SweetnessPerPercent(); ok {
			agg.Sweetness += v * d.Percentage
		}
		if d.Attributes.Price != nil {
			agg.UnitCost += *d.Attributes.Price * d.Percentage / 100
		}
	}

	return agg, errs
}

func accumulate(agg *Aggregates, e model.CompositionEntry) []*EntryError {
	var errs []*EntryError
	missing := func(attr model.Attribute) {
		errs = append(errs, &EntryError{Slot: e.Slot, Name: e.Name, Attribute: attr, Err: ErrUnresolvedMaterial})
	}

	if v, ok := e.Attributes.SugarPerPercent(); ok {
		agg.Sugar += v * e.Percentage
	} else {
		missing(model.AttributeSugar)
	}
	if v, ok := e.Attributes.AcidityPerPercent(); ok {
		agg.Acidity += v * e.Percentage
	} else {
		missing(model.AttributeAcidity)
	}
	if v, ok := e.Attributes.SweetnessPerPercent(); ok {
		agg.Sweetness += v * e.Percentage
	} else {
		missing(model.AttributeSweetness)
	}
	if e.Attributes.Price != nil {
		agg.UnitCost += *e.Attributes.Price * e.Percentage / 100
	} else {
		missing(model.AttributeCost)
	}
	return errs
}

// SugarAcidRatio returns sugar / acidity, or the 0 sentinel with ErrUndefinedRatio
// when acidity is exactly zero.
func SugarAcidRatio(sugar, acidity float64) (float64, error) {
	if acidity == 0 {
		return 0, &EntryError{Attribute: model.AttributeAcidity, Err: ErrUndefinedRatio}
	}
	return sugar / acidity, nil
}

// Raw materials at or above the threshold sugar content are reconstituted to
// single strength when computing juice content.
const (
	juiceConcentrationThreshold = 40.0
	singleStrengthSugar         = 11.5
)

// JuiceContent returns the single-strength juice percentage of the raw-material slots.
func JuiceContent(f *model.Formulation) float64 {
	var total float64
	for _, e := range f.Entries {
		if !e.Active() || e.Group != model.GroupRawMaterial || !model.IsJuiceName(e.Name) {
			continue
		}
		factor := 1.0
		if e.Attributes.Sugar != nil && *e.Attributes.Sugar >= juiceConcentrationThreshold {
			factor = *e.Attributes.Sugar / singleStrengthSugar
		}
		total += e.Percentage * factor
	}
	return total
}
