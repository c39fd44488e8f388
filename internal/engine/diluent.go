package engine

import "github.com/guttosm/blend-service/internal/domain/model"

// Normalize derives the diluent percentage as max(0, 100 - Σ material %).
//
// Materials are never clamped: when they exceed 100% the diluent is forced to 0,
// the formulation is flagged over-composed and ErrOverComposed is returned.
// Calling Normalize again without an intervening mutation yields the same state.
func Normalize(f *model.Formulation) error {
	total := f.MaterialTotal()
	if total > 100 {
		f.Diluent.Percentage = 0
		f.OverComposed = true
		bound := 100.0
		return &EntryError{Slot: 0, Attribute: model.AttributeComposition, Bound: &bound, Err: ErrOverComposed}
	}
	f.Diluent.Percentage = 100 - total
	f.OverComposed = false
	return nil
}
