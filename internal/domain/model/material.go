// Package model defines the core domain entities for the blend service.
package model

import "strings"

// Category classifies a material by its role in a formulation.
type Category string

// Material categories.
const (
	CategoryFruit         Category = "fruit"
	CategoryConcentrate   Category = "concentrate"
	CategoryPuree         Category = "puree"
	CategorySugar         Category = "sugar"
	CategorySyrup         Category = "syrup"
	CategorySweetener     Category = "sweetener"
	CategoryHighIntensity Category = "high_intensity_sweetener"
	CategoryAcidulant     Category = "acidulant"
	CategoryStabilizer    Category = "stabilizer"
	CategoryFlavor        Category = "flavor"
	CategoryVitamin       Category = "vitamin"
	CategoryOther         Category = "other"
	CategoryDiluent       Category = "diluent"
	CategoryUnknown       Category = ""
)

// SugarBearing reports whether materials of this category must carry a
// non-zero sugar content and sweetness factor.
func (c Category) SugarBearing() bool {
	switch c {
	case CategoryConcentrate, CategoryPuree, CategorySugar, CategorySyrup, CategorySweetener:
		return true
	}
	return false
}

// ParseCategory maps free-form category hints onto a Category.
// Unknown hints map to CategoryUnknown.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryFruit, CategoryConcentrate, CategoryPuree, CategorySugar, CategorySyrup,
		CategorySweetener, CategoryHighIntensity, CategoryAcidulant, CategoryStabilizer,
		CategoryFlavor, CategoryVitamin, CategoryOther, CategoryDiluent:
		return c
	default:
		return CategoryUnknown
	}
}

// Attributes holds the physicochemical properties of a material.
// A nil field means the value is unknown; it is never read as zero.
//
// @Description Physicochemical attributes; per-1% coefficients give the contribution of 1% usage
type Attributes struct {
	Sugar          *float64 `json:"sugar,omitempty" bson:"sugar,omitempty" example:"65"`
	PH             *float64 `json:"ph,omitempty" bson:"ph,omitempty" example:"3.4"`
	Acidity        *float64 `json:"acidity,omitempty" bson:"acidity,omitempty" example:"4.2"`
	Sweetness      *float64 `json:"sweetness,omitempty" bson:"sweetness,omitempty" example:"1"`
	Price          *float64 `json:"price,omitempty" bson:"price,omitempty" example:"5200"`
	SugarCoeff     *float64 `json:"sugar_coeff,omitempty" bson:"sugar_coeff,omitempty" example:"0.65"`
	AcidityCoeff   *float64 `json:"acidity_coeff,omitempty" bson:"acidity_coeff,omitempty" example:"0.042"`
	SweetnessCoeff *float64 `json:"sweetness_coeff,omitempty" bson:"sweetness_coeff,omitempty" example:"0.01"`
	PHDelta        *float64 `json:"ph_delta,omitempty" bson:"ph_delta,omitempty" example:"-0.05"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Complete reports whether the four core attributes are all known.
func (a Attributes) Complete() bool {
	return a.Sugar != nil && a.PH != nil && a.Acidity != nil && a.Sweetness != nil
}

// IsEmpty reports whether no attribute is known.
func (a Attributes) IsEmpty() bool {
	return a.Sugar == nil && a.PH == nil && a.Acidity == nil && a.Sweetness == nil &&
		a.Price == nil && a.SugarCoeff == nil && a.AcidityCoeff == nil &&
		a.SweetnessCoeff == nil && a.PHDelta == nil
}

// SugarPerPercent returns the sugar contribution of 1% usage.
// Without an explicit coefficient it falls back to sugar/100.
func (a Attributes) SugarPerPercent() (float64, bool) {
	return perPercent(a.SugarCoeff, a.Sugar)
}

// AcidityPerPercent returns the acidity contribution of 1% usage.
// Without an explicit coefficient it falls back to acidity/100.
func (a Attributes) AcidityPerPercent() (float64, bool) {
	return perPercent(a.AcidityCoeff, a.Acidity)
}

// SweetnessPerPercent returns the sweetness contribution of 1% usage.
// Without an explicit coefficient it falls back to sweetness/100.
func (a Attributes) SweetnessPerPercent() (float64, bool) {
	return perPercent(a.SweetnessCoeff, a.Sweetness)
}

func perPercent(coeff, raw *float64) (float64, bool) {
	if coeff != nil {
		return *coeff, true
	}
	if raw != nil {
		return *raw / 100, true
	}
	return 0, false
}

// Merge returns a copy of a with every unknown field filled from other.
func (a Attributes) Merge(other Attributes) Attributes {
	fill := func(dst **float64, src *float64) {
		if *dst == nil && src != nil {
			v := *src
			*dst = &v
		}
	}
	out := a.Clone()
	fill(&out.Sugar, other.Sugar)
	fill(&out.PH, other.PH)
	fill(&out.Acidity, other.Acidity)
	fill(&out.Sweetness, other.Sweetness)
	fill(&out.Price, other.Price)
	fill(&out.SugarCoeff, other.SugarCoeff)
	fill(&out.AcidityCoeff, other.AcidityCoeff)
	fill(&out.SweetnessCoeff, other.SweetnessCoeff)
	fill(&out.PHDelta, other.PHDelta)
	return out
}

// Clone returns a deep copy so snapshots never share pointers.
func (a Attributes) Clone() Attributes {
	cp := func(p *float64) *float64 {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	return Attributes{
		Sugar:          cp(a.Sugar),
		PH:             cp(a.PH),
		Acidity:        cp(a.Acidity),
		Sweetness:      cp(a.Sweetness),
		Price:          cp(a.Price),
		SugarCoeff:     cp(a.SugarCoeff),
		AcidityCoeff:   cp(a.AcidityCoeff),
		SweetnessCoeff: cp(a.SweetnessCoeff),
		PHDelta:        cp(a.PHDelta),
	}
}

// Material is a named catalog entry with known attributes.
//
// @Description Reference material from the catalog
type Material struct {
	Attributes `bson:",inline"`

	Name     string   `json:"name" bson:"name" example:"Apple concentrate 70Bx"`
	Category Category `json:"category" bson:"category" example:"concentrate"`
	Note     string   `json:"note,omitempty" bson:"note,omitempty"`
}
