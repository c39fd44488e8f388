package model

// Specification holds the allowed ranges for a beverage type.
// A zero upper bound on sugar means the range is open-ended.
//
// @Description Specification ranges for a beverage type
type Specification struct {
	BeverageType string  `json:"beverage_type" bson:"beverage_type" example:"fruit_drink"`
	SugarMin     float64 `json:"sugar_min" bson:"sugar_min" example:"8"`
	SugarMax     float64 `json:"sugar_max" bson:"sugar_max" example:"14"`
	PHMin        float64 `json:"ph_min" bson:"ph_min" example:"2.8"`
	PHMax        float64 `json:"ph_max" bson:"ph_max" example:"4.2"`
	AcidityMin   float64 `json:"acidity_min" bson:"acidity_min" example:"0.2"`
	AcidityMax   float64 `json:"acidity_max" bson:"acidity_max" example:"0.6"`
	Note         string  `json:"note,omitempty" bson:"note,omitempty"`
}

// HasAcidityRange reports whether any acidity bound is defined.
func (s Specification) HasAcidityRange() bool {
	return s.AcidityMin > 0 || s.AcidityMax > 0
}

// HasPHRange reports whether any pH bound is defined.
func (s Specification) HasPHRange() bool {
	return s.PHMin > 0 || s.PHMax > 0
}
