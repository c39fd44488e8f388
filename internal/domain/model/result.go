package model

// PHMode selects the pH estimation model.
type PHMode string

// Supported pH estimation modes.
const (
	PHModeIon    PHMode = "ion"
	PHModeLinear PHMode = "linear"
)

// ParsePHMode returns the mode named by s, defaulting to ion mixing.
func ParsePHMode(s string) PHMode {
	if PHMode(s) == PHModeLinear {
		return PHModeLinear
	}
	return PHModeIon
}

// Result is the computed snapshot of a formulation. It is recomputed on every
// mutation and never stored on its own.
//
// @Description Aggregate attributes of a formulation
type Result struct {
	Sugar             float64 `json:"sugar" example:"14.5"`
	Acidity           float64 `json:"acidity" example:"0.35"`
	Sweetness         float64 `json:"sweetness" example:"0.18"`
	PH                float64 `json:"ph" example:"3.42"`
	PHMode            PHMode  `json:"ph_mode" example:"ion"`
	UnitCost          float64 `json:"unit_cost" example:"812.4"`
	CostPerBottle     float64 `json:"cost_per_bottle" example:"406.2"`
	DiluentPercentage float64 `json:"diluent_percentage" example:"82"`
	MaterialTotal     float64 `json:"material_total" example:"18"`
	ActiveCount       int     `json:"active_count" example:"2"`
	SugarAcidRatio    float64 `json:"sugar_acid_ratio" example:"41.4"`
	RatioDefined      bool    `json:"ratio_defined" example:"true"`
	JuiceContent      float64 `json:"juice_content" example:"60.9"`
	OverComposed      bool    `json:"over_composed" example:"false"`
}

// Attributes returns the flat attribute map consumed by report and export collaborators.
func (r Result) Attributes() map[string]float64 {
	return map[string]float64{
		"sugar":              r.Sugar,
		"acidity":            r.Acidity,
		"sweetness":          r.Sweetness,
		"ph":                 r.PH,
		"unit_cost":          r.UnitCost,
		"cost_per_bottle":    r.CostPerBottle,
		"diluent_percentage": r.DiluentPercentage,
		"active_count":       float64(r.ActiveCount),
		"sugar_acid_ratio":   r.SugarAcidRatio,
		"juice_content":      r.JuiceContent,
	}
}

// Status is the outcome of a single compliance check.
type Status string

// Compliance statuses.
const (
	StatusPass          Status = "pass"
	StatusFail          Status = "fail"
	StatusInformational Status = "informational"
)

// Attribute names a checked property.
type Attribute string

// Checked attributes.
const (
	AttributeSugar       Attribute = "sugar"
	AttributeAcidity     Attribute = "acidity"
	AttributeSweetness   Attribute = "sweetness"
	AttributePH          Attribute = "ph"
	AttributeDiluent     Attribute = "diluent"
	AttributeCost        Attribute = "cost"
	AttributeComposition Attribute = "composition"
)

// Verdict is the classification of one attribute.
//
// @Description Compliance verdict for one attribute
type Verdict struct {
	Status   Status   `json:"status" example:"fail"`
	Message  string   `json:"message" example:"sugar 15.20 above maximum 14"`
	Measured float64  `json:"measured" example:"15.2"`
	Bound    *float64 `json:"bound,omitempty" example:"14"`
}

// ComplianceReport maps each checked attribute to its verdict.
type ComplianceReport map[Attribute]Verdict

// Passed reports whether no verdict failed.
func (r ComplianceReport) Passed() bool {
	for _, v := range r {
		if v.Status == StatusFail {
			return false
		}
	}
	return true
}

// Statuses returns the flat verdict map consumed by downstream collaborators.
func (r ComplianceReport) Statuses() map[string]string {
	out := make(map[string]string, len(r))
	for k, v := range r {
		out[string(k)] = string(v.Status)
	}
	return out
}
