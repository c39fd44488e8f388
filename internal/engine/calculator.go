package engine

import (
	"errors"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// DefaultVolumeML is the bottle volume used for per-bottle cost.
const DefaultVolumeML = 500

// Evaluation is the output of one pipeline run over a formulation.
type Evaluation struct {
	Result     model.Result           `json:"result"`
	Compliance model.ComplianceReport `json:"compliance"`
	Issues     []Issue                `json:"issues"`
}

// Calculator runs normalization, aggregation, pH estimation and compliance
// checks as one pipeline.
type Calculator struct {
	referencePH float64
	phMode      model.PHMode
	minDiluent  float64
	volumeML    float64
}

// Option configures a Calculator.
type Option func(*Calculator)

// NewCalculator creates a Calculator with the given options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		referencePH: DefaultReferencePH,
		phMode:      model.PHModeIon,
		minDiluent:  DefaultMinDiluent,
		volumeML:    DefaultVolumeML,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithReferencePH sets the baseline pH.
func WithReferencePH(ph float64) Option {
	return func(c *Calculator) {
		if ph > 0 && ph <= 14 {
			c.referencePH = ph
		}
	}
}

// WithPHMode selects the pH estimation model.
func WithPHMode(mode model.PHMode) Option {
	return func(c *Calculator) {
		c.phMode = model.ParsePHMode(string(mode))
	}
}

// WithMinDiluent sets the diluent plausibility threshold.
func WithMinDiluent(pct float64) Option {
	return func(c *Calculator) {
		if pct > 0 && pct <= 100 {
			c.minDiluent = pct
		}
	}
}

// WithVolumeML sets the bottle volume for per-bottle cost.
func WithVolumeML(ml float64) Option {
	return func(c *Calculator) {
		if ml > 0 {
			c.volumeML = ml
		}
	}
}

// Params overrides calculator defaults for a single evaluation.
type Params struct {
	PHMode      model.PHMode
	ReferencePH float64
	VolumeML    float64
	CostTarget  *float64
}

// Evaluate normalizes f in place, then derives the result and the compliance
// report. spec may be nil. Issues are collected per entry; none aborts the run.
func (c *Calculator) Evaluate(f *model.Formulation, spec *model.Specification, p Params) Evaluation {
	mode, ref, volume := c.phMode, c.referencePH, c.volumeML
	if p.PHMode != "" {
		mode = model.ParsePHMode(string(p.PHMode))
	}
	if p.ReferencePH > 0 && p.ReferencePH <= 14 {
		ref = p.ReferencePH
	}
	if p.VolumeML > 0 {
		volume = p.VolumeML
	}

	var errs []*EntryError
	collect := func(err error) {
		var ee *EntryError
		if errors.As(err, &ee) {
			errs = append(errs, ee)
		}
	}

	collect(Normalize(f))

	agg, aggErrs := ComputeAggregates(f)
	errs = append(errs, aggErrs...)

	ratio, err := SugarAcidRatio(agg.Sugar, agg.Acidity)
	collect(err)

	result := model.Result{
		Sugar:             agg.Sugar,
		Acidity:           agg.Acidity,
		Sweetness:         agg.Sweetness,
		PH:                EstimatePH(f, mode, ref),
		PHMode:            mode,
		UnitCost:          agg.UnitCost,
		CostPerBottle:     agg.UnitCost * volume / 1000,
		DiluentPercentage: f.Diluent.Percentage,
		MaterialTotal:     agg.MaterialTotal,
		ActiveCount:       agg.ActiveCount,
		SugarAcidRatio:    ratio,
		RatioDefined:      err == nil,
		JuiceContent:      JuiceContent(f),
		OverComposed:      f.OverComposed,
	}

	return Evaluation{
		Result:     result,
		Compliance: Check(result, spec, Targets{UnitCost: p.CostTarget, MinDiluent: c.minDiluent}),
		Issues:     Issues(errs),
	}
}
