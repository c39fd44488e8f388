// Package testutil provides fixtures, seeded factories and testcontainers setup for tests.
package testutil

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// Water returns the default diluent material.
func Water() model.Material {
	return model.Material{
		Name:     "Water",
		Category: model.CategoryDiluent,
		Attributes: model.Attributes{
			Sugar:     model.Float(0),
			PH:        model.Float(7),
			Acidity:   model.Float(0),
			Sweetness: model.Float(0),
			Price:     model.Float(2),
		},
	}
}

// MaterialFactory builds random but physically plausible materials.
type MaterialFactory struct {
	faker *gofakeit.Faker
}

// NewMaterialFactory creates a factory with a seeded faker so runs are reproducible.
func NewMaterialFactory(seed int64) *MaterialFactory {
	return &MaterialFactory{faker: gofakeit.New(seed)}
}

// Material returns a complete material with positive sugar coefficient.
func (f *MaterialFactory) Material() model.Material {
	sugar := f.faker.Float64Range(1, 100)
	return model.Material{
		Name:     fmt.Sprintf("%s %s", f.faker.Fruit(), f.faker.UUID()[:8]),
		Category: model.CategoryConcentrate,
		Attributes: model.Attributes{
			Sugar:      model.Float(sugar),
			PH:         model.Float(f.faker.Float64Range(2, 9)),
			Acidity:    model.Float(f.faker.Float64Range(0, 8)),
			Sweetness:  model.Float(f.faker.Float64Range(0.1, 2)),
			Price:      model.Float(f.faker.Float64Range(500, 15000)),
			SugarCoeff: model.Float(sugar / 100),
		},
	}
}

// Percentage returns a percentage in [lo, hi].
func (f *MaterialFactory) Percentage(lo, hi float64) float64 {
	return f.faker.Float64Range(lo, hi)
}

// Formulation returns a formulation with n random materials in the first slots.
// Percentages are drawn from [0, maxPct].
func (f *MaterialFactory) Formulation(n int, maxPct float64) *model.Formulation {
	form := model.NewFormulation(model.DefaultSlots, Water())
	if n > len(form.Entries) {
		n = len(form.Entries)
	}
	for i := 0; i < n; i++ {
		m := f.Material()
		entry := &form.Entries[i]
		entry.Name = m.Name
		entry.Percentage = f.Percentage(0, maxPct)
		entry.Attributes = m.Attributes
		entry.Source = model.SourceCatalog
	}
	return form
}

// SetEntry fills a slot of form with material m at pct.
func SetEntry(form *model.Formulation, slot int, m model.Material, pct float64) {
	entry, ok := form.Entry(slot)
	if !ok {
		panic(fmt.Sprintf("slot %d out of range", slot))
	}
	entry.Name = m.Name
	entry.Percentage = pct
	entry.Attributes = m.Attributes.Clone()
	entry.Source = model.SourceCatalog
}
