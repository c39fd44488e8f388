package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/blend-service/internal/domain/model"
)

func sampleData() Data {
	return Data{
		Materials: []model.Material{
			{Name: "Sugar", Category: model.CategorySugar, Attributes: model.Attributes{Sugar: model.Float(100), Sweetness: model.Float(1)}},
			{Name: "Apple puree", Category: model.CategoryPuree, Attributes: model.Attributes{Sugar: model.Float(12)}},
		},
		Specifications: []model.Specification{
			{BeverageType: "juice", SugarMin: 9, SugarMax: 16},
			{BeverageType: "fruit_drink", SugarMin: 8, SugarMax: 14},
		},
		Guides: []model.GuideEntry{
			{BeverageType: "fruit_drink", Flavor: "apple", Slot: 5, Name: "Sugar", Percentage: 5},
			{BeverageType: "fruit_drink", Flavor: "apple", Slot: 1, Name: "Apple puree", Percentage: 20},
		},
	}
}

func TestNewSnapshot(t *testing.T) {
	s, err := NewSnapshot("test", sampleData())
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "test", s.Source())
	assert.False(t, s.LoadedAt().IsZero())

	names := []string{}
	for _, m := range s.Materials() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Apple puree", "Sugar"}, names)

	specs := s.Specifications()
	require.Len(t, specs, 2)
	assert.Equal(t, "fruit_drink", specs[0].BeverageType)
}

func TestNewSnapshot_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Data)
		err    error
	}{
		{
			name:   "empty material name",
			mutate: func(d *Data) { d.Materials = append(d.Materials, model.Material{Name: " "}) },
			err:    ErrEmptyName,
		},
		{
			name:   "duplicate material",
			mutate: func(d *Data) { d.Materials = append(d.Materials, model.Material{Name: "Sugar"}) },
			err:    ErrDuplicate,
		},
		{
			name: "pH out of range",
			mutate: func(d *Data) {
				d.Materials = append(d.Materials, model.Material{Name: "Lye", Attributes: model.Attributes{PH: model.Float(15)}})
			},
			err: ErrInvalidRecord,
		},
		{
			name:   "duplicate specification",
			mutate: func(d *Data) { d.Specifications = append(d.Specifications, model.Specification{BeverageType: "juice"}) },
			err:    ErrDuplicate,
		},
		{
			name: "inverted sugar range",
			mutate: func(d *Data) {
				d.Specifications = append(d.Specifications, model.Specification{BeverageType: "tea", SugarMin: 10, SugarMax: 5})
			},
			err: ErrInvalidRecord,
		},
		{
			name: "duplicate guide key",
			mutate: func(d *Data) {
				d.Guides = append(d.Guides, model.GuideEntry{BeverageType: "fruit_drink", Flavor: "apple", Slot: 1, Name: "Sugar"})
			},
			err: ErrDuplicate,
		},
		{
			name: "guide without slot",
			mutate: func(d *Data) {
				d.Guides = append(d.Guides, model.GuideEntry{BeverageType: "fruit_drink", Flavor: "pear"})
			},
			err: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := sampleData()
			tt.mutate(&data)

			_, err := NewSnapshot("test", data)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSnapshot_MaterialIsExactAndCopied(t *testing.T) {
	s, err := NewSnapshot("test", sampleData())
	require.NoError(t, err)

	_, ok := s.Material("sugar")
	assert.False(t, ok, "lookup is case-sensitive")

	m, ok := s.Material("Sugar")
	require.True(t, ok)
	*m.Sugar = 0

	again, _ := s.Material("Sugar")
	assert.Equal(t, 100.0, *again.Sugar, "callers cannot mutate the snapshot")
}

func TestSnapshot_Specification(t *testing.T) {
	s, err := NewSnapshot("test", sampleData())
	require.NoError(t, err)

	spec, ok := s.Specification("fruit_drink (NFC)")
	require.True(t, ok)
	assert.Equal(t, 8.0, spec.SugarMin)

	_, ok = s.Specification("tea")
	assert.False(t, ok)
}

func TestSnapshot_GuideOrderedBySlot(t *testing.T) {
	s, err := NewSnapshot("test", sampleData())
	require.NoError(t, err)

	rows := s.Guide("fruit_drink", "apple")
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Slot)
	assert.Equal(t, "fruit_drink_apple_1", rows[0].Key())
	assert.Equal(t, 5, rows[1].Slot)

	assert.Empty(t, s.Guide("fruit_drink", "grape"))
}

func TestSnapshot_Diluent(t *testing.T) {
	s := Empty()
	d := s.Diluent()
	assert.Equal(t, "Water", d.Name)
	assert.Equal(t, DefaultDiluentPrice, *d.Price)

	data := sampleData()
	data.Diluent = &model.Material{Name: "Purified water", Attributes: model.Attributes{Price: model.Float(3.5)}}
	custom, err := NewSnapshot("test", data)
	require.NoError(t, err)

	d = custom.Diluent()
	assert.Equal(t, "Purified water", d.Name)
	assert.Equal(t, model.CategoryDiluent, d.Category)
	assert.Equal(t, 3.5, *d.Price)
	assert.Equal(t, 7.0, *d.PH, "missing fields default to water")
}
