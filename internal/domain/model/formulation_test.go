package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func water() Material {
	return Material{
		Name:     "Water",
		Category: CategoryDiluent,
		Attributes: Attributes{
			Sugar: Float(0), PH: Float(7), Acidity: Float(0), Sweetness: Float(0), Price: Float(2),
		},
	}
}

func TestNewFormulation(t *testing.T) {
	f := NewFormulation(DefaultSlots, water())

	assert.Equal(t, DefaultSlots, f.Capacity())
	assert.Len(t, f.Entries, DefaultSlots-1)
	assert.Equal(t, DefaultSlots, f.Diluent.Slot)
	assert.Equal(t, "Water", f.Diluent.Name)
	assert.Equal(t, 100.0, f.Diluent.Percentage)

	e, ok := f.Entry(1)
	require.True(t, ok)
	assert.Equal(t, GroupRawMaterial, e.Group)

	_, ok = f.Entry(DefaultSlots)
	assert.False(t, ok, "diluent slot is not addressable as a material entry")
	_, ok = f.Entry(0)
	assert.False(t, ok)
}

func TestNewFormulation_SmallCapacityFallsBack(t *testing.T) {
	f := NewFormulation(1, water())
	assert.Equal(t, DefaultSlots, f.Capacity())
}

func TestGroupOf(t *testing.T) {
	tests := []struct {
		slot     int
		expected SlotGroup
	}{
		{1, GroupRawMaterial},
		{4, GroupRawMaterial},
		{5, GroupSweetener},
		{8, GroupSweetener},
		{9, GroupStabilizer},
		{12, GroupStabilizer},
		{13, GroupOther},
		{19, GroupOther},
		{20, GroupDiluent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GroupOf(tt.slot, DefaultSlots), "slot %d", tt.slot)
	}
}

func TestFormulation_CloneAndReset(t *testing.T) {
	f := NewFormulation(DefaultSlots, water())
	e, _ := f.Entry(2)
	e.Name = "Sugar"
	e.Percentage = 8
	e.Attributes = Attributes{Sugar: Float(100)}

	clone := f.Clone()
	ce, _ := clone.Entry(2)
	*ce.Attributes.Sugar = 1
	ce.Percentage = 50

	assert.Equal(t, 8.0, f.Entries[1].Percentage)
	assert.Equal(t, 100.0, *f.Entries[1].Attributes.Sugar)
	assert.Equal(t, 8.0, f.MaterialTotal())
	assert.Len(t, f.ActiveEntries(), 1)

	f.Reset()
	assert.Equal(t, 0.0, f.MaterialTotal())
	assert.True(t, f.Entries[1].IsEmpty())
	assert.Equal(t, GroupRawMaterial, f.Entries[1].Group)
}

func TestCompositionEntry_State(t *testing.T) {
	unresolved := CompositionEntry{Name: "mystery", Percentage: 2, Source: SourceUnresolved}
	assert.True(t, unresolved.Unresolved())
	assert.True(t, unresolved.Active())
	assert.Equal(t, 20.0, unresolved.GramsPerKg())

	resolved := CompositionEntry{Name: "Sugar", Attributes: Attributes{Sugar: Float(100)}, Source: SourceCatalog}
	assert.False(t, resolved.Unresolved())
	assert.False(t, resolved.Active())
}

func TestIsJuiceName(t *testing.T) {
	assert.True(t, IsJuiceName("Apple Concentrate 70Bx"))
	assert.True(t, IsJuiceName("사과농축과즙"))
	assert.True(t, IsJuiceName("orange juice"))
	assert.False(t, IsJuiceName("citric acid"))
}

func TestResult_FlatMaps(t *testing.T) {
	r := Result{Sugar: 14.5, ActiveCount: 2}
	attrs := r.Attributes()
	assert.Equal(t, 14.5, attrs["sugar"])
	assert.Equal(t, 2.0, attrs["active_count"])

	report := ComplianceReport{
		AttributeSugar: {Status: StatusPass},
		AttributePH:    {Status: StatusInformational},
	}
	assert.True(t, report.Passed())
	assert.Equal(t, "informational", report.Statuses()["ph"])

	report[AttributeDiluent] = Verdict{Status: StatusFail}
	assert.False(t, report.Passed())
}

func TestGuideEntry(t *testing.T) {
	g := GuideEntry{BeverageType: "fruit_drink", Flavor: "apple", Slot: 3, Name: "Apple puree", Percentage: 12}
	assert.Equal(t, "fruit_drink_apple_3", g.Key())
	assert.Equal(t, Candidate{Slot: 3, Name: "Apple puree", Percentage: 12}, g.Candidate())
}
