package model

import "strings"

// DefaultSlots is the number of slots of a formulation, diluent included.
const DefaultSlots = 20

// Source tells where an entry's attribute snapshot came from.
type Source string

// Attribute sources.
const (
	SourceNone       Source = ""
	SourceCatalog    Source = "catalog"
	SourceInferred   Source = "inferred"
	SourceManual     Source = "manual"
	SourceEstimated  Source = "estimated"
	SourceUnresolved Source = "unresolved"
)

// SlotGroup is the material group a slot belongs to.
type SlotGroup string

// Slot groups of a 20-slot formulation.
const (
	GroupRawMaterial SlotGroup = "raw_material"
	GroupSweetener   SlotGroup = "sweetener"
	GroupStabilizer  SlotGroup = "stabilizer"
	GroupOther       SlotGroup = "other"
	GroupDiluent     SlotGroup = "diluent"
)

// GroupOf returns the group of a 1-based slot in a formulation of the given capacity.
func GroupOf(slot, capacity int) SlotGroup {
	switch {
	case slot >= capacity:
		return GroupDiluent
	case slot <= 4:
		return GroupRawMaterial
	case slot <= 8:
		return GroupSweetener
	case slot <= 12:
		return GroupStabilizer
	default:
		return GroupOther
	}
}

// CompositionEntry is one slot of a formulation.
//
// @Description One slot of a formulation with its resolved attribute snapshot
type CompositionEntry struct {
	Slot       int        `json:"slot" example:"1"`
	Name       string     `json:"name" example:"Apple concentrate 70Bx"`
	Percentage float64    `json:"percentage" example:"10"`
	Attributes Attributes `json:"attributes"`
	Source     Source     `json:"source,omitempty" example:"catalog"`
	Inferred   bool       `json:"is_inferred"`
	Custom     bool       `json:"is_custom"`
	Group      SlotGroup  `json:"group" example:"raw_material"`
}

// Active reports whether the entry contributes to the blend.
func (e CompositionEntry) Active() bool {
	return e.Percentage > 0
}

// IsEmpty reports whether the slot holds nothing.
func (e CompositionEntry) IsEmpty() bool {
	return e.Name == "" && e.Percentage == 0
}

// Unresolved reports whether the entry names a material with no known attributes.
func (e CompositionEntry) Unresolved() bool {
	return e.Name != "" && (e.Source == SourceUnresolved || e.Attributes.IsEmpty())
}

// GramsPerKg returns the weighed amount of this entry per kilogram of product.
func (e CompositionEntry) GramsPerKg() float64 {
	return e.Percentage * 10
}

// Formulation is a fixed-capacity composition: capacity-1 material slots plus one diluent slot.
// The diluent percentage is always derived and never entered.
type Formulation struct {
	Entries      []CompositionEntry `json:"entries"`
	Diluent      CompositionEntry   `json:"diluent"`
	OverComposed bool               `json:"over_composed"`
}

// NewFormulation creates an empty formulation with the given capacity.
// The diluent material fills the last slot.
func NewFormulation(capacity int, diluent Material) *Formulation {
	if capacity < 2 {
		capacity = DefaultSlots
	}
	entries := make([]CompositionEntry, capacity-1)
	for i := range entries {
		entries[i] = CompositionEntry{Slot: i + 1, Group: GroupOf(i+1, capacity)}
	}
	return &Formulation{
		Entries: entries,
		Diluent: CompositionEntry{
			Slot:       capacity,
			Name:       diluent.Name,
			Attributes: diluent.Attributes.Clone(),
			Source:     SourceCatalog,
			Group:      GroupDiluent,
			Percentage: 100,
		},
	}
}

// Capacity returns the total number of slots, diluent included.
func (f *Formulation) Capacity() int {
	return len(f.Entries) + 1
}

// MaterialTotal returns the sum of all material percentages, diluent excluded.
func (f *Formulation) MaterialTotal() float64 {
	var total float64
	for _, e := range f.Entries {
		total += e.Percentage
	}
	return total
}

// Entry returns a pointer to the material entry at the 1-based slot.
func (f *Formulation) Entry(slot int) (*CompositionEntry, bool) {
	if slot < 1 || slot > len(f.Entries) {
		return nil, false
	}
	return &f.Entries[slot-1], true
}

// ActiveEntries returns the material entries with a positive percentage.
func (f *Formulation) ActiveEntries() []CompositionEntry {
	active := make([]CompositionEntry, 0, len(f.Entries))
	for _, e := range f.Entries {
		if e.Active() {
			active = append(active, e)
		}
	}
	return active
}

// Clone returns a deep copy of the formulation.
func (f *Formulation) Clone() *Formulation {
	entries := make([]CompositionEntry, len(f.Entries))
	for i, e := range f.Entries {
		e.Attributes = e.Attributes.Clone()
		entries[i] = e
	}
	diluent := f.Diluent
	diluent.Attributes = f.Diluent.Attributes.Clone()
	return &Formulation{Entries: entries, Diluent: diluent, OverComposed: f.OverComposed}
}

// Reset clears every material slot.
func (f *Formulation) Reset() {
	capacity := f.Capacity()
	for i := range f.Entries {
		f.Entries[i] = CompositionEntry{Slot: i + 1, Group: GroupOf(i+1, capacity)}
	}
	f.Diluent.Percentage = 100
	f.OverComposed = false
}

var juiceKeywords = []string{"농축", "과즙", "concentrate", "juice"}

// IsJuiceName reports whether a raw material name denotes a juice or concentrate.
func IsJuiceName(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range juiceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
