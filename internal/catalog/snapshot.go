// Package catalog holds the reference material, specification and guide data
// as immutable snapshots. A Store swaps snapshots atomically so readers never lock.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// DefaultDiluentPrice is the unit price of water when the catalog defines no diluent.
const DefaultDiluentPrice = 2.0

var (
	// ErrEmptyName is returned when a catalog record has no name or beverage type.
	ErrEmptyName = errors.New("catalog record without name")
	// ErrDuplicate is returned when two catalog records share a key.
	ErrDuplicate = errors.New("duplicate catalog record")
	// ErrInvalidRecord is returned when a record carries out-of-range values.
	ErrInvalidRecord = errors.New("invalid catalog record")
)

// Data is the raw content a snapshot is built from.
type Data struct {
	Diluent        *model.Material       `json:"diluent,omitempty"`
	Materials      []model.Material      `json:"materials"`
	Specifications []model.Specification `json:"specifications"`
	Guides         []model.GuideEntry    `json:"guides"`
}

// Snapshot is an immutable view of the catalog.
type Snapshot struct {
	source    string
	loadedAt  time.Time
	diluent   model.Material
	materials map[string]model.Material
	ordered   []model.Material
	specs     map[string]model.Specification
	specOrder []model.Specification
	guides    map[string][]model.GuideEntry
}

// DefaultDiluent returns plain water at DefaultDiluentPrice.
func DefaultDiluent() model.Material {
	return model.Material{
		Name:     "Water",
		Category: model.CategoryDiluent,
		Attributes: model.Attributes{
			Sugar:     model.Float(0),
			PH:        model.Float(7),
			Acidity:   model.Float(0),
			Sweetness: model.Float(0),
			Price:     model.Float(DefaultDiluentPrice),
		},
	}
}

// NewSnapshot validates data and indexes it. Material names match exactly.
func NewSnapshot(source string, data Data) (*Snapshot, error) {
	s := &Snapshot{
		source:    source,
		loadedAt:  time.Now(),
		diluent:   DefaultDiluent(),
		materials: make(map[string]model.Material, len(data.Materials)),
		ordered:   make([]model.Material, 0, len(data.Materials)),
		specs:     make(map[string]model.Specification, len(data.Specifications)),
		specOrder: make([]model.Specification, 0, len(data.Specifications)),
		guides:    make(map[string][]model.GuideEntry),
	}

	if data.Diluent != nil {
		d := *data.Diluent
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("diluent: %w", ErrEmptyName)
		}
		d.Category = model.CategoryDiluent
		d.Attributes = d.Attributes.Merge(DefaultDiluent().Attributes)
		s.diluent = d
	}

	for i, m := range data.Materials {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("material #%d: %w", i, ErrEmptyName)
		}
		if _, dup := s.materials[m.Name]; dup {
			return nil, fmt.Errorf("material %q: %w", m.Name, ErrDuplicate)
		}
		if m.PH != nil && (*m.PH < 0 || *m.PH > 14) {
			return nil, fmt.Errorf("material %q: pH %g: %w", m.Name, *m.PH, ErrInvalidRecord)
		}
		m.Attributes = m.Attributes.Clone()
		s.materials[m.Name] = m
		s.ordered = append(s.ordered, m)
	}
	sort.Slice(s.ordered, func(i, j int) bool { return s.ordered[i].Name < s.ordered[j].Name })

	for i, spec := range data.Specifications {
		if strings.TrimSpace(spec.BeverageType) == "" {
			return nil, fmt.Errorf("specification #%d: %w", i, ErrEmptyName)
		}
		if _, dup := s.specs[spec.BeverageType]; dup {
			return nil, fmt.Errorf("specification %q: %w", spec.BeverageType, ErrDuplicate)
		}
		if spec.SugarMax > 0 && spec.SugarMin > spec.SugarMax {
			return nil, fmt.Errorf("specification %q: sugar range: %w", spec.BeverageType, ErrInvalidRecord)
		}
		s.specs[spec.BeverageType] = spec
		s.specOrder = append(s.specOrder, spec)
	}
	sort.Slice(s.specOrder, func(i, j int) bool { return s.specOrder[i].BeverageType < s.specOrder[j].BeverageType })

	seen := make(map[string]struct{}, len(data.Guides))
	for _, g := range data.Guides {
		if g.BeverageType == "" || g.Slot < 1 {
			return nil, fmt.Errorf("guide %q: %w", g.Key(), ErrInvalidRecord)
		}
		if _, dup := seen[g.Key()]; dup {
			return nil, fmt.Errorf("guide %q: %w", g.Key(), ErrDuplicate)
		}
		seen[g.Key()] = struct{}{}
		k := guideKey(g.BeverageType, g.Flavor)
		s.guides[k] = append(s.guides[k], g)
	}
	for _, rows := range s.guides {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Slot < rows[j].Slot })
	}

	return s, nil
}

// Empty returns a snapshot with no records and the default diluent.
func Empty() *Snapshot {
	s, _ := NewSnapshot("empty", Data{})
	return s
}

func guideKey(beverageType, flavor string) string {
	return baseType(beverageType) + "\x1f" + flavor
}

// baseType drops a parenthesised qualifier: "fruit_drink (NFC)" is "fruit_drink".
func baseType(beverageType string) string {
	return strings.TrimSpace(strings.SplitN(beverageType, "(", 2)[0])
}

// Material looks up a material by exact name.
func (s *Snapshot) Material(name string) (model.Material, bool) {
	m, ok := s.materials[name]
	if !ok {
		return model.Material{}, false
	}
	m.Attributes = m.Attributes.Clone()
	return m, true
}

// Materials returns every material sorted by name.
func (s *Snapshot) Materials() []model.Material {
	out := make([]model.Material, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Specification looks up the ranges for a beverage type.
// An exact match wins over the type with its qualifier dropped.
func (s *Snapshot) Specification(beverageType string) (model.Specification, bool) {
	if spec, ok := s.specs[beverageType]; ok {
		return spec, true
	}
	spec, ok := s.specs[baseType(beverageType)]
	return spec, ok
}

// Specifications returns every specification sorted by beverage type.
func (s *Snapshot) Specifications() []model.Specification {
	out := make([]model.Specification, len(s.specOrder))
	copy(out, s.specOrder)
	return out
}

// Guide returns the guide rows for a beverage type and flavor ordered by slot.
func (s *Snapshot) Guide(beverageType, flavor string) []model.GuideEntry {
	rows := s.guides[guideKey(beverageType, flavor)]
	out := make([]model.GuideEntry, len(rows))
	copy(out, rows)
	return out
}

// Diluent returns the diluent material.
func (s *Snapshot) Diluent() model.Material {
	d := s.diluent
	d.Attributes = d.Attributes.Clone()
	return d
}

// Len returns the number of materials.
func (s *Snapshot) Len() int {
	return len(s.ordered)
}

// Source names where the snapshot was loaded from.
func (s *Snapshot) Source() string {
	return s.source
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}
