package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/blend-service/internal/catalog"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
	"github.com/guttosm/blend-service/internal/metrics"
)

// ReferenceItem is one ingredient of an existing product's label, in label order.
type ReferenceItem struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// ReferenceMatch reports how one label ingredient was placed.
type ReferenceMatch struct {
	Slot    int          `json:"slot"`
	Input   string       `json:"input"`
	Matched string       `json:"matched,omitempty"`
	Source  model.Source `json:"source"`
}

// ReferenceResult is the rebuilt session plus the placement of every ingredient.
type ReferenceResult struct {
	Session *SessionState    `json:"session"`
	Matches []ReferenceMatch `json:"matches"`
}

var emptyLabelValues = map[string]bool{"": true, "—": true, "-": true, "0": true}

// ParseLabelLine parses a "name/percentage%/origin" label line. It reports
// false for placeholder lines. An unreadable percentage is taken as 0.
func ParseLabelLine(line string) (ReferenceItem, bool) {
	parts := strings.Split(line, "/")
	name := strings.TrimSpace(parts[0])
	if emptyLabelValues[name] {
		return ReferenceItem{}, false
	}

	item := ReferenceItem{Name: name}
	if len(parts) > 1 {
		raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(parts[1]), "%"))
		if pct, err := strconv.ParseFloat(raw, 64); err == nil {
			item.Percentage = pct
		}
	}
	return item, true
}

// ReferenceLookup rebuilds the session's formulation from a product label.
// Ingredients fill material slots in label order. Each name is matched
// exactly, then by its leading characters against the catalog; names with no
// match become custom entries resolved by inference.
func (s *FormulationServiceImpl) ReferenceLookup(ctx context.Context, id string, items []ReferenceItem) (*ReferenceResult, error) {
	for i, it := range items {
		if err := engine.ValidatePercentage(i+1, it.Name, it.Percentage); err != nil {
			return nil, err
		}
	}

	var matches []ReferenceMatch
	state, err := s.apply(id, func(sess *Session, snap *catalog.Snapshot) error {
		sess.form.Reset()
		matches = s.placeReference(sess.form, snap, items)
		log.Info().Str("session_id", sess.ID).Int("ingredients", len(matches)).Msg("Reference formulation loaded")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ReferenceResult{Session: state, Matches: matches}, nil
}

func (s *FormulationServiceImpl) placeReference(form *model.Formulation, snap *catalog.Snapshot, items []ReferenceItem) []ReferenceMatch {
	matches := make([]ReferenceMatch, 0, len(items))
	slot := 1
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if emptyLabelValues[name] {
			continue
		}
		entry, ok := form.Entry(slot)
		if !ok {
			break
		}

		m, found := snap.Material(name)
		if !found {
			m, found = engine.MatchPrefix(name, snap)
		}

		match := ReferenceMatch{Slot: slot, Input: name}
		if found {
			*entry = model.CompositionEntry{
				Slot:       slot,
				Name:       m.Name,
				Percentage: it.Percentage,
				Attributes: m.Attributes.Clone(),
				Source:     model.SourceCatalog,
				Group:      model.GroupOf(slot, form.Capacity()),
			}
			metrics.RecordMaterialResolution(string(model.SourceCatalog))
			match.Matched = m.Name
		} else {
			*entry = s.resolve(snap, slot, form.Capacity(), EntryInput{Name: name, Percentage: it.Percentage})
		}
		match.Source = entry.Source

		matches = append(matches, match)
		slot++
	}
	return matches
}
