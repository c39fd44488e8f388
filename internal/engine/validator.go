package engine

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// Catalog is the read-only material lookup the engine depends on.
type Catalog interface {
	Material(name string) (model.Material, bool)
	Materials() []model.Material
}

const (
	// DefaultPrefixRunes is the number of leading runes compared by the prefix scan.
	DefaultPrefixRunes = 4
	// DefaultMaxSuggestions caps "did you mean" suggestions per warning.
	DefaultMaxSuggestions = 5
	minSubstringRunes     = 2
)

// Validate checks externally sourced candidates against the catalog.
//
// Exact name matches are accepted. Anything else yields a warning carrying the
// original candidate plus prefix/substring suggestions. Candidates are never
// substituted; choosing a suggestion is the caller's decision.
func Validate(candidates []model.Candidate, catalog Catalog) model.ValidationReport {
	report := model.ValidationReport{
		Accepted: make([]model.AcceptedCandidate, 0, len(candidates)),
		Warnings: make([]model.CandidateWarning, 0),
	}

	for _, c := range candidates {
		if m, ok := catalog.Material(c.Name); ok {
			report.Accepted = append(report.Accepted, model.AcceptedCandidate{Candidate: c, Material: m})
			continue
		}
		report.Warnings = append(report.Warnings, model.CandidateWarning{
			Candidate:   c,
			Suggestions: Suggest(c.Name, catalog, DefaultMaxSuggestions),
			Message:     "material not found in catalog",
		})
	}
	return report
}

// Suggest returns catalog names that share a leading prefix with name or
// contain it (or are contained by it), ordered by name.
func Suggest(name string, catalog Catalog, limit int) []string {
	needle := normalizeForMatch(name)
	suggestions := make([]string, 0)
	if utf8.RuneCountInString(needle) < minSubstringRunes {
		return suggestions
	}
	prefix := leadingRunes(needle, DefaultPrefixRunes)

	for _, m := range catalog.Materials() {
		candidate := normalizeForMatch(m.Name)
		if candidate == "" {
			continue
		}
		if strings.HasPrefix(candidate, prefix) ||
			strings.Contains(candidate, needle) ||
			(utf8.RuneCountInString(candidate) >= minSubstringRunes && strings.Contains(needle, candidate)) {
			suggestions = append(suggestions, m.Name)
		}
	}

	sort.Strings(suggestions)
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// MatchPrefix returns the first catalog material, in name order, whose name
// contains the leading DefaultPrefixRunes runes of name. Reference lookups use
// it to pick a stand-in for a label ingredient; Validate never substitutes.
func MatchPrefix(name string, catalog Catalog) (model.Material, bool) {
	needle := leadingRunes(normalizeForMatch(name), DefaultPrefixRunes)
	if utf8.RuneCountInString(needle) < minSubstringRunes {
		return model.Material{}, false
	}

	materials := catalog.Materials()
	sort.Slice(materials, func(i, j int) bool { return materials[i].Name < materials[j].Name })
	for _, m := range materials {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			return m, true
		}
	}
	return model.Material{}, false
}

// normalizeForMatch lowercases and drops any parenthesised qualifier, e.g. "(65Bx)".
func normalizeForMatch(s string) string {
	if i := strings.IndexAny(s, "(（"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

func leadingRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
