package model

import "fmt"

// Candidate is a proposed entry from an external source such as a stored guide
// or a generated recommendation.
//
// @Description Proposed formulation entry
type Candidate struct {
	Slot       int     `json:"slot" example:"1"`
	Name       string  `json:"name" example:"Apple concentrate 70Bx"`
	Percentage float64 `json:"percentage" example:"10"`
}

// CandidateWarning describes a candidate that did not match the catalog.
//
// @Description Unmatched candidate with suggestions
type CandidateWarning struct {
	Candidate   Candidate `json:"candidate"`
	Suggestions []string  `json:"suggestions"`
	Message     string    `json:"message" example:"material not found in catalog"`
}

// AcceptedCandidate is a candidate whose name matched a catalog material exactly.
type AcceptedCandidate struct {
	Candidate Candidate `json:"candidate"`
	Material  Material  `json:"material"`
}

// ValidationReport is the outcome of validating a batch of candidates.
//
// @Description Candidate validation outcome
type ValidationReport struct {
	Accepted []AcceptedCandidate `json:"accepted"`
	Warnings []CandidateWarning  `json:"warnings"`
}

// GuideEntry is one stored guide row keyed by beverage type, flavor and slot.
type GuideEntry struct {
	BeverageType string  `json:"beverage_type" bson:"beverage_type"`
	Flavor       string  `json:"flavor" bson:"flavor"`
	Slot         int     `json:"slot" bson:"slot"`
	Name         string  `json:"name" bson:"name"`
	Percentage   float64 `json:"percentage" bson:"percentage"`
	CaseName     string  `json:"case_name,omitempty" bson:"case_name,omitempty"`
	CasePercent  float64 `json:"case_percentage,omitempty" bson:"case_percentage,omitempty"`
}

// Key returns the guide key in type_flavor_slot form.
func (g GuideEntry) Key() string {
	return fmt.Sprintf("%s_%s_%d", g.BeverageType, g.Flavor, g.Slot)
}

// Candidate converts the guide row into a candidate entry.
func (g GuideEntry) Candidate() Candidate {
	return Candidate{Slot: g.Slot, Name: g.Name, Percentage: g.Percentage}
}
