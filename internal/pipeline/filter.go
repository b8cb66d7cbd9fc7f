package pipeline

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter narrows the candidates shown on the board. Zero values disable a
// criterion.
type Filter struct {
	// Query is matched case-insensitively against name, email and skills.
	Query string `json:"q,omitempty"`
	// Source must equal the candidate source exactly. "all" disables it.
	Source string `json:"source,omitempty"`
	// MinRating keeps candidates rated at or above the threshold.
	MinRating int `json:"min_rating,omitempty"`
}

// IsZero reports whether f keeps every candidate.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && (f.Source == "" || f.Source == "all") && f.MinRating <= 0
}

// Matcher compiles f into a predicate.
func (f Filter) Matcher() func(Candidate) bool {
	folder := cases.Fold()
	query := folder.String(strings.TrimSpace(f.Query))
	source := f.Source
	if source == "all" {
		source = ""
	}
	minRating := f.MinRating

	return func(c Candidate) bool {
		if source != "" && c.Source != source {
			return false
		}
		if c.Rating < minRating {
			return false
		}
		if query == "" {
			return true
		}
		if strings.Contains(folder.String(c.Name), query) || strings.Contains(folder.String(c.Email), query) {
			return true
		}
		for _, skill := range c.Skills {
			if strings.Contains(folder.String(skill), query) {
				return true
			}
		}
		return false
	}
}

// Filter returns a read-only view of p keeping only matching candidates in
// each stage. p itself is left untouched.
func (p *Pipeline) Filter(f Filter) *Pipeline {
	return p.Select(f.Matcher())
}

// Select returns a read-only view of p filtered by an arbitrary predicate.
func (p *Pipeline) Select(keep func(Candidate) bool) *Pipeline {
	view := &Pipeline{
		stages:     p.stages,
		stageIndex: p.stageIndex,
		buckets:    make(map[string][]Candidate, len(p.buckets)),
		duplicates: p.duplicates,
		readOnly:   true,
		now:        p.now,
	}
	for id, bucket := range p.buckets {
		kept := []Candidate{}
		for _, c := range bucket {
			if keep(c) {
				kept = append(kept, c.clone())
			}
		}
		view.buckets[id] = kept
	}
	for _, c := range p.unassigned {
		if keep(c) {
			view.unassigned = append(view.unassigned, c.clone())
		}
	}
	return view
}
