package model

import (
	"fmt"
	"sort"
)

// CategorySuggestion represents how likely a transaction belongs to a
// specific category, as judged by one or more signal generators.
type CategorySuggestion struct {
	CategoryName string
	Reason       string
	CategoryID   int64
	Confidence   float64
}

// Validate ensures the suggestion carries sane data.
func (s *CategorySuggestion) Validate() error {
	if s.CategoryID <= 0 {
		return fmt.Errorf("category id is required")
	}
	if s.Confidence < 0.0 || s.Confidence > 1.0 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %.2f", s.Confidence)
	}
	return nil
}

// Suggestions is a slice of CategorySuggestion that supports ranking.
type Suggestions []CategorySuggestion

// Len implements sort.Interface.
func (s Suggestions) Len() int { return len(s) }

// Less implements sort.Interface - higher confidence comes first.
func (s Suggestions) Less(i, j int) bool {
	if s[i].Confidence != s[j].Confidence {
		return s[i].Confidence > s[j].Confidence
	}
	// Equal confidence sorts by name for deterministic output
	return s[i].CategoryName < s[j].CategoryName
}

// Swap implements sort.Interface.
func (s Suggestions) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Sort orders the suggestions by confidence, highest first.
func (s Suggestions) Sort() { sort.Sort(s) }

// Top returns the highest-confidence suggestion, or nil if empty.
func (s Suggestions) Top() *CategorySuggestion {
	if len(s) == 0 {
		return nil
	}
	s.Sort()
	return &s[0]
}

// TopN returns the N highest-confidence suggestions.
func (s Suggestions) TopN(n int) Suggestions {
	if n <= 0 {
		return Suggestions{}
	}
	s.Sort()
	if n > len(s) {
		n = len(s)
	}
	out := make(Suggestions, n)
	copy(out, s[:n])
	return out
}
