package domain

import "strings"

// Direction is the orientation of a word on the board
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// WordCandidate is a maximal run of two or more adjacent tiles in one row or column
type WordCandidate struct {
	Letters   string
	Tiles     []PlacedTile
	Direction Direction
	// Score is only set for valid words
	Score int
}

// Pending reports whether the run holds a wildcard without a chosen letter
func (w WordCandidate) Pending() bool {
	for _, t := range w.Tiles {
		if t.WildState() == WildUnresolved {
			return true
		}
	}
	return false
}

// Display returns the word text with '?' for unresolved wildcards
func (w WordCandidate) Display() string {
	var sb strings.Builder
	for _, t := range w.Tiles {
		if r, ok := t.Letter(); ok {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('?')
		}
	}
	return sb.String()
}

// ValidationResult is the outcome of validating a board
type ValidationResult struct {
	ValidWords   []WordCandidate
	InvalidWords []WordCandidate
	PendingWords []WordCandidate
	Errors       []string
	// Isolated holds tiles outside the first connected group
	Isolated    []Position
	Submittable bool
	Score       int
}
