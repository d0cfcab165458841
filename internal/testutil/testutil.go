package testutil

import (
	"strings"
	"time"

	"letterlinks/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// FixedClock returns a clock stuck at t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// WordList is a dictionary accepting exactly the given words
type WordList map[string]bool

// NewWordList creates a dictionary from words, in any case
func NewWordList(words ...string) WordList {
	w := make(WordList, len(words))
	for _, word := range words {
		w[strings.ToUpper(word)] = true
	}
	return w
}

// IsValid reports whether the word is in the list
func (w WordList) IsValid(word string) bool {
	return w[strings.ToUpper(word)]
}

// NewTestRack creates a rack spelling letters, with tile ids in order
func NewTestRack(letters string) []domain.LetterTile {
	rack := make([]domain.LetterTile, 0, len(letters))
	for i, r := range []rune(letters) {
		rack = append(rack, domain.LetterTile{ID: domain.TileID(i), Symbol: r})
	}
	return rack
}

// NewTestCompletion creates a completion with the tiles placed along row 2 from the center
func NewTestCompletion(date string, score int, word string) *domain.Completion {
	c := &domain.Completion{
		Score:       score,
		Date:        date,
		CompletedAt: time.Now(),
	}
	for i, tile := range NewTestRack(word) {
		c.Placed = append(c.Placed, domain.NewPlacedTile(tile, domain.Position{Row: 2, Col: 2 + i}))
	}
	return c
}
