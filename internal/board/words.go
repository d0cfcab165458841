package board

import (
	"strings"

	"letterlinks/internal/domain"
)

// minWordLength is the shortest run that counts as a word
const minWordLength = 2

// ExtractWords finds every maximal run of two or more tiles, rows first, then columns.
// Runs holding an unresolved wildcard are returned too; callers check Pending.
func ExtractWords(placed []domain.PlacedTile) []domain.WordCandidate {
	var grid [domain.BoardSize][domain.BoardSize]*domain.PlacedTile
	for i := range placed {
		p := &placed[i]
		if p.Position.InBounds() {
			grid[p.Position.Row][p.Position.Col] = p
		}
	}

	var words []domain.WordCandidate
	for row := 0; row < domain.BoardSize; row++ {
		words = appendRuns(words, domain.Horizontal, func(i int) *domain.PlacedTile {
			return grid[row][i]
		})
	}
	for col := 0; col < domain.BoardSize; col++ {
		words = appendRuns(words, domain.Vertical, func(i int) *domain.PlacedTile {
			return grid[i][col]
		})
	}
	return words
}

// appendRuns scans one line of the board, where at returns the tile at an index along the line.
func appendRuns(words []domain.WordCandidate, dir domain.Direction, at func(i int) *domain.PlacedTile) []domain.WordCandidate {
	var run []domain.PlacedTile
	flush := func() {
		if len(run) >= minWordLength {
			words = append(words, newCandidate(run, dir))
		}
		run = nil
	}
	for i := 0; i < domain.BoardSize; i++ {
		t := at(i)
		if t == nil {
			flush()
			continue
		}
		run = append(run, *t)
	}
	flush()
	return words
}

// newCandidate builds a word from a run of tiles.
// Letters is empty when the run holds an unresolved wildcard.
func newCandidate(run []domain.PlacedTile, dir domain.Direction) domain.WordCandidate {
	w := domain.WordCandidate{
		Tiles:     run,
		Direction: dir,
	}
	if w.Pending() {
		return w
	}
	var sb strings.Builder
	for _, t := range run {
		r, _ := t.Letter()
		sb.WriteRune(r)
	}
	w.Letters = sb.String()
	return w
}
