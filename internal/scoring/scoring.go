// Package scoring validates a board and scores its words.
package scoring

import (
	"letterlinks/internal/board"
	"letterlinks/internal/domain"
)

const (
	// CompletionBonus is added when every tile was used
	CompletionBonus = 50
	// CompletionMinTiles is the number of placed tiles the completion bonus needs
	CompletionMinTiles = 18
)

// Validation messages shown to players
const (
	MsgNoTiles      = "Place some tiles on the board first"
	MsgCenterEmpty  = "The center star square must be occupied before submitting"
	MsgDisconnected = "All tiles must be connected - no isolated words"
)

// Layout is a read-only view of a ledger
type Layout interface {
	Placed() []domain.PlacedTile
	RackSize() int
}

// Dictionary decides whether a word is valid
type Dictionary interface {
	IsValid(word string) bool
}

// Validate checks the structure of the board, classifies its words and scores them.
// It does not modify the layout, so repeated calls give the same result.
func Validate(layout Layout, squares []domain.SpecialSquare, dict Dictionary) domain.ValidationResult {
	placed := layout.Placed()
	result := domain.ValidationResult{}

	structural := true
	if len(placed) == 0 {
		result.Errors = append(result.Errors, MsgNoTiles)
		structural = false
	} else if !centerOccupied(placed) {
		result.Errors = append(result.Errors, MsgCenterEmpty)
		structural = false
	}

	if len(placed) > 1 {
		groups := board.FindConnectedGroups(placed)
		if len(groups) > 1 {
			result.Errors = append(result.Errors, MsgDisconnected)
			for _, g := range groups[1:] {
				for _, i := range g {
					result.Isolated = append(result.Isolated, placed[i].Position)
				}
			}
			structural = false
		}
	}

	sq := domain.NewSquareMap(squares)
	for _, w := range board.ExtractWords(placed) {
		switch {
		case w.Pending():
			result.PendingWords = append(result.PendingWords, w)
		case dict.IsValid(w.Letters):
			w.Score = WordScore(w, sq)
			result.ValidWords = append(result.ValidWords, w)
		default:
			result.InvalidWords = append(result.InvalidWords, w)
		}
	}

	result.Score = TotalScore(result.ValidWords, placed, layout.RackSize())
	result.Submittable = structural && len(result.InvalidWords) == 0
	return result
}

// WordScore scores a word: letter values times letter multipliers, summed,
// times every word multiplier crossed, doubled again when a powerup tile is part of the word.
func WordScore(w domain.WordCandidate, squares domain.SquareMap) int {
	sum := 0
	wordMultiplier := 1
	powerup := false
	for _, t := range w.Tiles {
		letterMultiplier := 1
		if kind, ok := squares.At(t.Position); ok {
			letterMultiplier = kind.LetterMultiplier()
			wordMultiplier *= kind.WordMultiplier()
		}
		sum += t.Tile.Value() * letterMultiplier
		if t.Tile.Powerup {
			powerup = true
		}
	}
	score := sum * wordMultiplier
	if powerup {
		score *= 2
	}
	return score
}

// TotalScore adds the valid word scores, the lone tile bonus and the completion bonus
func TotalScore(valid []domain.WordCandidate, placed []domain.PlacedTile, rackSize int) int {
	total := 0
	for _, w := range valid {
		total += w.Score
	}
	if len(placed) == 1 {
		total += placed[0].Tile.Value()
	}
	if rackSize == 0 && len(placed) >= CompletionMinTiles {
		total += CompletionBonus
	}
	return total
}

func centerOccupied(placed []domain.PlacedTile) bool {
	for _, p := range placed {
		if p.Position.IsCenter() {
			return true
		}
	}
	return false
}
