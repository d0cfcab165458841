// Package achievement decides which milestones a board unlocks.
package achievement

import (
	"letterlinks/internal/domain"
)

const (
	FirstGame    domain.AchievementID = "firstGame"
	ScoreBreaker domain.AchievementID = "scoreBreaker"
	WordMaster   domain.AchievementID = "wordMaster"
	LongWord     domain.AchievementID = "longWord"
	PerfectBoard domain.AchievementID = "perfectBoard"
	HighScorer   domain.AchievementID = "highScorer"
	AllSpecials  domain.AchievementID = "allSpecials"
	WildMaster   domain.AchievementID = "wildMaster"
)

// Thresholds
const (
	ScoreBreakerPoints = 200
	WordMasterWords    = 8
	LongWordLetters    = 5
	HighScorerPoints   = 30
)

// Achievement describes a milestone for display
type Achievement struct {
	ID          domain.AchievementID
	Name        string
	Description string
	Icon        string
	Order       int
}

var catalog = []Achievement{
	{ID: FirstGame, Name: "First Game", Description: "Complete your first game", Icon: "🎮", Order: 1},
	{ID: ScoreBreaker, Name: "Score Breaker", Description: "Score over 200 points", Icon: "🏆", Order: 2},
	{ID: WordMaster, Name: "Word Master", Description: "Form at least 8 words in one game", Icon: "📚", Order: 3},
	{ID: LongWord, Name: "Logophile", Description: "Form a word with 5+ letters", Icon: "📏", Order: 4},
	{ID: PerfectBoard, Name: "Perfect Board", Description: "Use all your tiles", Icon: "✨", Order: 5},
	{ID: HighScorer, Name: "High Scorer", Description: "Score 30+ points in a single word", Icon: "🌟", Order: 6},
	{ID: AllSpecials, Name: "Bonus Hunter", Description: "Use all special squares", Icon: "🎯", Order: 7},
	{ID: WildMaster, Name: "Wild Master", Description: "Use all wildcards", Icon: "🃏", Order: 8},
}

// Catalog returns every achievement in display order
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id
func Lookup(id domain.AchievementID) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// State is everything the evaluator looks at
type State struct {
	// Completed is set once the board was submitted
	Completed  bool
	Score      int
	ValidWords []domain.WordCandidate
	Placed     []domain.PlacedTile
	Rack       []domain.LetterTile
	Squares    []domain.SpecialSquare
}

// Unlocked reports whether an achievement is already unlocked
type Unlocked interface {
	IsUnlocked(id domain.AchievementID) bool
}

// Evaluate returns the achievements the state earns that are not unlocked yet, in display order.
func Evaluate(state State, unlocked Unlocked) []domain.AchievementID {
	var ids []domain.AchievementID
	for _, a := range catalog {
		if unlocked != nil && unlocked.IsUnlocked(a.ID) {
			continue
		}
		if earned(a.ID, state) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func earned(id domain.AchievementID, s State) bool {
	switch id {
	case FirstGame:
		return s.Completed
	case ScoreBreaker:
		return s.Score >= ScoreBreakerPoints
	case WordMaster:
		return len(s.ValidWords) >= WordMasterWords
	case LongWord:
		for _, w := range s.ValidWords {
			if len(w.Letters) >= LongWordLetters {
				return true
			}
		}
	case PerfectBoard:
		return len(s.Rack) == 0 && len(s.Placed) > 0
	case HighScorer:
		for _, w := range s.ValidWords {
			if w.Score >= HighScorerPoints {
				return true
			}
		}
	case AllSpecials:
		return coversAllKinds(s.Placed, s.Squares)
	case WildMaster:
		return allWildcardsUsed(s.Placed, s.Rack)
	}
	return false
}

func coversAllKinds(placed []domain.PlacedTile, squares []domain.SpecialSquare) bool {
	sq := domain.NewSquareMap(squares)
	covered := make(map[domain.SquareKind]bool)
	for _, p := range placed {
		if kind, ok := sq.At(p.Position); ok {
			covered[kind] = true
		}
	}
	for _, kind := range domain.SquareKinds {
		if !covered[kind] {
			return false
		}
	}
	return true
}

// allWildcardsUsed needs at least one wildcard, none left in the rack and every placed one resolved
func allWildcardsUsed(placed []domain.PlacedTile, rack []domain.LetterTile) bool {
	for _, t := range rack {
		if t.IsWildcard() {
			return false
		}
	}
	used := 0
	for _, p := range placed {
		switch p.WildState() {
		case domain.WildUnresolved:
			return false
		case domain.WildResolved:
			used++
		}
	}
	return used > 0
}
