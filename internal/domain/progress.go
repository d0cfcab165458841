package domain

import "time"

// AchievementID names a milestone a player can unlock
type AchievementID string

// WordScore pairs a word with the points it earned
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Stats holds cumulative player statistics
type Stats struct {
	GamesPlayed        int       `json:"gamesPlayed"`
	HighestScore       int       `json:"highestScore"`
	TotalTilesPlaced   int       `json:"totalTilesPlaced"`
	WordsFormed        int       `json:"wordsFormed"`
	LongestWord        string    `json:"longestWord"`
	HighestScoringWord WordScore `json:"highestScoringWord"`
}

// Observe folds a validation pass into the running stats
func (s *Stats) Observe(result ValidationResult) {
	s.WordsFormed = len(result.ValidWords)
	for _, w := range result.ValidWords {
		if len(w.Letters) > len(s.LongestWord) {
			s.LongestWord = w.Letters
		}
		if w.Score > s.HighestScoringWord.Score {
			s.HighestScoringWord = WordScore{Word: w.Letters, Score: w.Score}
		}
	}
}

// Complete records a finished game
func (s *Stats) Complete(score int) {
	s.GamesPlayed++
	if score > s.HighestScore {
		s.HighestScore = score
	}
}

// Progress is the cross-session snapshot of a player
type Progress struct {
	Stats        Stats                  `json:"stats"`
	Achievements map[AchievementID]bool `json:"achievements"`
}

// NewProgress returns an empty progress snapshot
func NewProgress() *Progress {
	return &Progress{Achievements: make(map[AchievementID]bool)}
}

// IsUnlocked reports whether the achievement is unlocked
func (p *Progress) IsUnlocked(id AchievementID) bool {
	return p.Achievements[id]
}

// Unlock marks the achievements unlocked and returns the ones that were not already.
// Unlocked achievements are never locked again.
func (p *Progress) Unlock(ids ...AchievementID) []AchievementID {
	if p.Achievements == nil {
		p.Achievements = make(map[AchievementID]bool)
	}
	var fresh []AchievementID
	for _, id := range ids {
		if p.Achievements[id] {
			continue
		}
		p.Achievements[id] = true
		fresh = append(fresh, id)
	}
	return fresh
}

// Completion is the saved state of a submitted daily board
type Completion struct {
	Score       int          `json:"score"`
	Date        string       `json:"date"`
	Placed      []PlacedTile `json:"placedTiles"`
	Rack        []LetterTile `json:"rackLetters"`
	CompletedAt time.Time    `json:"completedAt"`
}
