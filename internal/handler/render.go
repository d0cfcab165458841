package handler

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"

	"letterlinks/internal/achievement"
	"letterlinks/internal/board"
	"letterlinks/internal/domain"
	"letterlinks/internal/service"
)

var (
	errBadCell   = errors.New("cells look like a1 to e5")
	errBadRack   = errors.New("rack tiles are numbered from 1")
	errBadLetter = errors.New("send a single letter from A to Z")
)

// parseCell parses a cell name such as "c3"
func parseCell(s string) (domain.Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return domain.Position{}, errBadCell
	}
	pos := domain.Position{Col: int(s[0] - 'a'), Row: int(s[1] - '1')}
	if !pos.InBounds() {
		return domain.Position{}, errBadCell
	}
	return pos, nil
}

// parseRackIndex parses a 1-based rack number
func parseRackIndex(s string, rackSize int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > rackSize {
		return 0, errBadRack
	}
	return n - 1, nil
}

// parseLetter parses a single letter, in any case
func parseLetter(s string) (rune, error) {
	r := []rune(strings.TrimSpace(s))
	if len(r) != 1 {
		return 0, errBadLetter
	}
	letter := unicode.ToUpper(r[0])
	if !domain.IsLetter(letter) {
		return 0, errBadLetter
	}
	return letter, nil
}

// userMessage turns an error into text for the player
func userMessage(err error) string {
	switch {
	case errors.Is(err, board.ErrOutOfBounds), errors.Is(err, errBadCell):
		return "That cell is not on the board. Cells go from a1 to e5."
	case errors.Is(err, board.ErrCellOccupied):
		return "That cell already has a tile."
	case errors.Is(err, board.ErrCellEmpty):
		return "There is no tile on that cell."
	case errors.Is(err, board.ErrTileNotInRack), errors.Is(err, errBadRack):
		return "There is no such tile in your rack."
	case errors.Is(err, board.ErrNotWildcard):
		return "Only wildcards can change their letter."
	case errors.Is(err, board.ErrInvalidLetter), errors.Is(err, errBadLetter):
		return "Send a single letter from A to Z."
	case errors.Is(err, board.ErrNothingToShuffle):
		return "Not enough tiles left to shuffle."
	case errors.Is(err, board.ErrBoardEmpty):
		return "The board is already empty."
	case errors.Is(err, service.ErrAlreadyCompleted):
		return "You already finished today's board. Come back tomorrow!"
	case errors.Is(err, service.ErrNotSubmittable):
		return "The board is not ready to submit yet."
	}
	return "Something went wrong. Please try again later."
}

// cellLabel is what an empty cell shows
func cellLabel(pos domain.Position, squares domain.SquareMap) string {
	if pos.IsCenter() {
		return "★"
	}
	if kind, ok := squares.At(pos); ok {
		return kind.Label()
	}
	return "·"
}

// renderGrid draws the board as a monospace grid
func renderGrid(v *service.View) string {
	squares := domain.NewSquareMap(v.Squares)
	tiles := make(map[domain.Position]domain.PlacedTile, len(v.Placed))
	for _, p := range v.Placed {
		tiles[p.Position] = p
	}

	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < domain.BoardSize; col++ {
		fmt.Fprintf(&sb, " %c ", 'a'+col)
	}
	sb.WriteString("\n")
	for row := 0; row < domain.BoardSize; row++ {
		fmt.Fprintf(&sb, "%d  ", row+1)
		for col := 0; col < domain.BoardSize; col++ {
			pos := domain.Position{Row: row, Col: col}
			label := cellLabel(pos, squares)
			if t, ok := tiles[pos]; ok {
				label = tileLabel(t)
			}
			fmt.Fprintf(&sb, "%-3s", label)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// tileLabel shows a placed tile: its letter, '?' for an unresolved wildcard,
// a lowercase letter for a resolved one.
func tileLabel(t domain.PlacedTile) string {
	switch t.WildState() {
	case domain.WildUnresolved:
		return "?"
	case domain.WildResolved:
		return string(unicode.ToLower(t.Assigned))
	}
	return string(t.Tile.Symbol)
}

// renderRack lists the rack with 1-based numbers
func renderRack(rack []domain.LetterTile) string {
	if len(rack) == 0 {
		return "Rack: empty"
	}
	parts := make([]string, len(rack))
	for i, t := range rack {
		label := t.String()
		if t.Powerup {
			label += "⚡"
		}
		parts[i] = fmt.Sprintf("%d:%s", i+1, label)
	}
	return "Rack: " + strings.Join(parts, " ")
}

// renderBoard builds the full board message
func renderBoard(v *service.View) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📅 <b>%s</b>\n\n", v.Day.Date.Format("Mon, Jan 2 2006"))
	sb.WriteString("<pre>")
	sb.WriteString(html.EscapeString(renderGrid(v)))
	sb.WriteString("</pre>\n")

	if !v.Completed {
		sb.WriteString(html.EscapeString(renderRack(v.Rack)))
		sb.WriteString("\n")
	}

	if words := renderWords(v.Result); words != "" {
		sb.WriteString("\n")
		sb.WriteString(words)
	}

	if !v.Completed {
		for _, e := range v.Result.Errors {
			fmt.Fprintf(&sb, "\n⚠️ %s", html.EscapeString(e))
		}
		if len(v.Result.Isolated) > 0 {
			cells := make([]string, len(v.Result.Isolated))
			for i, p := range v.Result.Isolated {
				cells[i] = p.String()
			}
			fmt.Fprintf(&sb, "\nDisconnected: %s", strings.Join(cells, ", "))
		}
		if len(v.Result.Errors) > 0 {
			sb.WriteString("\n")
		}
	}

	if v.Completed {
		fmt.Fprintf(&sb, "\n🏁 Finished with <b>%d</b> points. New board tomorrow!", v.Score)
	} else {
		fmt.Fprintf(&sb, "\nScore: <b>%d</b>", v.Score)
	}

	if unlocked := renderUnlocked(v.NewAchievements); unlocked != "" {
		sb.WriteString("\n\n")
		sb.WriteString(unlocked)
	}
	return sb.String()
}

// renderWords lists valid, invalid and pending words
func renderWords(r domain.ValidationResult) string {
	var sb strings.Builder
	for _, w := range r.ValidWords {
		fmt.Fprintf(&sb, "✅ %s +%d\n", w.Letters, w.Score)
	}
	for _, w := range r.InvalidWords {
		fmt.Fprintf(&sb, "❌ %s\n", w.Letters)
	}
	for _, w := range r.PendingWords {
		fmt.Fprintf(&sb, "⏳ %s\n", w.Display())
	}
	return sb.String()
}

// renderUnlocked announces newly unlocked achievements
func renderUnlocked(ids []domain.AchievementID) string {
	var lines []string
	for _, id := range ids {
		a, ok := achievement.Lookup(id)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s <b>Achievement unlocked!</b> %s: %s", a.Icon, a.Name, a.Description))
	}
	return strings.Join(lines, "\n")
}

// renderStats builds the stats and achievements message
func renderStats(p *domain.Progress) string {
	var sb strings.Builder
	s := p.Stats

	sb.WriteString("📊 <b>Your stats</b>\n\n")
	fmt.Fprintf(&sb, "Games played: %d\n", s.GamesPlayed)
	fmt.Fprintf(&sb, "Highest score: %d\n", s.HighestScore)
	fmt.Fprintf(&sb, "Tiles placed: %d\n", s.TotalTilesPlaced)
	fmt.Fprintf(&sb, "Words on the board: %d\n", s.WordsFormed)
	if s.LongestWord != "" {
		fmt.Fprintf(&sb, "Longest word: %s\n", s.LongestWord)
	}
	if s.HighestScoringWord.Word != "" {
		fmt.Fprintf(&sb, "Best word: %s (%d)\n", s.HighestScoringWord.Word, s.HighestScoringWord.Score)
	}

	sb.WriteString("\n🏆 <b>Achievements</b>\n")
	for _, a := range achievement.Catalog() {
		mark := "🔒"
		if p.IsUnlocked(a.ID) {
			mark = a.Icon
		}
		fmt.Fprintf(&sb, "%s %s - %s\n", mark, a.Name, a.Description)
	}
	return sb.String()
}
