package board

import (
	"errors"

	"letterlinks/internal/domain"
)

var (
	ErrOutOfBounds      = errors.New("cell is off the board")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrCellEmpty        = errors.New("cell is empty")
	ErrTileNotInRack    = errors.New("tile is not in the rack")
	ErrNotWildcard      = errors.New("tile is not a wildcard")
	ErrInvalidLetter    = errors.New("letter must be between A and Z")
	ErrNothingToShuffle = errors.New("not enough tiles to shuffle")
	ErrBoardEmpty       = errors.New("board is already empty")
	ErrDuplicateTile    = errors.New("tile appears more than once")
)

// Intner is a source of random indexes, such as *rand.Rand
type Intner interface {
	Intn(n int) int
}

// Ledger owns the rack and the tiles placed on the board.
// Its methods are the only way to change either; a failed call changes nothing.
// A Ledger is not safe for concurrent use.
type Ledger struct {
	rack      []domain.LetterTile
	placed    []domain.PlacedTile
	firstMove bool
}

// NewLedger creates a ledger holding the rack with an empty board
func NewLedger(rack []domain.LetterTile) *Ledger {
	r := make([]domain.LetterTile, len(rack))
	copy(r, rack)
	return &Ledger{rack: r}
}

// Restore creates a ledger from a saved rack and board.
// Every tile id must appear once across the rack and the board.
func Restore(rack []domain.LetterTile, placed []domain.PlacedTile) (*Ledger, error) {
	seen := make(map[domain.TileID]bool, len(rack)+len(placed))
	for _, t := range rack {
		if seen[t.ID] {
			return nil, ErrDuplicateTile
		}
		seen[t.ID] = true
	}

	l := NewLedger(rack)
	for _, p := range placed {
		if seen[p.Tile.ID] {
			return nil, ErrDuplicateTile
		}
		seen[p.Tile.ID] = true
		if !p.Position.InBounds() {
			return nil, ErrOutOfBounds
		}
		if _, ok := l.find(p.Position); ok {
			return nil, ErrCellOccupied
		}
		if p.Assigned != 0 && (!p.Tile.IsWildcard() || !domain.IsLetter(p.Assigned)) {
			return nil, ErrInvalidLetter
		}
		l.placed = append(l.placed, p)
		if p.Position.IsCenter() {
			l.firstMove = true
		}
	}
	return l, nil
}

// Rack returns a copy of the rack in display order
func (l *Ledger) Rack() []domain.LetterTile {
	r := make([]domain.LetterTile, len(l.rack))
	copy(r, l.rack)
	return r
}

// RackSize returns the number of tiles left in the rack
func (l *Ledger) RackSize() int {
	return len(l.rack)
}

// Placed returns a copy of the placed tiles in placement order
func (l *Ledger) Placed() []domain.PlacedTile {
	p := make([]domain.PlacedTile, len(l.placed))
	copy(p, l.placed)
	return p
}

// TileAt returns the tile at pos, if any
func (l *Ledger) TileAt(pos domain.Position) (domain.PlacedTile, bool) {
	i, ok := l.find(pos)
	if !ok {
		return domain.PlacedTile{}, false
	}
	return l.placed[i], true
}

// FirstMoveSatisfied reports whether the center cell has been played
func (l *Ledger) FirstMoveSatisfied() bool {
	return l.firstMove
}

// Place moves the rack tile with the id onto the board
func (l *Ledger) Place(id domain.TileID, pos domain.Position) error {
	if !pos.InBounds() {
		return ErrOutOfBounds
	}
	if _, ok := l.find(pos); ok {
		return ErrCellOccupied
	}
	idx := -1
	for i, t := range l.rack {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrTileNotInRack
	}
	t := l.rack[idx]
	l.rack = append(l.rack[:idx], l.rack[idx+1:]...)
	l.placed = append(l.placed, domain.NewPlacedTile(t, pos))
	if pos.IsCenter() {
		l.firstMove = true
	}
	return nil
}

// Move moves a placed tile to another empty cell, keeping any wildcard letter
func (l *Ledger) Move(from, to domain.Position) error {
	if !to.InBounds() {
		return ErrOutOfBounds
	}
	i, ok := l.find(from)
	if !ok {
		return ErrCellEmpty
	}
	if _, ok := l.find(to); ok {
		return ErrCellOccupied
	}
	l.placed[i].Position = to
	if to.IsCenter() {
		l.firstMove = true
	}
	return nil
}

// Remove returns the tile at pos to the end of the rack.
// A wildcard forgets its chosen letter.
func (l *Ledger) Remove(pos domain.Position) (domain.LetterTile, error) {
	i, ok := l.find(pos)
	if !ok {
		return domain.LetterTile{}, ErrCellEmpty
	}
	t := l.placed[i].Tile
	if pos.IsCenter() && len(l.placed) == 1 {
		l.firstMove = false
	}
	l.placed = append(l.placed[:i], l.placed[i+1:]...)
	l.rack = append(l.rack, t)
	return t, nil
}

// ResolveWildcard sets the letter shown by the wildcard at pos
func (l *Ledger) ResolveWildcard(pos domain.Position, letter rune) error {
	i, ok := l.find(pos)
	if !ok {
		return ErrCellEmpty
	}
	if !l.placed[i].Tile.IsWildcard() {
		return ErrNotWildcard
	}
	if !domain.IsLetter(letter) {
		return ErrInvalidLetter
	}
	l.placed[i].Assigned = letter
	return nil
}

// Shuffle reorders the rack with a Fisher-Yates shuffle
func (l *Ledger) Shuffle(r Intner) error {
	if len(l.rack) <= 1 {
		return ErrNothingToShuffle
	}
	for i := len(l.rack) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		l.rack[i], l.rack[j] = l.rack[j], l.rack[i]
	}
	return nil
}

// Clear returns every placed tile to the rack in placement order
func (l *Ledger) Clear() error {
	if len(l.placed) == 0 {
		return ErrBoardEmpty
	}
	for _, p := range l.placed {
		l.rack = append(l.rack, p.Tile)
	}
	l.placed = nil
	l.firstMove = false
	return nil
}

// find returns the index of the placed tile at pos
func (l *Ledger) find(pos domain.Position) (int, bool) {
	for i, p := range l.placed {
		if p.Position == pos {
			return i, true
		}
	}
	return -1, false
}
