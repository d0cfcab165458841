package domain

import (
	"encoding/json"
	"fmt"
)

// BoardSize is the number of rows and columns on the board
const BoardSize = 5

// Wildcard is the symbol of a tile with no intrinsic letter
const Wildcard = '*'

// letterValues holds the scrabble-like value of each tile symbol
var letterValues = map[rune]int{
	'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2, 'H': 4, 'I': 1,
	'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1, 'P': 3, 'Q': 10, 'R': 1,
	'S': 1, 'T': 1, 'U': 1, 'V': 4, 'W': 4, 'X': 8, 'Y': 4, 'Z': 10,
	Wildcard: 0,
}

// LetterValue returns the base value of a tile symbol
func LetterValue(symbol rune) int {
	return letterValues[symbol]
}

// IsLetter reports whether r is an uppercase A-Z letter
func IsLetter(r rune) bool {
	return 'A' <= r && r <= 'Z'
}

// TileID identifies a tile by its original draw position in the daily rack
type TileID int

// LetterTile is a tile drawn for the day
type LetterTile struct {
	ID      TileID `json:"id"`
	Symbol  rune   `json:"symbol"`
	Powerup bool   `json:"powerup,omitempty"`
}

// IsWildcard reports whether the tile is a wildcard
func (t LetterTile) IsWildcard() bool {
	return t.Symbol == Wildcard
}

// Value returns the base letter value. Wildcards are worth 0.
func (t LetterTile) Value() int {
	return LetterValue(t.Symbol)
}

// String returns the tile symbol
func (t LetterTile) String() string {
	return string(t.Symbol)
}

type letterTileJSON struct {
	ID      TileID `json:"id"`
	Symbol  string `json:"symbol"`
	Powerup bool   `json:"powerup,omitempty"`
}

// MarshalJSON writes the symbol as a one letter string
func (t LetterTile) MarshalJSON() ([]byte, error) {
	return json.Marshal(letterTileJSON{ID: t.ID, Symbol: string(t.Symbol), Powerup: t.Powerup})
}

func (t *LetterTile) UnmarshalJSON(data []byte) error {
	var v letterTileJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	symbol, err := parseSymbol(v.Symbol)
	if err != nil {
		return err
	}
	if symbol == 0 {
		return fmt.Errorf("tile %d has no symbol", v.ID)
	}
	*t = LetterTile{ID: v.ID, Symbol: symbol, Powerup: v.Powerup}
	return nil
}

// parseSymbol reads a one rune string. An empty string is 0.
func parseSymbol(s string) (rune, error) {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return 0, nil
	case 1:
		return runes[0], nil
	default:
		return 0, fmt.Errorf("invalid tile symbol %q", s)
	}
}

// Position is a cell on the board
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Center returns the center cell of the board
func Center() Position {
	return Position{Row: BoardSize / 2, Col: BoardSize / 2}
}

// InBounds reports whether the position lies on the board
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// IsCenter reports whether the position is the center cell
func (p Position) IsCenter() bool {
	return p == Center()
}

// String returns the cell name, column letter then row number (a1..e5)
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+rune(p.Col), p.Row+1)
}

// WildState describes what a placed tile shows as a letter
type WildState int

const (
	// NotWild is a regular letter tile
	NotWild WildState = iota
	// WildUnresolved is a wildcard with no letter chosen yet
	WildUnresolved
	// WildResolved is a wildcard with a chosen letter
	WildResolved
)

// PlacedTile is a tile sitting on the board
type PlacedTile struct {
	Tile     LetterTile `json:"tile"`
	Position Position   `json:"position"`
	Origin   int        `json:"origin"`
	Assigned rune       `json:"assigned,omitempty"`
}

type placedTileJSON struct {
	Tile     LetterTile `json:"tile"`
	Position Position   `json:"position"`
	Origin   int        `json:"origin"`
	Assigned string     `json:"assigned,omitempty"`
}

// MarshalJSON writes the chosen wildcard letter as a string
func (p PlacedTile) MarshalJSON() ([]byte, error) {
	v := placedTileJSON{Tile: p.Tile, Position: p.Position, Origin: p.Origin}
	if p.Assigned != 0 {
		v.Assigned = string(p.Assigned)
	}
	return json.Marshal(v)
}

func (p *PlacedTile) UnmarshalJSON(data []byte) error {
	var v placedTileJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	assigned, err := parseSymbol(v.Assigned)
	if err != nil {
		return err
	}
	*p = PlacedTile{Tile: v.Tile, Position: v.Position, Origin: v.Origin, Assigned: assigned}
	return nil
}

// NewPlacedTile creates a placed tile for the rack tile at pos
func NewPlacedTile(t LetterTile, pos Position) PlacedTile {
	return PlacedTile{
		Tile:     t,
		Position: pos,
		Origin:   int(t.ID),
	}
}

// WildState returns the wildcard state of the tile
func (p PlacedTile) WildState() WildState {
	switch {
	case !p.Tile.IsWildcard():
		return NotWild
	case p.Assigned == 0:
		return WildUnresolved
	default:
		return WildResolved
	}
}

// Letter returns the letter the tile spells.
// The second result is false for an unresolved wildcard.
func (p PlacedTile) Letter() (rune, bool) {
	switch p.WildState() {
	case NotWild:
		return p.Tile.Symbol, true
	case WildResolved:
		return p.Assigned, true
	default:
		return 0, false
	}
}
