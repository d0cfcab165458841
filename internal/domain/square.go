package domain

// SquareKind is a score multiplier on a board cell
type SquareKind string

const (
	TripleWord   SquareKind = "tw"
	TripleLetter SquareKind = "tl"
	DoubleWord   SquareKind = "dw"
	DoubleLetter SquareKind = "dl"
)

// SquareKinds lists the kinds in generation order
var SquareKinds = []SquareKind{TripleWord, TripleLetter, DoubleWord, DoubleLetter}

// Label returns the short label shown on the board
func (k SquareKind) Label() string {
	switch k {
	case TripleWord:
		return "TW"
	case TripleLetter:
		return "TL"
	case DoubleWord:
		return "DW"
	case DoubleLetter:
		return "DL"
	}
	return ""
}

// LetterMultiplier returns the multiplier applied to a single letter on this kind
func (k SquareKind) LetterMultiplier() int {
	switch k {
	case DoubleLetter:
		return 2
	case TripleLetter:
		return 3
	}
	return 1
}

// WordMultiplier returns the multiplier applied to a whole word crossing this kind
func (k SquareKind) WordMultiplier() int {
	switch k {
	case DoubleWord:
		return 2
	case TripleWord:
		return 3
	}
	return 1
}

// SpecialSquare is a board cell with a multiplier
type SpecialSquare struct {
	Position Position   `json:"position"`
	Kind     SquareKind `json:"kind"`
}

// SquareMap indexes special squares by position
type SquareMap map[Position]SquareKind

// NewSquareMap builds a lookup from a list of special squares
func NewSquareMap(squares []SpecialSquare) SquareMap {
	m := make(SquareMap, len(squares))
	for _, sq := range squares {
		m[sq.Position] = sq.Kind
	}
	return m
}

// At returns the kind at pos, if any
func (m SquareMap) At(pos Position) (SquareKind, bool) {
	k, ok := m[pos]
	return k, ok
}
