// Package board generates daily boards and keeps track of the tiles placed on them.
package board

import (
	"letterlinks/internal/domain"
	"letterlinks/internal/rng"
)

const (
	// RackLetters is the number of letters drawn for the day, before wildcards
	RackLetters = 18
	// squaresPerKind is the number of special squares of each kind
	squaresPerKind = 4
)

// letterPool is the frequency table letters are drawn from, without replacement.
// A9 B2 C2 D4 E12 F2 G3 H2 I9 J1 K1 L4 M3 N6 O8 P2 Q1 R6 S4 T6 U4 V2 W2 X1 Y2 Z1
const letterPool = "AAAAAAAAABBCCDDDDEEEEEEEEEEEEFFGGGHHIIIIIIIIIJKLLLLMMMNNNNNNOOOOOOOOPPQRRRRRRSSSSTTTTTTUUUUVVWWXYYZ"

// Daily is everything generated for a puzzle day
type Daily struct {
	Seed    int
	Squares []domain.SpecialSquare
	Rack    []domain.LetterTile
}

// GenerateDaily builds the special squares and the rack for the seed.
// Each part draws from its own generator seeded with seed.
func GenerateDaily(seed int) Daily {
	return Daily{
		Seed:    seed,
		Squares: GenerateSpecialSquares(seed),
		Rack:    GenerateRack(seed),
	}
}

// GenerateSpecialSquares places four squares of each kind on free cells.
// The center cell is reserved and never special.
func GenerateSpecialSquares(seed int) []domain.SpecialSquare {
	random := rng.New(seed)
	occupied := map[domain.Position]struct{}{
		domain.Center(): {},
	}
	squares := make([]domain.SpecialSquare, 0, len(domain.SquareKinds)*squaresPerKind)
	for _, kind := range domain.SquareKinds {
		for i := 0; i < squaresPerKind; i++ {
			var pos domain.Position
			for {
				pos.Row = random.Intn(domain.BoardSize)
				pos.Col = random.Intn(domain.BoardSize)
				if _, ok := occupied[pos]; !ok {
					break
				}
			}
			occupied[pos] = struct{}{}
			squares = append(squares, domain.SpecialSquare{Position: pos, Kind: kind})
		}
	}
	return squares
}

// GenerateRack draws the day's letters, adds one or two wildcards and marks one tile as the powerup.
func GenerateRack(seed int) []domain.LetterTile {
	random := rng.New(seed)
	pool := []rune(letterPool)
	symbols := make([]rune, 0, RackLetters+2)
	for i := 0; i < RackLetters; i++ {
		j := random.Intn(len(pool))
		symbols = append(symbols, pool[j])
		pool = append(pool[:j], pool[j+1:]...)
	}
	wildcards := random.Intn(2) + 1
	for i := 0; i < wildcards; i++ {
		symbols = append(symbols, domain.Wildcard)
	}
	powerup := random.Intn(len(symbols))

	rack := make([]domain.LetterTile, len(symbols))
	for i, s := range symbols {
		rack[i] = domain.LetterTile{
			ID:      domain.TileID(i),
			Symbol:  s,
			Powerup: i == powerup,
		}
	}
	return rack
}
