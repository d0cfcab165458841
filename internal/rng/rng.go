// Package rng provides the seeded generator used to build daily boards.
package rng

const (
	multiplier = 1103515245
	increment  = 12345
	modulus    = 1 << 31
)

// LCG is a linear congruential generator.
// It is not safe for concurrent use; each board generation owns its own instance.
type LCG struct {
	z uint64
}

// New creates a generator seeded with seed
func New(seed int) *LCG {
	// only z mod 2^31 affects the stream
	z := int64(seed) % modulus
	if z < 0 {
		z += modulus
	}
	return &LCG{z: uint64(z)}
}

// Float64 advances the state and returns a float in [0,1)
func (g *LCG) Float64() float64 {
	g.z = (multiplier*g.z + increment) % modulus
	return float64(g.z) / modulus
}

// Intn returns floor(Float64()*n)
func (g *LCG) Intn(n int) int {
	return int(g.Float64() * float64(n))
}
