package scoring

// DefaultTolerance is how far above the recomputed score a claimed score may be
const DefaultTolerance = 1.1

// Policy decides how externally supplied scores are trusted
type Policy struct {
	Tolerance float64
}

// DefaultPolicy returns the policy with DefaultTolerance
func DefaultPolicy() Policy {
	return Policy{Tolerance: DefaultTolerance}
}

// Clamp checks a claimed score against the recomputed one.
// A claim with no tiles placed is zero, and a claim above recomputed*Tolerance becomes recomputed.
func (p Policy) Clamp(claimed, recomputed, placed int) int {
	switch {
	case claimed < 0:
		return 0
	case placed == 0 && claimed > 0:
		return 0
	case float64(claimed) > float64(recomputed)*p.tolerance():
		return recomputed
	}
	return claimed
}

func (p Policy) tolerance() float64 {
	if p.Tolerance < 1 {
		return 1
	}
	return p.Tolerance
}
