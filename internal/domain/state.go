package domain

// PlayerState represents player's current interaction state
type PlayerState string

const (
	StateIdle            PlayerState = "idle"
	StateWaitingWildcard PlayerState = "waiting_wildcard"
)

// StateData holds temporary data for player's current state
type StateData struct {
	State PlayerState
	// Cell of the wildcard waiting for a letter
	Cell Position
}
