package engine

// Board geometry. Only the 5x5 grid is supported.
const (
	BoardRows = 5
	BoardCols = 5
	BoardSize = BoardRows * BoardCols
)

// MaxTries bounds how many attempts an actor gets to produce a legal move.
const MaxTries = 5

// Rules holds configurable game settings.
type Rules struct {
	NBlue    int // words belonging to BLUE
	NRed     int // words belonging to RED
	MaxTurns int // rounds before the game is declared a draw; 0 = unlimited
}

// DefaultRules returns the standard 9/8/7/1 board with a 25-round limit.
func DefaultRules() Rules {
	return Rules{
		NBlue:    9,
		NRed:     8,
		MaxTurns: 25,
	}
}

// NNeutral returns the number of neutral words implied by the team counts.
func (r *Rules) NNeutral() int {
	return BoardSize - r.NBlue - r.NRed - 1
}

// target returns the score a team needs to win.
func (r *Rules) target(team TeamColor) int {
	if team == Blue {
		return r.NBlue
	}
	return r.NRed
}
