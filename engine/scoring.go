package engine

import "strings"

// Score holds per-team scores.
type Score struct {
	Blue int `json:"blue"`
	Red  int `json:"red"`
}

// Of returns the score of one team.
func (s Score) Of(team TeamColor) int {
	if team == Blue {
		return s.Blue
	}
	if team == Red {
		return s.Red
	}
	return 0
}

// Score counts, for each team, the entries of the guesser board rendering
// that mention the team's color name.
//
// This matches on the rendered text rather than on revealed colors, so an
// unguessed word that itself contains "RED" or "BLUE" (e.g. "REDWOOD") adds
// to that team's score. Kept as-is pending a product decision.
func (g *Game) Score() Score {
	var s Score
	for _, entry := range g.render(false) {
		if strings.Contains(entry, Blue.String()) {
			s.Blue++
		}
		if strings.Contains(entry, Red.String()) {
			s.Red++
		}
	}
	return s
}

// RevealedScore counts only revealed words per team.
func (g *Game) RevealedScore() Score {
	var s Score
	for _, w := range g.state.Guesses {
		switch g.board.code[w] {
		case Blue:
			s.Blue++
		case Red:
			s.Red++
		}
	}
	return s
}
