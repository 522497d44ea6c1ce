package engine

// Team pairs the two actors playing for one color.
type Team struct {
	Spymaster Spymaster
	Guesser   Guesser
}

// PlayOptions tunes a full game.
type PlayOptions struct {
	// RolloutAttempts speculative rounds are played before every committed
	// round, so the spymaster can see how its clues would have landed.
	RolloutAttempts int
}

// GameResult is the final outcome of Play.
type GameResult struct {
	Winner TeamColor     `json:"winner"` // NoColor on timeout
	Turns  int           `json:"turns"`  // committed rounds played
	Score  Score         `json:"score"`
	Rounds []RoundResult `json:"rounds"`
}

// Play alternates committed rounds, BLUE first, until a team wins or
// Rules.MaxTurns rounds have been played. After each round the checks run in
// order: LOSE hands the win to the other team, then BLUE reaching NBlue, then
// RED reaching NRed.
func (g *Game) Play(blue, red Team, opts PlayOptions) GameResult {
	teams := [2]TeamColor{Blue, Red}
	players := [2]Team{blue, red}
	cur := 0

	var result GameResult
	for g.rules.MaxTurns == 0 || g.state.Turn < g.rules.MaxTurns {
		team := teams[cur]
		p := players[cur]
		g.state.Team = team

		for i := 0; i < opts.RolloutAttempts; i++ {
			g.PlayRound(p.Guesser, p.Spymaster, RoundOptions{Rollback: true, Team: team})
		}
		round := g.PlayRound(p.Guesser, p.Spymaster, RoundOptions{})
		result.Rounds = append(result.Rounds, round)

		if winner := g.winner(round); winner != NoColor {
			result.Winner = winner
			break
		}
		g.state.Turn++
		cur = 1 - cur
	}

	result.Turns = len(result.Rounds)
	result.Score = g.Score()
	g.emit(Event{Type: EventGameEnd, Team: g.state.Team, Winner: result.Winner})
	return result
}

// winner applies the win checks after a committed round.
func (g *Game) winner(round RoundResult) TeamColor {
	if round.Outcome == OutcomeLose {
		return round.Team.Other()
	}
	score := g.Score()
	if score.Blue >= g.rules.target(Blue) {
		return Blue
	}
	if score.Red >= g.rules.target(Red) {
		return Red
	}
	return NoColor
}

// Winner reports the team that has won given the current board, ignoring
// round outcomes. Useful when guesses are applied outside of Play.
func (g *Game) Winner() TeamColor {
	return g.winner(RoundResult{})
}

// WinnerAfter applies the win checks to a committed round played outside
// Play, such as an AI turn in a mixed human/AI game.
func (g *Game) WinnerAfter(round RoundResult) TeamColor {
	return g.winner(round)
}
