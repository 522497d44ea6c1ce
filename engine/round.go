package engine

// RoundOptions tunes a single round.
type RoundOptions struct {
	// Rollback plays the round speculatively: its result is appended to the
	// rollback log and every other field of the state is restored afterwards.
	Rollback bool
	// Team, if set, overrides the team playing this round.
	Team TeamColor
}

// PlayRound runs one clue followed by up to clue.Count guesses.
//
// Guess accounting:
//   - ASSASSIN → OutcomeLose; counts toward the budget.
//   - EndOfTurn → OutcomeEndOfTurn; does not count.
//   - other team or NEUTRAL → OutcomeHandover; counts.
//   - own team → counts; the loop continues until the budget is spent.
//
// A spymaster that exhausts its retries forfeits the round (0 guesses,
// OutcomeHandover). A guesser that exhausts its retries forfeits that guess,
// which counts toward the budget and hands over.
//
// Committed rounds clear the rollback log.
func (g *Game) PlayRound(guesser Guesser, spymaster Spymaster, opts RoundOptions) RoundResult {
	var snap Snapshot
	if opts.Rollback {
		snap = g.Save()
		g.speculative = true
		defer func() { g.speculative = false }()
	}
	if opts.Team.IsTeam() {
		g.state.Team = opts.Team
	}
	startGuesses := len(g.state.Guesses)

	res := g.playRound(guesser, spymaster)
	res.Guesses = append([]string(nil), g.state.Guesses[startGuesses:]...)

	g.emit(Event{
		Type:        EventRoundEnd,
		Team:        res.Team,
		Word:        res.Clue.Word,
		Count:       res.Clue.Count,
		Outcome:     res.Outcome,
		GuessesMade: res.GuessesMade,
	})

	if !opts.Rollback {
		g.state.Rollbacks = nil
		return res
	}

	rec := RollbackRecord{
		Clue:        res.Clue,
		Guesses:     res.Guesses,
		Thoughts:    append([]string(nil), g.state.Thoughts[startGuesses:]...),
		GuessesMade: res.GuessesMade,
		Outcome:     res.Outcome,
		Team:        res.Team,
	}
	g.Restore(snap)
	g.state.Rollbacks = append(g.state.Rollbacks, rec)
	res.Speculative = true
	g.emit(Event{Type: EventRollback, Team: rec.Team, Word: rec.Clue.Word, Count: rec.Clue.Count, Outcome: rec.Outcome, GuessesMade: rec.GuessesMade})
	return res
}

// playRound is the AWAIT_CLUE → GUESSING → ROUND_END state machine.
func (g *Game) playRound(guesser Guesser, spymaster Spymaster) RoundResult {
	res := RoundResult{Team: g.state.Team}

	clue, err := g.requestClue(spymaster)
	if err != nil {
		g.forfeit(RoleSpymaster, err)
		res.Outcome = OutcomeHandover
		res.Forfeit = true
		return res
	}
	res.Clue = clue

	for res.GuessesMade < clue.Count {
		rv, err := g.requestGuess(guesser)
		if err != nil {
			g.forfeit(RoleGuesser, err)
			res.GuessesMade++
			res.Outcome = OutcomeHandover
			res.Forfeit = true
			return res
		}

		switch {
		case rv.Word == EndOfTurn:
			res.Outcome = OutcomeEndOfTurn
			return res
		case rv.Color == Assassin:
			res.GuessesMade++
			res.Outcome = OutcomeLose
			return res
		case rv.Color != res.Team:
			res.GuessesMade++
			res.Outcome = OutcomeHandover
			return res
		default:
			res.GuessesMade++
		}
	}
	res.Outcome = OutcomeNone
	return res
}

func (g *Game) forfeit(role string, err error) {
	g.emit(Event{Type: EventForfeit, Team: g.state.Team, Role: role, Reason: err.Error()})
}

// Simulate plays n speculative rounds for team (the current team when team
// is NoColor) and returns their results. The state is unchanged apart from n
// new rollback records.
func (g *Game) Simulate(n int, guesser Guesser, spymaster Spymaster, team TeamColor) []RoundResult {
	out := make([]RoundResult, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.PlayRound(guesser, spymaster, RoundOptions{Rollback: true, Team: team}))
	}
	return out
}
