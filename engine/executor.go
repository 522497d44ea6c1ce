package engine

import "fmt"

// executeMove runs one actor move with bounded retries. attempt receives the
// feedback accumulated by earlier failed attempts of this call only; it must
// ask the actor and apply the move, returning an error if either step fails.
// State is only mutated by a successful apply, so a failing actor never leaves
// a partial change behind.
func executeMove[R any](g *Game, role string, attempt func(feedback string) (R, error)) (R, error) {
	var (
		feedback string
		lastErr  error
	)
	for try := 1; try <= MaxTries; try++ {
		res, err := attempt(feedback)
		if err == nil {
			return res, nil
		}
		lastErr = err
		feedback += "\n" + err.Error()
		g.emit(Event{Type: EventRejected, Team: g.state.Team, Role: role, Attempt: try, Reason: err.Error()})
	}
	var zero R
	return zero, fmt.Errorf("%w: %s gave no legal move in %d tries: %w", ErrActorExhausted, role, MaxTries, lastErr)
}

// requestClue asks the spymaster for a clue and applies it.
func (g *Game) requestClue(sm Spymaster) (Clue, error) {
	return executeMove(g, RoleSpymaster, func(feedback string) (Clue, error) {
		clue, err := sm.GetMove(g.SpymasterView(feedback))
		if err != nil {
			return Clue{}, fmt.Errorf("spymaster failed: %w", err)
		}
		if _, err := g.GiveClue(clue.Word, clue.Count); err != nil {
			return Clue{}, err
		}
		return clue, nil
	})
}

// revealed pairs a guess with the color it uncovered.
type revealed struct {
	Guess
	Color TeamColor
}

// requestGuess asks the guesser for a guess and applies it.
func (g *Game) requestGuess(gs Guesser) (revealed, error) {
	return executeMove(g, RoleGuesser, func(feedback string) (revealed, error) {
		guess, err := gs.GetMove(g.GuesserView(feedback))
		if err != nil {
			return revealed{}, fmt.Errorf("guesser failed: %w", err)
		}
		color, err := g.GuessWord(guess.Word, guess.Thoughts)
		if err != nil {
			return revealed{}, err
		}
		return revealed{Guess: guess, Color: color}, nil
	})
}
