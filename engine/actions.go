package engine

// GiveClue validates a clue and appends it to the clue log. The returned
// confirmation has the form "word,count".
func (g *Game) GiveClue(word string, count int) (string, error) {
	if err := g.validateClue(word, count); err != nil {
		return "", err
	}
	clue := Clue{Word: word, Count: count}
	g.state.Clues = append(g.state.Clues, clue)
	g.emit(Event{Type: EventClue, Team: g.state.Team, Role: RoleSpymaster, Word: word, Count: count})
	return clue.String(), nil
}

// GuessWord reveals a board word and records the guesser's thoughts next to
// it. EndOfTurn is accepted without touching the logs and reveals NoColor.
func (g *Game) GuessWord(word, thoughts string) (TeamColor, error) {
	if err := g.validateGuess(word); err != nil {
		return NoColor, err
	}
	if word == EndOfTurn {
		g.emit(Event{Type: EventGuess, Team: g.state.Team, Role: RoleGuesser, Word: word})
		return NoColor, nil
	}

	g.state.Guesses = append(g.state.Guesses, word)
	g.state.Thoughts = append(g.state.Thoughts, thoughts)
	g.state.guessed[word] = struct{}{}

	color, _ := g.board.Color(word)
	g.emit(Event{Type: EventGuess, Team: g.state.Team, Role: RoleGuesser, Word: word, Color: color})
	return color, nil
}
