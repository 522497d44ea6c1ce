package engine

import (
	"fmt"
	"strings"
	"unicode"
)

// validateClue checks a clue against the board without mutating anything.
// Count has no upper bound.
func (g *Game) validateClue(word string, count int) error {
	switch {
	case word == "":
		return fmt.Errorf("%w: clue word is empty. Give a single word", ErrInvalidClue)
	case g.board.Contains(word):
		return fmt.Errorf("%w: word %s is already on the board. Pick a word not on the board", ErrInvalidClue, word)
	case strings.ContainsFunc(word, unicode.IsSpace):
		return fmt.Errorf("%w: word %s contains a space. Pick a word without a space", ErrInvalidClue, word)
	case strings.Contains(word, "-"):
		return fmt.Errorf("%w: word %s contains a dash. Pick a word that isn't hyphenated", ErrInvalidClue, word)
	case count < 1:
		return fmt.Errorf("%w: clue %s needs a positive number of words, got %d", ErrInvalidClue, word, count)
	}
	return nil
}

// validateGuess checks a guess. EndOfTurn is always legal.
func (g *Game) validateGuess(word string) error {
	if word == EndOfTurn {
		return nil
	}
	if !g.board.Contains(word) {
		return fmt.Errorf("%w: word %s not on the board. Pick a word on the board", ErrInvalidGuess, word)
	}
	if g.Guessed(word) {
		return fmt.Errorf("%w: word %s already guessed. Pick a word not already guessed", ErrInvalidGuess, word)
	}
	return nil
}

// LegalGuesses returns the unguessed board words in display order, followed
// by EndOfTurn.
func (g *Game) LegalGuesses() []string {
	out := make([]string, 0, BoardSize+1)
	for _, w := range g.board.words {
		if !g.Guessed(w) {
			out = append(out, w)
		}
	}
	return append(out, EndOfTurn)
}
