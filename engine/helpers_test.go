package engine

import (
	"errors"
	"testing"
)

// Positional layout with DefaultRules: 9 BLUE, 8 RED, 7 NEUTRAL, 1 ASSASSIN.
var (
	blueWords    = []string{"APPLE", "BANK", "BERLIN", "CARD", "CASTLE", "CHAIR", "CLOUD", "DIAMOND", "DRAGON"}
	redWords     = []string{"EAGLE", "ENGINE", "FIRE", "FOREST", "GHOST", "HOTEL", "ICE", "JUPITER"}
	neutralWords = []string{"KNIGHT", "LEMON", "MOON", "NURSE", "OCTOPUS", "PIANO", "QUEEN"}
	assassinWord = "ROBOT"
)

func testWords() []string {
	var words []string
	words = append(words, blueWords...)
	words = append(words, redWords...)
	words = append(words, neutralWords...)
	return append(words, assassinWord)
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(testWords(), 42, DefaultRules())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// scriptedSpymaster replays clues; once the script runs out it keeps giving
// the fallback clue.
type scriptedSpymaster struct {
	clues    []Clue
	fallback Clue
	views    []SpymasterView
}

func (s *scriptedSpymaster) GetMove(v SpymasterView) (Clue, error) {
	s.views = append(s.views, v)
	if len(s.clues) == 0 {
		if s.fallback.Word == "" {
			return Clue{Word: "ANIMAL", Count: 1}, nil
		}
		return s.fallback, nil
	}
	c := s.clues[0]
	s.clues = s.clues[1:]
	return c, nil
}

// scriptedGuesser replays guesses, then passes with EndOfTurn.
type scriptedGuesser struct {
	words []string
	views []GuesserView
}

func (s *scriptedGuesser) GetMove(v GuesserView) (Guess, error) {
	s.views = append(s.views, v)
	if len(s.words) == 0 {
		return Guess{Word: EndOfTurn}, nil
	}
	w := s.words[0]
	s.words = s.words[1:]
	return Guess{Word: w, Thoughts: "thinking about " + w}, nil
}

// firstUnguessed always picks the first unguessed word on the board.
var firstUnguessed = GuesserFunc(func(v GuesserView) (Guess, error) {
	if rest := v.Unguessed(); len(rest) > 0 {
		return Guess{Word: rest[0], Thoughts: "first"}, nil
	}
	return Guess{Word: EndOfTurn}, nil
})

// constClue always gives the same clue.
func constClue(word string, n int) SpymasterFunc {
	return func(SpymasterView) (Clue, error) { return Clue{Word: word, Count: n}, nil }
}

var errActorDown = errors.New("actor unavailable")

// stateOf returns the fields that rollback must restore.
func stateOf(g *Game) (words, guesses, thoughts []string, clues []Clue, team TeamColor, turn int) {
	s := g.Save()
	return g.Words(), s.Guesses, s.Thoughts, s.Clues, s.Team, s.Turn
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
