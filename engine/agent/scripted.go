package agent

import (
	"sync"

	"github.com/spymaster-lab/codenames/engine"
)

// ScriptedGuesser replays a fixed list of guesses, then passes.
type ScriptedGuesser struct {
	mu    sync.Mutex
	moves []engine.Guess
}

// NewScriptedGuesser returns a guesser that plays words in order.
func NewScriptedGuesser(words ...string) *ScriptedGuesser {
	moves := make([]engine.Guess, len(words))
	for i, w := range words {
		moves[i] = engine.Guess{Word: w}
	}
	return &ScriptedGuesser{moves: moves}
}

// GetMove implements engine.Guesser.
func (s *ScriptedGuesser) GetMove(engine.GuesserView) (engine.Guess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.moves) == 0 {
		return engine.Guess{Word: engine.EndOfTurn}, nil
	}
	g := s.moves[0]
	s.moves = s.moves[1:]
	return g, nil
}

// Remaining reports how many scripted guesses are left.
func (s *ScriptedGuesser) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.moves)
}

// ScriptedSpymaster replays a fixed list of clues. When the script is
// exhausted it falls back to Fallback, or ErrNoClue when that is unset.
type ScriptedSpymaster struct {
	Fallback engine.Spymaster

	mu    sync.Mutex
	clues []engine.Clue
}

// NewScriptedSpymaster returns a spymaster that gives clues in order.
func NewScriptedSpymaster(clues ...engine.Clue) *ScriptedSpymaster {
	return &ScriptedSpymaster{clues: append([]engine.Clue(nil), clues...)}
}

// GetMove implements engine.Spymaster.
func (s *ScriptedSpymaster) GetMove(v engine.SpymasterView) (engine.Clue, error) {
	s.mu.Lock()
	if len(s.clues) > 0 {
		c := s.clues[0]
		s.clues = s.clues[1:]
		s.mu.Unlock()
		return c, nil
	}
	s.mu.Unlock()
	if s.Fallback != nil {
		return s.Fallback.GetMove(v)
	}
	return engine.Clue{}, ErrNoClue
}
