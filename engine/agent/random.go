// Package agent provides self-contained Guesser and Spymaster policies:
// seeded random players for self-play and scripted players for replays.
package agent

import (
	"errors"
	"math/rand/v2"

	"github.com/spymaster-lab/codenames/engine"
)

// DefaultMaxCount is the largest count a RandomSpymaster announces unless
// configured otherwise.
const DefaultMaxCount = 2

const (
	clueLetters    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	clueLength     = 5
	clueCandidates = 25
)

// ErrNoClue is returned when none of the generated candidates is usable.
var ErrNoClue = errors.New("agent: no clue candidate is free of board words")

// RandomGuesser reveals the first unguessed word in board order and passes
// once everything is revealed.
type RandomGuesser struct{}

// GetMove implements engine.Guesser.
func (RandomGuesser) GetMove(v engine.GuesserView) (engine.Guess, error) {
	if rest := v.Unguessed(); len(rest) > 0 {
		return engine.Guess{Word: rest[0]}, nil
	}
	return engine.Guess{Word: engine.EndOfTurn}, nil
}

// RandomSpymaster announces random five-letter clue words that are not on
// the board. The sequence of clues depends only on the seed.
type RandomSpymaster struct {
	// MaxCount bounds the announced count; 0 means DefaultMaxCount.
	MaxCount int

	rng *rand.Rand
}

// NewRandomSpymaster returns a spymaster seeded with seed.
func NewRandomSpymaster(seed uint64) *RandomSpymaster {
	return &RandomSpymaster{rng: rand.New(rand.NewPCG(seed, seed))}
}

// GetMove implements engine.Spymaster.
func (s *RandomSpymaster) GetMove(v engine.SpymasterView) (engine.Clue, error) {
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(0, 0))
	}
	onBoard := make(map[string]struct{}, len(v.Words))
	for _, w := range v.Words {
		onBoard[w] = struct{}{}
	}

	maxCount := s.MaxCount
	if maxCount < 1 {
		maxCount = DefaultMaxCount
	}
	for i := 0; i < clueCandidates; i++ {
		w := s.word()
		if _, taken := onBoard[w]; taken {
			continue
		}
		return engine.Clue{Word: w, Count: 1 + s.rng.IntN(maxCount)}, nil
	}
	return engine.Clue{}, ErrNoClue
}

func (s *RandomSpymaster) word() string {
	b := make([]byte, clueLength)
	for i := range b {
		b[i] = clueLetters[s.rng.IntN(len(clueLetters))]
	}
	return string(b)
}
