// internal/policy/actors.go
package policy

import (
	"context"

	"github.com/spymaster-lab/codenames/engine"
)

// Spymaster is an engine.Spymaster backed by a remote policy.
type Spymaster struct {
	Client *Client
	// ExtraPrompt is appended to the system prompt.
	ExtraPrompt string
	// IncludeThoughts adds the guesser's recorded thoughts to the prompt.
	IncludeThoughts bool
}

// GetMove implements engine.Spymaster.
func (s *Spymaster) GetMove(v engine.SpymasterView) (engine.Clue, error) {
	text, err := s.Client.Complete(context.Background(), Request{
		Role:   engine.RoleSpymaster,
		System: spymasterSystem + s.ExtraPrompt,
		Prompt: SpymasterPrompt(v, s.IncludeThoughts),
	})
	if err != nil {
		return engine.Clue{}, err
	}
	answer, err := ExtractResponse(text)
	if err != nil {
		return engine.Clue{}, err
	}
	return ParseClue(answer)
}

// Guesser is an engine.Guesser backed by a remote policy. The full reply is
// kept as the guess's thoughts.
type Guesser struct {
	Client      *Client
	ExtraPrompt string
}

// GetMove implements engine.Guesser.
func (g *Guesser) GetMove(v engine.GuesserView) (engine.Guess, error) {
	text, err := g.Client.Complete(context.Background(), Request{
		Role:   engine.RoleGuesser,
		System: guesserSystem + g.ExtraPrompt,
		Prompt: GuesserPrompt(v),
	})
	if err != nil {
		return engine.Guess{}, err
	}
	answer, err := ExtractResponse(text)
	if err != nil {
		return engine.Guess{}, err
	}
	return engine.Guess{Word: answer, Thoughts: text}, nil
}
