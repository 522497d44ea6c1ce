// internal/game/state.go
package game

import (
	"github.com/google/uuid"

	"github.com/spymaster-lab/codenames/engine"
)

// ObfCell is one board cell as shown to an observer.
type ObfCell struct {
	Word     string           `json:"word"`
	Revealed bool             `json:"revealed"`
	Color    engine.TeamColor `json:"color,omitempty"` // NoColor while hidden from the observer
}

// ObfGameState is the board and progress of a game, with unrevealed colors
// hidden unless the observer is a spymaster.
type ObfGameState struct {
	GameID   uuid.UUID        `json:"gameId"`
	Team     engine.TeamColor `json:"team"`
	Turn     int              `json:"turn"`
	Board    []ObfCell        `json:"board"`
	Score    engine.Score     `json:"score"`
	LastClue *engine.Clue     `json:"lastClue,omitempty"`
	GameOver bool             `json:"gameOver"`
	Winner   engine.TeamColor `json:"winner,omitempty"`
}

// State returns a snapshot of the game. With spymaster set, every color is
// included; otherwise only revealed cells carry theirs.
func (s *Session) State(spymaster bool) ObfGameState {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	g := s.Engine
	obf := ObfGameState{
		GameID:   s.ID,
		Team:     g.Team(),
		Turn:     len(s.rounds),
		Score:    g.Score(),
		GameOver: s.GameOver,
		Winner:   s.winner,
	}
	if c, ok := g.GuesserView("").LastClue(); ok {
		obf.LastClue = &c
	}

	words := g.Words()
	obf.Board = make([]ObfCell, len(words))
	for i, w := range words {
		cell := ObfCell{Word: w, Revealed: g.Guessed(w)}
		if cell.Revealed || spymaster {
			cell.Color, _ = g.Color(w)
		}
		obf.Board[i] = cell
	}
	return obf
}
