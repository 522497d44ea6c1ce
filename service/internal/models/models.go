// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/spymaster-lab/codenames/engine"
)

// RoundRecord is one committed round as stored and served.
type RoundRecord struct {
	Index       int              `json:"index"`
	Team        engine.TeamColor `json:"team"`
	ClueWord    string           `json:"clueWord,omitempty"`
	ClueCount   int              `json:"clueCount,omitempty"`
	Guesses     []string         `json:"guesses"`
	GuessesMade int              `json:"guessesMade"`
	Outcome     engine.Outcome   `json:"outcome"`
	Forfeit     bool             `json:"forfeit,omitempty"`
}

// GameRecord is a finished game: the board, its code and every committed round.
type GameRecord struct {
	ID        uuid.UUID        `json:"id"`
	Seed      uint64           `json:"seed"`
	Words     []string         `json:"words"` // display order
	Code      engine.Code      `json:"code"`
	Winner    engine.TeamColor `json:"winner"`
	Turns     int              `json:"turns"`
	Score     engine.Score     `json:"score"`
	Rounds    []RoundRecord    `json:"rounds"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewRoundRecords converts engine round results, numbering them from 1.
func NewRoundRecords(results []engine.RoundResult) []RoundRecord {
	out := make([]RoundRecord, len(results))
	for i, r := range results {
		out[i] = RoundRecord{
			Index:       i + 1,
			Team:        r.Team,
			ClueWord:    r.Clue.Word,
			ClueCount:   r.Clue.Count,
			Guesses:     append([]string{}, r.Guesses...),
			GuessesMade: r.GuessesMade,
			Outcome:     r.Outcome,
			Forfeit:     r.Forfeit,
		}
	}
	return out
}

// GameAction is one entry of a game's event log, in emission order.
type GameAction struct {
	GameID    uuid.UUID    `json:"gameId"`
	Index     int          `json:"index"` // 1-based
	Event     engine.Event `json:"event"`
	Timestamp int64        `json:"timestamp"` // unix milliseconds
}

// WinStats counts finished games by result.
type WinStats struct {
	Blue  int64 `json:"blue"`
	Red   int64 `json:"red"`
	Draws int64 `json:"draws"`
}

// Add counts one game with the given winner; NoColor is a draw.
func (s *WinStats) Add(winner engine.TeamColor) {
	switch winner {
	case engine.Blue:
		s.Blue++
	case engine.Red:
		s.Red++
	default:
		s.Draws++
	}
}

// Total returns the number of games counted.
func (s WinStats) Total() int64 { return s.Blue + s.Red + s.Draws }
