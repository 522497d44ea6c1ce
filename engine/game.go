// Package engine implements the Codenames rules: board and code model,
// clue/guess validation, the per-round state machine, speculative rounds that
// are rolled back after they are observed, and the win detector.
//
// The engine is synchronous and owns its state exclusively. Clue-givers and
// guessers plug in through the Spymaster and Guesser interfaces and only ever
// see read-only views.
package engine

import "fmt"

// GameState is the mutable part of a game. Every change goes through
// GiveClue, GuessWord or a round; rollback restores it from a Snapshot.
type GameState struct {
	Team      TeamColor
	Turn      int
	Guesses   []string
	Thoughts  []string // positionally paired with Guesses
	Clues     []Clue
	Rollbacks []RollbackRecord

	guessed map[string]struct{}
}

// clone deep-copies the state so later appends cannot alias it.
func (s *GameState) clone() GameState {
	out := GameState{
		Team:     s.Team,
		Turn:     s.Turn,
		Guesses:  append([]string(nil), s.Guesses...),
		Thoughts: append([]string(nil), s.Thoughts...),
		Clues:    append([]Clue(nil), s.Clues...),
		guessed:  make(map[string]struct{}, len(s.guessed)),
	}
	if len(s.Rollbacks) > 0 {
		out.Rollbacks = make([]RollbackRecord, len(s.Rollbacks))
		for i, r := range s.Rollbacks {
			out.Rollbacks[i] = r.clone()
		}
	}
	for w := range s.guessed {
		out.guessed[w] = struct{}{}
	}
	return out
}

func (r RollbackRecord) clone() RollbackRecord {
	r.Guesses = append([]string(nil), r.Guesses...)
	r.Thoughts = append([]string(nil), r.Thoughts...)
	return r
}

// Game is one Codenames match.
type Game struct {
	board Board
	state GameState
	rules Rules

	// OnEvent, if set, receives every clue, guess, rejection and round summary.
	OnEvent func(Event)

	speculative bool // set while a rollback round is in flight
}

// NewGame builds a game whose code is generated positionally from words (see
// GenerateCode), then shuffles the board order with seed. Identical words,
// seed and rules always produce the same board.
func NewGame(words []string, seed uint64, rules Rules) (*Game, error) {
	code, err := GenerateCode(words, rules)
	if err != nil {
		return nil, err
	}
	return newGame(words, code, seed, rules), nil
}

// NewGameWithCode builds a game from an externally supplied code, for example
// a physical board read from a file. Team targets are taken from the code.
func NewGameWithCode(words []string, code Code, seed uint64, rules Rules) (*Game, error) {
	if err := checkWords(words); err != nil {
		return nil, err
	}
	if err := checkCode(words, code); err != nil {
		return nil, err
	}
	rules.NBlue = code.Count(Blue)
	rules.NRed = code.Count(Red)
	return newGame(words, code, seed, rules), nil
}

func newGame(words []string, code Code, seed uint64, rules Rules) *Game {
	return &Game{
		board: newBoard(words, code, seed),
		rules: rules,
		state: GameState{
			Team:    Blue,
			guessed: make(map[string]struct{}),
		},
	}
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// Words returns the board vocabulary in display order.
func (g *Game) Words() []string { return g.board.Words() }

// Rules returns the rules the game was built with.
func (g *Game) Rules() Rules { return g.rules }

// Team returns the team currently playing.
func (g *Game) Team() TeamColor { return g.state.Team }

// SetTeam forces the current team.
func (g *Game) SetTeam(team TeamColor) error {
	if !team.IsTeam() {
		return fmt.Errorf("cannot play as %s", team)
	}
	g.state.Team = team
	return nil
}

// TurnNumber returns the number of completed rounds in Play.
func (g *Game) TurnNumber() int { return g.state.Turn }

// Guessed reports whether word has been revealed.
func (g *Game) Guessed(word string) bool {
	_, ok := g.state.guessed[word]
	return ok
}

// Color returns the hidden color of a board word.
func (g *Game) Color(word string) (TeamColor, bool) { return g.board.Color(word) }

// Code returns a copy of the full code.
func (g *Game) Code() Code { return g.board.code.Clone() }

// Rollbacks returns a copy of the rollback log.
func (g *Game) Rollbacks() []RollbackRecord { return g.state.clone().Rollbacks }

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a deep copy of GameState used as a restore point.
type Snapshot GameState

// Save returns a snapshot of the current state.
func (g *Game) Save() Snapshot { return Snapshot(g.state.clone()) }

// Restore replaces the state with a copy of the snapshot.
func (g *Game) Restore(s Snapshot) {
	st := GameState(s)
	g.state = st.clone()
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// EventType identifies what happened.
type EventType string

const (
	EventClue     EventType = "clue"
	EventGuess    EventType = "guess"
	EventRejected EventType = "rejected"
	EventForfeit  EventType = "forfeit"
	EventRoundEnd EventType = "round_end"
	EventRollback EventType = "rollback"
	EventGameEnd  EventType = "game_end"
)

// Event is an observable record of engine activity.
type Event struct {
	Type        EventType `json:"type"`
	Team        TeamColor `json:"team"`
	Role        string    `json:"role,omitempty"` // "spymaster" or "guesser"
	Word        string    `json:"word,omitempty"`
	Count       int       `json:"count,omitempty"`
	Color       TeamColor `json:"color,omitempty"`
	Outcome     Outcome   `json:"outcome,omitempty"`
	GuessesMade int       `json:"guessesMade,omitempty"`
	Attempt     int       `json:"attempt,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Speculative bool      `json:"speculative,omitempty"`
	Winner      TeamColor `json:"winner,omitempty"`
}

func (g *Game) emit(ev Event) {
	if g.OnEvent != nil {
		ev.Speculative = ev.Speculative || g.speculative
		g.OnEvent(ev)
	}
}
