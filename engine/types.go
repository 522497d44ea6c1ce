package engine

import "fmt"

// TeamColor is the hidden affiliation of a board word. Blue and Red double as
// team identifiers.
type TeamColor uint8

const (
	NoColor  TeamColor = iota // 0, unset or no team override
	Blue                      // 1
	Red                       // 2
	Neutral                   // 3
	Assassin                  // 4
)

// String returns the upper-case color name used in board renderings.
func (c TeamColor) String() string {
	switch c {
	case Blue:
		return "BLUE"
	case Red:
		return "RED"
	case Neutral:
		return "NEUTRAL"
	case Assassin:
		return "ASSASSIN"
	default:
		return "NONE"
	}
}

// MarshalText encodes the color by name so JSON payloads stay readable.
func (c TeamColor) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText decodes a color name; "NONE" and "" decode to NoColor.
func (c *TeamColor) UnmarshalText(b []byte) error {
	if len(b) == 0 || string(b) == "NONE" {
		*c = NoColor
		return nil
	}
	v, err := ParseTeamColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// IsTeam reports whether c names one of the two playing teams.
func (c TeamColor) IsTeam() bool { return c == Blue || c == Red }

// Other returns the opposing team. Non-team colors map to NoColor.
func (c TeamColor) Other() TeamColor {
	switch c {
	case Blue:
		return Red
	case Red:
		return Blue
	default:
		return NoColor
	}
}

// ParseTeamColor converts a color name ("BLUE", "red", ...) to a TeamColor.
func ParseTeamColor(s string) (TeamColor, error) {
	switch s {
	case "BLUE", "blue", "Blue", "B", "b":
		return Blue, nil
	case "RED", "red", "Red", "R", "r":
		return Red, nil
	case "NEUTRAL", "neutral", "Neutral":
		return Neutral, nil
	case "ASSASSIN", "assassin", "Assassin":
		return Assassin, nil
	}
	return NoColor, fmt.Errorf("unknown team color %q", s)
}

// Outcome describes how a round ended.
type Outcome uint8

const (
	OutcomeNone      Outcome = iota // 0: budget exhausted, play continues
	OutcomeLose                     // 1: assassin revealed
	OutcomeHandover                 // 2: wrong-team or neutral word revealed
	OutcomeEndOfTurn                // 3: guesser passed voluntarily
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLose:
		return "LOSE"
	case OutcomeHandover:
		return "HANDOVER"
	case OutcomeEndOfTurn:
		return "END_OF_TURN"
	default:
		return "NONE"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "NONE":
		*o = OutcomeNone
	case "LOSE":
		*o = OutcomeLose
	case "HANDOVER":
		*o = OutcomeHandover
	case "END_OF_TURN":
		*o = OutcomeEndOfTurn
	default:
		return fmt.Errorf("unknown outcome %q", b)
	}
	return nil
}

// EndOfTurn is the reserved guess that ends a round early without penalty.
// Boards containing it are rejected at construction, so it never collides
// with vocabulary.
const EndOfTurn = "<END_OF_TURN>"

// Clue is a (word, count) pair issued by a spymaster.
type Clue struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

func (c Clue) String() string { return fmt.Sprintf("%s,%d", c.Word, c.Count) }

// Guess is a guesser's move: a board word (or EndOfTurn) plus free-text reasoning.
type Guess struct {
	Word     string `json:"word"`
	Thoughts string `json:"thoughts"`
}

// RollbackRecord captures one speculative round after it has been undone.
type RollbackRecord struct {
	Clue        Clue      `json:"clue"`
	Guesses     []string  `json:"guesses"`
	Thoughts    []string  `json:"thoughts"`
	GuessesMade int       `json:"guessesMade"`
	Outcome     Outcome   `json:"outcome"`
	Team        TeamColor `json:"team"`
}

// RoundResult summarizes a played round.
type RoundResult struct {
	Team        TeamColor `json:"team"`
	Clue        Clue      `json:"clue"`
	Guesses     []string  `json:"guesses"`
	GuessesMade int       `json:"guessesMade"`
	Outcome     Outcome   `json:"outcome"`
	Forfeit     bool      `json:"forfeit"`     // an actor exhausted its retries
	Speculative bool      `json:"speculative"` // the round was rolled back
}
