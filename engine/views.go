package engine

import "fmt"

// Role names used in events.
const (
	RoleSpymaster = "spymaster"
	RoleGuesser   = "guesser"
)

// Guesser picks a word to reveal given the guesser's partial view.
type Guesser interface {
	GetMove(view GuesserView) (Guess, error)
}

// Spymaster picks a clue given the full view of the board.
type Spymaster interface {
	GetMove(view SpymasterView) (Clue, error)
}

// GuesserFunc adapts a function to the Guesser interface.
type GuesserFunc func(view GuesserView) (Guess, error)

func (f GuesserFunc) GetMove(view GuesserView) (Guess, error) { return f(view) }

// SpymasterFunc adapts a function to the Spymaster interface.
type SpymasterFunc func(view SpymasterView) (Clue, error)

func (f SpymasterFunc) GetMove(view SpymasterView) (Clue, error) { return f(view) }

// GuesserView is what a guesser may see. Colors of unguessed words are masked.
type GuesserView struct {
	Team     TeamColor `json:"team"`
	Words    []string  `json:"words"`
	Board    []string  `json:"board"` // "word (COLOR)" or "word (Unknown)"
	Guesses  []string  `json:"guesses"`
	Clues    []Clue    `json:"clues"`
	Feedback string    `json:"feedback,omitempty"` // rejections from earlier attempts of this move
}

// LastClue returns the most recent clue, if any.
func (v GuesserView) LastClue() (Clue, bool) {
	if len(v.Clues) == 0 {
		return Clue{}, false
	}
	return v.Clues[len(v.Clues)-1], true
}

// Unguessed returns the board words not yet guessed, in display order.
func (v GuesserView) Unguessed() []string {
	guessed := make(map[string]struct{}, len(v.Guesses))
	for _, w := range v.Guesses {
		guessed[w] = struct{}{}
	}
	var out []string
	for _, w := range v.Words {
		if _, ok := guessed[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}

// SpymasterView extends GuesserView with the code, the guesser's thoughts and
// the log of speculative rounds.
type SpymasterView struct {
	GuesserView
	Code          Code             `json:"code"`
	BoardWithCode []string         `json:"boardWithCode"`
	Thoughts      []string         `json:"thoughts"`
	Rollbacks     []RollbackRecord `json:"rollbacks"`
}

// GuesserView builds a guesser projection of the current state. feedback is
// carried through verbatim and never stored.
func (g *Game) GuesserView(feedback string) GuesserView {
	return GuesserView{
		Team:     g.state.Team,
		Words:    g.board.Words(),
		Board:    g.render(false),
		Guesses:  append([]string(nil), g.state.Guesses...),
		Clues:    append([]Clue(nil), g.state.Clues...),
		Feedback: feedback,
	}
}

// SpymasterView builds the full-information projection of the current state.
func (g *Game) SpymasterView(feedback string) SpymasterView {
	st := g.state.clone()
	return SpymasterView{
		GuesserView:   g.GuesserView(feedback),
		Code:          g.board.code.Clone(),
		BoardWithCode: g.render(true),
		Thoughts:      st.Thoughts,
		Rollbacks:     st.Rollbacks,
	}
}

// Board returns the board as a guesser sees it, one entry per word.
func (g *Game) Board() []string { return g.render(false) }

// BoardWithCode returns the board with every color shown.
func (g *Game) BoardWithCode() []string { return g.render(true) }

// render formats each word as "word (COLOR)" when it is revealed (or showCode
// is set) and "word (Unknown)" otherwise.
func (g *Game) render(showCode bool) []string {
	out := make([]string, len(g.board.words))
	for i, w := range g.board.words {
		if showCode || g.Guessed(w) {
			out[i] = fmt.Sprintf("%s (%s)", w, g.board.code[w])
		} else {
			out[i] = fmt.Sprintf("%s (Unknown)", w)
		}
	}
	return out
}
