// internal/render/render.go
//
// Terminal rendering of boards and game summaries.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/spymaster-lab/codenames/engine"
)

// Palette maps board colors to terminal colors.
var Palette = map[engine.TeamColor]*color.Color{
	engine.Blue:     color.New(color.FgBlue, color.Bold),
	engine.Red:      color.New(color.FgRed, color.Bold),
	engine.Neutral:  color.New(color.FgHiBlack),
	engine.Assassin: color.New(color.FgYellow, color.Bold),
}

var unknown = color.New(color.FgWhite)

// Colorize paints word with the terminal color of c.
func Colorize(word string, c engine.TeamColor) string {
	if p, ok := Palette[c]; ok {
		return p.Sprint(word)
	}
	return unknown.Sprint(word)
}

// Board writes the board as a 5x5 grid. Unrevealed words are shown plain
// unless showCode is set.
func Board(w io.Writer, g *engine.Game, showCode bool) {
	words := g.Words()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault

	for r := 0; r < engine.BoardRows; r++ {
		row := make(table.Row, engine.BoardCols)
		for c := 0; c < engine.BoardCols; c++ {
			word := words[r*engine.BoardCols+c]
			tc, _ := g.Color(word)
			switch {
			case g.Guessed(word):
				row[c] = Colorize("["+word+"]", tc)
			case showCode:
				row[c] = Colorize(word, tc)
			default:
				row[c] = unknown.Sprint(word)
			}
		}
		t.AppendRow(row)
	}
	score := g.Score()
	t.AppendFooter(table.Row{
		Colorize(fmt.Sprintf("BLUE %d/%d", score.Blue, g.Rules().NBlue), engine.Blue),
		"",
		fmt.Sprintf("%s to play", g.Team()),
		"",
		Colorize(fmt.Sprintf("RED %d/%d", score.Red, g.Rules().NRed), engine.Red),
	})
	t.Render()
}

// Rounds writes one line per committed round.
func Rounds(w io.Writer, rounds []engine.RoundResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Team", "Clue", "Guesses", "Made", "Outcome"})
	for i, r := range rounds {
		clue := r.Clue.String()
		if r.Forfeit && r.Clue.Word == "" {
			clue = "(forfeit)"
		}
		t.AppendRow(table.Row{i + 1, Colorize(r.Team.String(), r.Team), clue, fmt.Sprint(r.Guesses), r.GuessesMade, r.Outcome})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

// Stats writes a win tally.
func Stats(w io.Writer, blue, red, draws int64) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Result", "Games"})
	t.AppendRows([]table.Row{
		{Colorize("BLUE", engine.Blue), blue},
		{Colorize("RED", engine.Red), red},
		{"draw", draws},
	})
	t.AppendFooter(table.Row{"total", blue + red + draws})
	t.Render()
}
