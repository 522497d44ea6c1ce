package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/service/internal/boardfile"
	"github.com/spymaster-lab/codenames/service/internal/game"
	"github.com/spymaster-lab/codenames/service/internal/render"
)

const boardPrompt = `Enter one of:
  'q' to quit the game
  'c' to have the AI make its move. AI team is %s
  a word from the board to make that guess for the human team
Your choice: `

func (a *app) board(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	var (
		file     = fs.String("file", a.cfg.BoardFile, "Two-row board CSV: 25 words, then 25 letters b/r/y/n.")
		aiTeam   = fs.String("ai-team", "", "Team the AI plays, R or B. Asked interactively when empty.")
		rollouts = fs.Int("rollouts", a.cfg.RolloutAttempts, "Speculative rounds before each AI move.")
		kind     = fs.String("agent", "", "AI actors: policy or random. Defaults to policy when POLICY_URL is set.")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rollouts < 0 {
		return errors.New("-rollouts must be >= 0")
	}
	if *kind == "" {
		*kind = "random"
		if a.cfg.PolicyURL != "" {
			*kind = "policy"
		} else {
			a.log.Warn("POLICY_URL is not set; the AI plays with random agents")
		}
	}

	b, err := boardfile.Load(*file)
	if err != nil {
		return err
	}
	in := bufio.NewScanner(a.in)
	team, err := resolveTeam(*aiTeam, in, a.out)
	if err != nil {
		return err
	}
	ai, err := a.team(*kind, a.cfg.Seed)
	if err != nil {
		return err
	}

	sess, err := game.NewSessionWithCode(b.Words, b.Code, a.cfg.Seed, a.cfg.Rules(), a.log)
	if err != nil {
		return err
	}
	sess.RolloutAttempts = *rollouts
	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()
	a.attach(st, sess)

	return playBoard(ctx, sess, ai, team, in, a.out)
}

// resolveTeam parses arg, or asks on in until it gets R or B.
func resolveTeam(arg string, in *bufio.Scanner, out io.Writer) (engine.TeamColor, error) {
	if arg != "" {
		return parseTeam(arg)
	}
	for {
		fmt.Fprint(out, "Should AI play as RED or BLUE? Enter R/B: ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return engine.NoColor, err
			}
			return engine.NoColor, io.ErrUnexpectedEOF
		}
		if t, err := parseTeam(in.Text()); err == nil {
			return t, nil
		}
		fmt.Fprintln(out, "Invalid input. Please enter R or B.")
	}
}

func parseTeam(s string) (engine.TeamColor, error) {
	t, err := engine.ParseTeamColor(strings.TrimSpace(s))
	if err != nil || !t.IsTeam() {
		return engine.NoColor, fmt.Errorf("AI team must be R or B, got %q", s)
	}
	return t, nil
}

// playBoard runs the interactive loop: the AI plays aiTeam when asked, every
// other input is a guess for the human team.
func playBoard(ctx context.Context, sess *game.Session, ai engine.Team, aiTeam engine.TeamColor, in *bufio.Scanner, out io.Writer) error {
	human := aiTeam.Other()
	render.Board(out, sess.Engine, true)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(out, boardPrompt, render.Colorize(aiTeam.String(), aiTeam))
		if !in.Scan() {
			break
		}
		switch input := strings.TrimSpace(in.Text()); input {
		case "":
			continue
		case "q":
			render.Board(out, sess.Engine, true)
			return nil
		case "c":
			round, err := sess.PlayRound(ctx, ai, aiTeam)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "AI clue %s: guessed %v, %s\n", round.Clue, round.Guesses, round.Outcome)
		default:
			c, err := sess.Guess(ctx, human, boardWord(sess.Engine.Words(), input))
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, render.Colorize(c.String(), c))
		}

		render.Board(out, sess.Engine, false)
		if winner, over := sess.Winner(); over {
			fmt.Fprintf(out, "Game over: %s.\n", describeWinner(winner))
			render.Board(out, sess.Engine, true)
			return nil
		}
	}
	if err := in.Err(); err != nil {
		return err
	}
	render.Board(out, sess.Engine, true)
	return nil
}

// boardWord returns the board's spelling of input, compared case-insensitively.
func boardWord(words []string, input string) string {
	for _, w := range words {
		if strings.EqualFold(w, input) {
			return w
		}
	}
	return input
}
