package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/engine/agent"
	"github.com/spymaster-lab/codenames/service/internal/game"
	"github.com/spymaster-lab/codenames/service/internal/policy"
	"github.com/spymaster-lab/codenames/service/internal/render"
	"github.com/spymaster-lab/codenames/service/internal/words"
)

// team builds the actors for one side. kind is "random" or "policy"; seed
// only matters for random spymasters.
func (a *app) team(kind string, seed uint64) (engine.Team, error) {
	switch kind {
	case "random":
		return engine.Team{Spymaster: agent.NewRandomSpymaster(seed), Guesser: agent.RandomGuesser{}}, nil
	case "policy":
		if a.cfg.PolicyURL == "" {
			return engine.Team{}, errors.New("POLICY_URL is not set")
		}
		c := policy.NewClient(a.cfg.PolicyURL, a.cfg.PolicyTimeout, a.log)
		return engine.Team{Spymaster: &policy.Spymaster{Client: c}, Guesser: &policy.Guesser{Client: c}}, nil
	default:
		return engine.Team{}, fmt.Errorf("unknown agent %q (want random or policy)", kind)
	}
}

// newSelfPlay samples a board for seed and opens a session on it.
func (a *app) newSelfPlay(list []string, seed uint64, rules engine.Rules, rollouts int) (*game.Session, error) {
	board, err := words.Sample(list, engine.BoardSize, seed)
	if err != nil {
		return nil, err
	}
	sess, err := game.NewSession(board, seed, rules, a.log)
	if err != nil {
		return nil, err
	}
	sess.RolloutAttempts = rollouts
	return sess, nil
}

func (a *app) play(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	var (
		seed     = fs.Uint64("seed", a.cfg.Seed, "Seed for the word sample and the board shuffle.")
		rollouts = fs.Int("rollouts", a.cfg.RolloutAttempts, "Speculative rounds before each committed round.")
		maxTurns = fs.Int("max-turns", a.cfg.MaxTurns, "Committed rounds before a draw; 0 means unlimited.")
		kind     = fs.String("agent", "random", "Actors for both teams: random or policy.")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rollouts < 0 || *maxTurns < 0 {
		return errors.New("-rollouts and -max-turns must be >= 0")
	}

	list, err := a.wordList()
	if err != nil {
		return err
	}
	rules := a.cfg.Rules()
	rules.MaxTurns = *maxTurns
	sess, err := a.newSelfPlay(list, *seed, rules, *rollouts)
	if err != nil {
		return err
	}
	blue, err := a.team(*kind, *seed)
	if err != nil {
		return err
	}
	red, err := a.team(*kind, *seed+1)
	if err != nil {
		return err
	}

	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()
	a.attach(st, sess)

	render.Board(a.out, sess.Engine, true)
	res := sess.Play(ctx, blue, red)
	render.Rounds(a.out, res.Rounds)
	render.Board(a.out, sess.Engine, false)
	fmt.Fprintf(a.out, "Game %s: %s after %d rounds.\n", sess.ID, describeWinner(res.Winner), res.Turns)
	return nil
}

func describeWinner(w engine.TeamColor) string {
	if w == engine.NoColor {
		return "draw"
	}
	return render.Colorize(w.String(), w) + " wins"
}
