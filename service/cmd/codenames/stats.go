package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/spymaster-lab/codenames/service/internal/models"
	"github.com/spymaster-lab/codenames/service/internal/render"
)

func (a *app) stats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	var (
		games    = fs.Int("games", 100, "Number of games to play.")
		seed     = fs.Uint64("seed", a.cfg.Seed, "Seed of the first game; game i uses seed+i.")
		rollouts = fs.Int("rollouts", a.cfg.RolloutAttempts, "Speculative rounds before each committed round.")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *games < 1 || *rollouts < 0 {
		return errors.New("-games must be >= 1 and -rollouts >= 0")
	}
	list, err := a.wordList()
	if err != nil {
		return err
	}
	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	// Per-action logs would drown the tally.
	if a.log.GetLevel() == logrus.InfoLevel {
		a.log.SetLevel(logrus.WarnLevel)
	}

	var tally models.WinStats
	for i := 0; i < *games; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := *seed + uint64(i)
		sess, err := a.newSelfPlay(list, s, a.cfg.Rules(), *rollouts)
		if err != nil {
			return err
		}
		a.attach(st, sess)
		blue, _ := a.team("random", s)
		red, _ := a.team("random", s+1)
		tally.Add(sess.Play(ctx, blue, red).Winner)
	}

	fmt.Fprintf(a.out, "This run (%d games):\n", tally.Total())
	render.Stats(a.out, tally.Blue, tally.Red, tally.Draws)

	if st.cache != nil {
		all, err := st.cache.WinStats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "All recorded games:")
		render.Stats(a.out, all.Blue, all.Red, all.Draws)
	}
	return nil
}
