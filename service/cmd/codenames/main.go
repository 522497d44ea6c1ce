// Command codenames plays Codenames between automated teams, against a
// physical board, or serves games over HTTP.
//
// Usage:
//
//	codenames play  [-seed N] [-rollouts N] [-max-turns N] [-agent random|policy]
//	codenames board [-file board.csv] [-ai-team R|B] [-rollouts N]
//	codenames stats [-games N] [-seed N] [-rollouts N]
//	codenames serve [-addr :8080]
//
// Settings not given as flags come from the environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/spymaster-lab/codenames/service/internal/config"
	"github.com/spymaster-lab/codenames/service/internal/logging"
	"github.com/spymaster-lab/codenames/service/internal/words"
)

const usage = `usage: codenames <command> [flags]

commands:
  play    self-play one game and print it
  board   play a physical board from a CSV file against the AI
  stats   self-play many games and tally the winners
  serve   run the HTTP server`

var errUsage = errors.New(usage)

// app carries what every subcommand needs.
type app struct {
	cfg config.Config
	log *logrus.Logger
	in  io.Reader
	out io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	a := &app{cfg: cfg, log: log, in: in, out: out}

	switch args[0] {
	case "play":
		return a.play(ctx, args[1:])
	case "board":
		return a.board(ctx, args[1:])
	case "stats":
		return a.stats(ctx, args[1:])
	case "serve":
		return a.serve(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

// wordList returns WORDS_FILE when set, otherwise the embedded list.
func (a *app) wordList() ([]string, error) {
	if a.cfg.WordsFile == "" {
		return words.Default(), nil
	}
	return words.Load(a.cfg.WordsFile)
}
