// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/spymaster-lab/codenames/engine"
)

// New builds a logger writing to out. format is "text" or "json".
func New(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log, nil
}

// EventFields flattens an engine event into structured log fields, skipping
// empty ones.
func EventFields(ev engine.Event) logrus.Fields {
	f := logrus.Fields{"event": string(ev.Type), "team": ev.Team.String()}
	if ev.Role != "" {
		f["role"] = ev.Role
	}
	if ev.Word != "" {
		f["word"] = ev.Word
	}
	if ev.Count != 0 {
		f["count"] = ev.Count
	}
	if ev.Color != engine.NoColor {
		f["color"] = ev.Color.String()
	}
	if ev.Outcome != engine.OutcomeNone {
		f["outcome"] = ev.Outcome.String()
	}
	if ev.Type == engine.EventRoundEnd || ev.Type == engine.EventRollback {
		f["guesses"] = ev.GuessesMade
	}
	if ev.Attempt != 0 {
		f["attempt"] = ev.Attempt
	}
	if ev.Reason != "" {
		f["reason"] = ev.Reason
	}
	if ev.Speculative {
		f["speculative"] = true
	}
	if ev.Type == engine.EventGameEnd {
		f["winner"] = ev.Winner.String()
	}
	return f
}

// LevelFor picks the level an event is logged at. Forfeits are warnings and
// speculative activity is debug.
func LevelFor(ev engine.Event) logrus.Level {
	switch {
	case ev.Type == engine.EventForfeit:
		return logrus.WarnLevel
	case ev.Speculative:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}
