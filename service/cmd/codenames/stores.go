package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/service/internal/cache"
	"github.com/spymaster-lab/codenames/service/internal/database"
	"github.com/spymaster-lab/codenames/service/internal/game"
	"github.com/spymaster-lab/codenames/service/internal/server"
	"github.com/spymaster-lab/codenames/service/internal/storage"
)

// stores holds the optional persistence backends named in the config.
type stores struct {
	recorders []game.Recorder
	history   server.History // PostgreSQL when configured, else SQLite
	cache     *cache.Cache
	closers   []func()
}

func (a *app) openStores(ctx context.Context) (*stores, error) {
	st := &stores{}
	if a.cfg.DBPath != "" {
		db, err := storage.New(a.cfg.DBPath)
		if err != nil {
			st.close()
			return nil, err
		}
		st.recorders = append(st.recorders, db)
		st.history = db
		st.closers = append(st.closers, func() { db.Close() })
		a.log.WithField("path", a.cfg.DBPath).Info("Recording games to SQLite")
	}
	if a.cfg.DatabaseURL != "" {
		pg, err := database.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			st.close()
			return nil, err
		}
		st.recorders = append(st.recorders, pg)
		st.history = pg
		st.closers = append(st.closers, pg.Close)
		a.log.Info("Recording games to PostgreSQL")
	}
	if a.cfg.RedisAddr != "" {
		c, err := cache.New(ctx, a.cfg.RedisAddr)
		if err != nil {
			st.close()
			return nil, err
		}
		st.cache = c
		st.closers = append(st.closers, func() { c.Close() })
		a.log.WithField("addr", a.cfg.RedisAddr).Info("Recording win statistics to Redis")
	}
	return st, nil
}

func (st *stores) close() {
	for i := len(st.closers) - 1; i >= 0; i-- {
		st.closers[i]()
	}
}

// attach wires a session to the open stores. Wins are counted before the
// game's Play or Guess call returns so short-lived commands lose nothing.
func (a *app) attach(st *stores, sess *game.Session) {
	sess.Recorders = append(sess.Recorders, st.recorders...)
	if st.cache == nil {
		return
	}
	sess.Publisher = st.cache
	sess.OnGameEnd = func(id uuid.UUID, winner engine.TeamColor, _ engine.Score) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := st.cache.RecordWin(ctx, winner); err != nil {
			a.log.WithError(err).Errorf("Game %s: Failed recording win for %s.", id, winner)
		}
	}
}
