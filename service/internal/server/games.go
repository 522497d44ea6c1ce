// internal/server/games.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/engine/agent"
	"github.com/spymaster-lab/codenames/service/internal/game"
	"github.com/spymaster-lab/codenames/service/internal/models"
	"github.com/spymaster-lab/codenames/service/internal/words"
)

// MaxRolloutAttempts bounds the rollouts a single POST /games may ask for.
const MaxRolloutAttempts = 10

type createGameReq struct {
	Seed            *uint64 `json:"seed,omitempty"` // random when omitted
	RolloutAttempts *int    `json:"rolloutAttempts,omitempty"`
	MaxTurns        *int    `json:"maxTurns,omitempty"`
}

type gameSummary struct {
	ID        uuid.UUID        `json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	GameOver  bool             `json:"gameOver"`
	Winner    engine.TeamColor `json:"winner"`
	Turns     int              `json:"turns"`
}

type statsRes struct {
	models.WinStats
	Total  int64  `json:"total"`
	Source string `json:"source"` // "redis", "history" or "memory"
}

// handleCreateGame plays a self-play game between random agents and returns
// its record.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	rules := s.cfg.Rules()
	if req.MaxTurns != nil {
		if *req.MaxTurns < 0 {
			writeError(w, http.StatusBadRequest, "invalid_max_turns")
			return
		}
		rules.MaxTurns = *req.MaxTurns
	}
	rollouts := s.cfg.RolloutAttempts
	if req.RolloutAttempts != nil {
		rollouts = *req.RolloutAttempts
	}
	if rollouts < 0 || rollouts > MaxRolloutAttempts {
		writeError(w, http.StatusBadRequest, "invalid_rollout_attempts")
		return
	}
	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	board, err := words.Sample(s.words, engine.BoardSize, seed)
	if err != nil {
		s.log.WithError(err).Error("sample board")
		writeError(w, http.StatusInternalServerError, "word_list_too_small")
		return
	}
	sess, err := game.NewSession(board, seed, rules, s.log)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess.RolloutAttempts = rollouts
	s.attach(sess)
	s.games.Add(sess)

	blue := engine.Team{Spymaster: agent.NewRandomSpymaster(seed), Guesser: agent.RandomGuesser{}}
	red := engine.Team{Spymaster: agent.NewRandomSpymaster(seed + 1), Guesser: agent.RandomGuesser{}}
	sess.Play(r.Context(), blue, red)

	writeJSON(w, http.StatusCreated, sess.Record())
}

// attach wires a new session to the configured stores.
func (s *Server) attach(sess *game.Session) {
	if s.history != nil {
		sess.Recorders = append(sess.Recorders, s.history)
	}
	if s.cache == nil {
		return
	}
	sess.Publisher = s.cache
	sess.OnGameEnd = func(id uuid.UUID, winner engine.TeamColor, _ engine.Score) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.cache.RecordWin(ctx, winner); err != nil {
				s.log.WithError(err).Errorf("Game %s: Failed recording win for %s.", id, winner)
			}
		}()
	}
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	list := s.games.List()
	out := make([]gameSummary, 0, len(list))
	for _, sess := range list {
		res := sess.Result()
		winner, over := sess.Winner()
		out = append(out, gameSummary{
			ID:        sess.ID,
			CreatedAt: sess.CreatedAt,
			GameOver:  over,
			Winner:    winner,
			Turns:     res.Turns,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id")
		return
	}
	if sess, ok := s.games.Get(id); ok {
		writeJSON(w, http.StatusOK, sess.Record())
		return
	}
	if s.history == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	rec, err := s.history.GetGame(r.Context(), id)
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found")
	case err != nil:
		s.log.WithError(err).WithField("game", id).Error("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
	default:
		writeJSON(w, http.StatusOK, rec)
	}
}

// handleGetState returns the board as a guesser (default) or the spymaster
// (?role=spymaster) sees it.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id")
		return
	}
	sess, ok := s.games.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	switch role := r.URL.Query().Get("role"); role {
	case "", engine.RoleGuesser:
		writeJSON(w, http.StatusOK, sess.State(false))
	case engine.RoleSpymaster:
		writeJSON(w, http.StatusOK, sess.State(true))
	default:
		writeError(w, http.StatusBadRequest, "bad_role")
	}
}

// handleStats reports win counts from Redis, then the history store, then
// the sessions held in memory, whichever is configured first.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var (
		stats  models.WinStats
		source string
		err    error
	)
	switch {
	case s.cache != nil:
		source = "redis"
		stats, err = s.cache.WinStats(r.Context())
	case s.history != nil:
		source = "history"
		stats, err = s.history.WinStats(r.Context())
	default:
		source = "memory"
		for _, sess := range s.games.List() {
			if winner, over := sess.Winner(); over {
				stats.Add(winner)
			}
		}
	}
	if err != nil {
		s.log.WithError(err).WithField("source", source).Error("load win stats")
		writeError(w, http.StatusInternalServerError, "stats_failed")
		return
	}
	writeJSON(w, http.StatusOK, statsRes{WinStats: stats, Total: stats.Total(), Source: source})
}
