// internal/server/server.go
//
// HTTP server for the Codenames service.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/health", GET /games/{id}, GET /stats, websocket replay.
//   - Admin endpoints (require auth): POST /games runs a self-play game.
//   - Game history through the configured store, win counts through Redis.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spymaster-lab/codenames/service/internal/cache"
	"github.com/spymaster-lab/codenames/service/internal/config"
	"github.com/spymaster-lab/codenames/service/internal/database"
	"github.com/spymaster-lab/codenames/service/internal/game"
	"github.com/spymaster-lab/codenames/service/internal/models"
	"github.com/spymaster-lab/codenames/service/internal/storage"
)

// History stores finished games. Both the SQLite and the PostgreSQL stores
// satisfy it.
type History interface {
	game.Recorder
	GetGame(ctx context.Context, id uuid.UUID) (models.GameRecord, error)
	WinStats(ctx context.Context) (models.WinStats, error)
}

// Deps are the collaborators a Server uses. Only Config and Words are required.
type Deps struct {
	Config  config.Config
	Log     logrus.FieldLogger
	Words   []string
	Games   *game.Manager
	History History      // nil keeps history in memory only
	Cache   *cache.Cache // nil disables win counts and the action log
}

// Server bundles the router with the game manager and stores.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	log     logrus.FieldLogger
	words   []string
	games   *game.Manager
	history History
	cache   *cache.Cache
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.Games == nil {
		d.Games = game.NewManager()
	}
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     d.Config,
		log:     d.Log,
		words:   d.Words,
		games:   d.Games,
		history: d.History,
		cache:   d.Cache,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.requestLogger)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// The websocket route is kept out of the timeout group so streams can
	// outlive a single request budget.
	s.r.Get("/games/{id}/ws", s.handleWebSocket)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Use(jsonContentType)

		r.Post("/auth/token", s.handleToken)
		r.Get("/games", s.handleListGames)
		r.Get("/games/{id}", s.handleGetGame)
		r.Get("/games/{id}/state", s.handleGetState)
		r.Get("/stats", s.handleStats)
		r.With(s.requireAuth()).Post("/games", s.handleCreateGame)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// Start serves HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Infof("Listening on %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs each request with its chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"request_id": chimw.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
		}).Debug("request")
	})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound) || errors.Is(err, database.ErrNotFound)
}
