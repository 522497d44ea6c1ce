// internal/server/websocket.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/spymaster-lab/codenames/service/internal/models"
)

const wsWriteTimeout = 5 * time.Second

// handleWebSocket streams a game's action log as JSON messages, one per
// action. For a game still running in this process the stream continues
// with live actions until the game ends; otherwise the Redis log is replayed.
// The server closes the connection with a normal closure at the end.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id")
		return
	}

	var (
		backlog []models.GameAction
		live    <-chan models.GameAction
		cancel  = func() {}
	)
	if sess, ok := s.games.Get(id); ok {
		backlog, live, cancel = sess.Subscribe()
	} else if s.cache != nil {
		backlog, err = s.cache.GameActions(r.Context(), id)
		if err != nil {
			s.log.WithError(err).WithField("game", id).Error("load action log")
			writeError(w, http.StatusInternalServerError, "load_failed")
			return
		}
		if len(backlog) == 0 {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
	} else {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	defer cancel()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // spectators may connect from any origin
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept")
		return
	}
	defer conn.CloseNow()

	// Spectators only listen; CloseRead handles control frames and cancels
	// ctx when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	for _, a := range backlog {
		if err := writeAction(ctx, conn, a); err != nil {
			return
		}
	}
	for live != nil {
		select {
		case a, ok := <-live:
			if !ok {
				live = nil
				continue
			}
			if err := writeAction(ctx, conn, a); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
	conn.Close(websocket.StatusNormalClosure, "end of game log")
}

func writeAction(ctx context.Context, conn *websocket.Conn, a models.GameAction) error {
	ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, a)
}
