// internal/server/server_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/service/internal/cache"
	"github.com/spymaster-lab/codenames/service/internal/config"
	"github.com/spymaster-lab/codenames/service/internal/game"
	"github.com/spymaster-lab/codenames/service/internal/models"
	"github.com/spymaster-lab/codenames/service/internal/storage"
	"github.com/spymaster-lab/codenames/service/internal/words"
)

const adminPassword = "hunter2"

type testEnv struct {
	ts    *httptest.Server
	srv   *Server
	games *game.Manager
}

func newTestEnv(t *testing.T, cfg config.Config, d Deps) *testEnv {
	t.Helper()
	logger, _ := test.NewNullLogger()
	d.Config = cfg
	d.Log = logger
	if d.Words == nil {
		d.Words = words.Default()
	}
	if d.Games == nil {
		d.Games = game.NewManager()
	}
	srv := New(d)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return &testEnv{ts: ts, srv: srv, games: d.Games}
}

func authConfig(t *testing.T) config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.JWTSecret = "test-secret"
	cfg.AdminPasswordHash = string(hash)
	return cfg
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createGame(t *testing.T, env *testEnv, token string, body any) models.GameRecord {
	t.Helper()
	resp := doJSON(t, http.MethodPost, env.ts.URL+"/games", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[models.GameRecord](t, resp)
}

func wsURL(ts *httptest.Server, id string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/games/" + id + "/ws"
}

// readAll reads actions until the server closes the stream.
func readAll(t *testing.T, ctx context.Context, conn *websocket.Conn) ([]models.GameAction, error) {
	t.Helper()
	var out []models.GameAction
	for {
		var a models.GameAction
		if err := wsjson.Read(ctx, conn, &a); err != nil {
			return out, err
		}
		out = append(out, a)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	resp := doJSON(t, http.MethodGet, env.ts.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]bool{"ok": true}, decode[map[string]bool](t, resp))

	resp = doJSON(t, http.MethodGet, env.ts.URL+"/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t, authConfig(t), Deps{})

	resp := doJSON(t, http.MethodPost, env.ts.URL+"/auth/token", "", tokenReq{Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, env.ts.URL+"/games", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, env.ts.URL+"/games", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, env.ts.URL+"/auth/token", "", tokenReq{Password: adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok := decode[tokenRes](t, resp)
	require.NotEmpty(t, tok.Token)
	assert.True(t, tok.ExpiresAt.After(time.Now()))

	rec := createGame(t, env, tok.Token, nil)
	assert.Len(t, rec.Words, engine.BoardSize)
	assert.Len(t, rec.Code, engine.BoardSize)
	assert.Equal(t, len(rec.Rounds), rec.Turns)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	env := newTestEnv(t, authConfig(t), Deps{})
	other := &Server{cfg: config.Config{JWTSecret: "other-secret"}}
	tok, _, err := other.issueToken(adminSubject)
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, env.ts.URL+"/games", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthDisabled(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	resp := doJSON(t, http.MethodPost, env.ts.URL+"/auth/token", "", tokenReq{Password: adminPassword})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// Without a secret the admin routes are open.
	createGame(t, env, "", nil)
}

func TestCreateGameDeterministicSeed(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	seed := uint64(1234)
	a := createGame(t, env, "", createGameReq{Seed: &seed})
	b := createGame(t, env, "", createGameReq{Seed: &seed})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, seed, a.Seed)
	assert.Equal(t, a.Words, b.Words)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Rounds, b.Rounds)
	assert.Equal(t, a.Winner, b.Winner)
}

func TestCreateGameMaxTurns(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	one := 1
	rec := createGame(t, env, "", createGameReq{MaxTurns: &one})
	assert.LessOrEqual(t, rec.Turns, 1)
}

func TestCreateGameBadRequests(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	neg, tooMany := -1, MaxRolloutAttempts+1

	for name, body := range map[string]any{
		"negative max turns": createGameReq{MaxTurns: &neg},
		"negative rollouts":  createGameReq{RolloutAttempts: &neg},
		"too many rollouts":  createGameReq{RolloutAttempts: &tooMany},
		"not json":           "{",
	} {
		t.Run(name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, env.ts.URL+"/games", "", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
	assert.Empty(t, env.games.List())
}

func TestGetGame(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	rec := createGame(t, env, "", nil)

	resp := doJSON(t, http.MethodGet, env.ts.URL+"/games/"+rec.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[models.GameRecord](t, resp)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Rounds, got.Rounds)

	resp = doJSON(t, http.MethodGet, env.ts.URL+"/games/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = doJSON(t, http.MethodGet, env.ts.URL+"/games/6f1c1f36-6a57-4b8e-9d1e-53a8f0bbd2a1", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, env.ts.URL+"/games", "", nil)
	list := decode[[]gameSummary](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)
	assert.True(t, list[0].GameOver)
}

// TestGetGameFromHistory verifies games survive the process that played them.
func TestGetGameFromHistory(t *testing.T) {
	st, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	first := newTestEnv(t, config.Default(), Deps{History: st})
	rec := createGame(t, first, "", nil)

	second := newTestEnv(t, config.Default(), Deps{History: st})
	resp := doJSON(t, http.MethodGet, second.ts.URL+"/games/"+rec.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[models.GameRecord](t, resp)
	assert.Equal(t, rec.Words, got.Words)
	assert.Equal(t, rec.Winner, got.Winner)

	resp = doJSON(t, http.MethodGet, second.ts.URL+"/stats", "", nil)
	stats := decode[statsRes](t, resp)
	assert.Equal(t, "history", stats.Source)
	assert.Equal(t, int64(1), stats.Total)
}

func TestGetState(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	rec := createGame(t, env, "", nil)
	base := env.ts.URL + "/games/" + rec.ID.String() + "/state"

	resp := doJSON(t, http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	guesser := decode[game.ObfGameState](t, resp)
	require.Len(t, guesser.Board, engine.BoardSize)
	for _, cell := range guesser.Board {
		if !cell.Revealed {
			assert.Equal(t, engine.NoColor, cell.Color)
		}
	}

	resp = doJSON(t, http.MethodGet, base+"?role=spymaster", "", nil)
	spymaster := decode[game.ObfGameState](t, resp)
	for _, cell := range spymaster.Board {
		assert.Equal(t, rec.Code[cell.Word], cell.Color)
	}

	resp = doJSON(t, http.MethodGet, base+"?role=referee", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatsInMemory(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	createGame(t, env, "", nil)
	createGame(t, env, "", nil)

	resp := doJSON(t, http.MethodGet, env.ts.URL+"/stats", "", nil)
	stats := decode[statsRes](t, resp)
	assert.Equal(t, "memory", stats.Source)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, stats.Total, stats.Blue+stats.Red+stats.Draws)
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.New(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestStatsAndReplayFromRedis(t *testing.T) {
	c := newTestCache(t)
	env := newTestEnv(t, config.Default(), Deps{Cache: c})
	rec := createGame(t, env, "", nil)

	sess, ok := env.games.Get(rec.ID)
	require.True(t, ok)
	want := sess.Actions()

	assert.Eventually(t, func() bool {
		stats, err := c.WinStats(context.Background())
		return err == nil && stats.Total() == 1
	}, 2*time.Second, 20*time.Millisecond)
	resp := doJSON(t, http.MethodGet, env.ts.URL+"/stats", "", nil)
	stats := decode[statsRes](t, resp)
	assert.Equal(t, "redis", stats.Source)
	assert.Equal(t, int64(1), stats.Total)
	assert.Eventually(t, func() bool {
		got, err := c.GameActions(context.Background(), rec.ID)
		return err == nil && len(got) == len(want)
	}, 2*time.Second, 20*time.Millisecond)

	// Once the session is gone the websocket replays the Redis log.
	env.games.Remove(rec.ID)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, wsURL(env.ts, rec.ID.String()), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	got, err := readAll(t, ctx, conn)
	assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))
	require.Len(t, got, len(want))
	indices := make(map[int]bool)
	for _, a := range got {
		indices[a.Index] = true
	}
	assert.Len(t, indices, len(want))
}

func TestWebSocketReplayFinishedGame(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	rec := createGame(t, env, "", nil)
	sess, _ := env.games.Get(rec.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, wsURL(env.ts, rec.ID.String()), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	got, err := readAll(t, ctx, conn)
	assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))
	assert.Equal(t, sess.Actions(), got)
}

func TestWebSocketLiveGame(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	board, err := words.Sample(words.Default(), engine.BoardSize, 5)
	require.NoError(t, err)
	sess, err := game.NewSession(board, 5, engine.DefaultRules(), nil)
	require.NoError(t, err)
	env.games.Add(sess)

	// Find a neutral word so the first guess does not end the game.
	var neutral []string
	for w, c := range sess.Engine.Code() {
		if c == engine.Neutral {
			neutral = append(neutral, w)
		}
	}
	require.GreaterOrEqual(t, len(neutral), 2)

	bg := context.Background()
	_, err = sess.Guess(bg, engine.Blue, neutral[0])
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(bg, 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, wsURL(env.ts, sess.ID.String()), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	// The backlog arrives first, which also means the stream is subscribed.
	var first models.GameAction
	require.NoError(t, wsjson.Read(ctx, conn, &first))
	assert.Equal(t, neutral[0], first.Event.Word)

	_, err = sess.Guess(bg, engine.Red, neutral[1])
	require.NoError(t, err)
	var second models.GameAction
	require.NoError(t, wsjson.Read(ctx, conn, &second))
	assert.Equal(t, neutral[1], second.Event.Word)
	assert.Equal(t, engine.Red, second.Event.Team)

	sess.Finish(bg, engine.Blue)
	rest, err := readAll(t, ctx, conn)
	assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))
	require.Len(t, rest, 1)
	assert.Equal(t, engine.EventGameEnd, rest[0].Event.Type)
	assert.Equal(t, engine.Blue, rest[0].Event.Winner)
}

func TestWebSocketUnknownGame(t *testing.T) {
	env := newTestEnv(t, config.Default(), Deps{})
	resp := doJSON(t, http.MethodGet, env.ts.URL+"/games/6f1c1f36-6a57-4b8e-9d1e-53a8f0bbd2a1/ws", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
