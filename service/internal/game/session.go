// internal/game/session.go
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/service/internal/logging"
	"github.com/spymaster-lab/codenames/service/internal/models"
)

// OnGameEndFunc defines the signature for a callback function executed when a game ends.
// It receives the game ID, the winner (NoColor on a draw) and the final score.
type OnGameEndFunc func(gameID uuid.UUID, winner engine.TeamColor, score engine.Score)

// Recorder persists finished games.
type Recorder interface {
	SaveGame(ctx context.Context, rec models.GameRecord) error
}

// ActionPublisher receives every logged action, e.g. the Redis action log.
type ActionPublisher interface {
	PublishGameAction(ctx context.Context, rec models.GameAction) error
}

// subscriberBuffer is the channel size for live action subscribers.
const subscriberBuffer = 256

// Session wraps one engine.Game with an action log, persistence and live
// subscribers.
type Session struct {
	ID        uuid.UUID
	Seed      uint64
	Engine    *engine.Game
	CreatedAt time.Time

	// RolloutAttempts speculative rounds run before each committed round.
	RolloutAttempts int

	GameOver bool
	winner   engine.TeamColor
	rounds   []engine.RoundResult

	actions     []models.GameAction
	actionIndex int
	subs        map[int]chan models.GameAction
	nextSub     int

	Mu sync.Mutex // Protects every field above.

	Log       logrus.FieldLogger
	Recorders []Recorder
	Publisher ActionPublisher // nil disables publishing

	// Communication Callbacks
	BroadcastFn func(rec models.GameAction) // Receives each action as it is logged.
	OnGameEnd   OnGameEndFunc
}

// NewSession starts a game on words with a generated code.
func NewSession(words []string, seed uint64, rules engine.Rules, log logrus.FieldLogger) (*Session, error) {
	g, err := engine.NewGame(words, seed, rules)
	if err != nil {
		return nil, err
	}
	return newSession(g, seed, log), nil
}

// NewSessionWithCode starts a game on a fixed board, e.g. one loaded from a file.
func NewSessionWithCode(words []string, code engine.Code, seed uint64, rules engine.Rules, log logrus.FieldLogger) (*Session, error) {
	g, err := engine.NewGameWithCode(words, code, seed, rules)
	if err != nil {
		return nil, err
	}
	return newSession(g, seed, log), nil
}

func newSession(g *engine.Game, seed uint64, log logrus.FieldLogger) *Session {
	id, _ := uuid.NewRandom()
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Session{
		ID:        id,
		Seed:      seed,
		Engine:    g,
		CreatedAt: time.Now().UTC(),
		subs:      make(map[int]chan models.GameAction),
		Log:       log.WithField("game", id),
	}
	g.OnEvent = s.logAction
	return s
}

// Play runs a complete self-play game and records it.
func (s *Session) Play(ctx context.Context, blue, red engine.Team) engine.GameResult {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.GameOver {
		s.Log.Warnf("Game %s: Play called, but game is already over.", s.ID)
		return s.resultLocked()
	}
	s.Log.Infof("Game %s: Starting self-play with %d rollout attempts.", s.ID, s.RolloutAttempts)
	res := s.Engine.Play(blue, red, engine.PlayOptions{RolloutAttempts: s.RolloutAttempts})
	s.rounds = append(s.rounds, res.Rounds...)
	s.endGame(ctx, res.Winner)
	return s.resultLocked()
}

// PlayRound plays one committed round for team, preceded by the configured
// rollouts, and ends the game if the round decided it.
func (s *Session) PlayRound(ctx context.Context, p engine.Team, team engine.TeamColor) (engine.RoundResult, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.GameOver {
		return engine.RoundResult{}, fmt.Errorf("game %s is over", s.ID)
	}
	if !team.IsTeam() {
		return engine.RoundResult{}, fmt.Errorf("cannot play a turn for %s", team)
	}
	for i := 0; i < s.RolloutAttempts; i++ {
		s.Engine.PlayRound(p.Guesser, p.Spymaster, engine.RoundOptions{Rollback: true, Team: team})
	}
	round := s.Engine.PlayRound(p.Guesser, p.Spymaster, engine.RoundOptions{Team: team})
	s.rounds = append(s.rounds, round)

	if w := s.Engine.WinnerAfter(round); w != engine.NoColor {
		s.finish(ctx, w)
	}
	return round, nil
}

// Simulate plays n speculative rounds for team; the game state is unchanged.
func (s *Session) Simulate(n int, p engine.Team, team engine.TeamColor) []engine.RoundResult {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.Engine.Simulate(n, p.Guesser, p.Spymaster, team)
}

// Guess applies a guess made outside an actor round, e.g. by a human at the
// table playing for team. Revealing the assassin loses the game for team.
func (s *Session) Guess(ctx context.Context, team engine.TeamColor, word string) (engine.TeamColor, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.GameOver {
		return engine.NoColor, fmt.Errorf("game %s is over", s.ID)
	}
	if err := s.Engine.SetTeam(team); err != nil {
		return engine.NoColor, err
	}
	c, err := s.Engine.GuessWord(word, "")
	if err != nil {
		return engine.NoColor, err
	}

	switch w := s.Engine.Winner(); {
	case c == engine.Assassin:
		s.finish(ctx, team.Other())
	case w != engine.NoColor:
		s.finish(ctx, w)
	}
	return c, nil
}

// Finish ends the game with the given winner, e.g. when a human quits.
func (s *Session) Finish(ctx context.Context, winner engine.TeamColor) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.finish(ctx, winner)
}

// finish logs the game_end action and ends the game.
// Assumes lock is held by caller.
func (s *Session) finish(ctx context.Context, winner engine.TeamColor) {
	if s.GameOver {
		return
	}
	s.logAction(engine.Event{Type: engine.EventGameEnd, Team: s.Engine.Team(), Winner: winner})
	s.endGame(ctx, winner)
}

// endGame marks the game over, persists the record and notifies listeners.
// Assumes lock is held by caller.
func (s *Session) endGame(ctx context.Context, winner engine.TeamColor) {
	if s.GameOver {
		s.Log.Warnf("Game %s: EndGame called, but game is already over.", s.ID)
		return
	}
	s.GameOver = true
	s.winner = winner
	score := s.Engine.Score()
	s.Log.WithFields(logrus.Fields{"winner": winner, "blue": score.Blue, "red": score.Red}).
		Infof("Game %s: Ended after %d rounds.", s.ID, len(s.rounds))

	rec := s.recordLocked()
	for _, r := range s.Recorders {
		if err := r.SaveGame(ctx, rec); err != nil {
			s.Log.WithError(err).Errorf("Game %s: Failed to save game record.", s.ID)
		}
	}
	if s.OnGameEnd != nil {
		s.OnGameEnd(s.ID, winner, score)
	}
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// Winner returns the winner once the game is over.
func (s *Session) Winner() (engine.TeamColor, bool) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.winner, s.GameOver
}

// Result returns the rounds committed so far with the current score.
func (s *Session) Result() engine.GameResult {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.resultLocked()
}

func (s *Session) resultLocked() engine.GameResult {
	return engine.GameResult{
		Winner: s.winner,
		Turns:  len(s.rounds),
		Score:  s.Engine.Score(),
		Rounds: append([]engine.RoundResult(nil), s.rounds...),
	}
}

// Record returns the storable form of the game.
func (s *Session) Record() models.GameRecord {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.recordLocked()
}

func (s *Session) recordLocked() models.GameRecord {
	return models.GameRecord{
		ID:        s.ID,
		Seed:      s.Seed,
		Words:     s.Engine.Words(),
		Code:      s.Engine.Code(),
		Winner:    s.winner,
		Turns:     len(s.rounds),
		Score:     s.Engine.Score(),
		Rounds:    models.NewRoundRecords(s.rounds),
		CreatedAt: s.CreatedAt,
	}
}

// Actions returns a copy of the action log.
func (s *Session) Actions() []models.GameAction {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return append([]models.GameAction(nil), s.actions...)
}

// Subscribe returns the actions logged so far and a channel carrying every
// later one. The channel is closed when the game ends or cancel is called.
// A subscriber that falls behind by more than its buffer misses actions.
func (s *Session) Subscribe() (backlog []models.GameAction, ch <-chan models.GameAction, cancel func()) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	backlog = append([]models.GameAction(nil), s.actions...)
	c := make(chan models.GameAction, subscriberBuffer)
	if s.GameOver {
		close(c)
		return backlog, c, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = c
	cancel = func() {
		s.Mu.Lock()
		defer s.Mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			close(sub)
			delete(s.subs, id)
		}
	}
	return backlog, c, cancel
}

// logAction appends an engine event to the action log, broadcasts it and
// publishes it asynchronously. Events of rolled-back rounds go to the server
// log only, as their guesses carry colors of words that stay hidden.
// Assumes lock is held by caller.
func (s *Session) logAction(ev engine.Event) {
	if ev.Speculative {
		s.Log.WithFields(logging.EventFields(ev)).Debug("speculative action")
		return
	}
	s.actionIndex++
	rec := models.GameAction{
		GameID:    s.ID,
		Index:     s.actionIndex,
		Event:     ev,
		Timestamp: time.Now().UnixMilli(),
	}
	s.actions = append(s.actions, rec)
	s.Log.WithFields(logging.EventFields(ev)).Log(logging.LevelFor(ev), "game action")

	s.fireEvent(rec)
	for id, ch := range s.subs {
		select {
		case ch <- rec:
		default:
			s.Log.Warnf("Game %s: Subscriber %d is full, dropping action %d.", s.ID, id, rec.Index)
		}
	}

	if s.Publisher == nil {
		return
	}
	go func(rec models.GameAction) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.Publisher.PublishGameAction(ctx, rec); err != nil {
			s.Log.WithError(err).Errorf("Game %s: Failed publishing action %d (%s).", s.ID, rec.Index, rec.Event.Type)
		}
	}(rec)
}

// fireEvent sends an action via the BroadcastFn callback.
// Assumes lock is held by caller.
func (s *Session) fireEvent(rec models.GameAction) {
	if s.BroadcastFn != nil {
		s.BroadcastFn(rec)
	} else {
		s.Log.Debugf("Game %s: BroadcastFn is nil, cannot broadcast action %s.", s.ID, rec.Event.Type)
	}
}
