package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/engine/agent"
	"github.com/spymaster-lab/codenames/service/internal/game"
)

func init() { color.NoColor = true }

// lower-case words as a hand-written board file would have them
var (
	blueWords    = []string{"apple", "bank", "berlin", "card", "castle", "chair", "cloud", "diamond", "dragon"}
	redWords     = []string{"eagle", "engine", "fire", "forest", "ghost", "hotel", "ice", "jupiter"}
	neutralWords = []string{"knight", "lemon", "moon", "nurse", "octopus", "piano", "queen"}
	assassinWord = "robot"
)

func newBoardSession(t *testing.T) *game.Session {
	t.Helper()
	var words []string
	code := engine.Code{}
	for _, group := range []struct {
		words []string
		color engine.TeamColor
	}{
		{blueWords, engine.Blue},
		{redWords, engine.Red},
		{neutralWords, engine.Neutral},
		{[]string{assassinWord}, engine.Assassin},
	} {
		for _, w := range group.words {
			words = append(words, w)
			code[w] = group.color
		}
	}
	logger, _ := test.NewNullLogger()
	sess, err := game.NewSessionWithCode(words, code, 0, engine.DefaultRules(), logger)
	require.NoError(t, err)
	return sess
}

func scanner(input string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(input))
}

func idleAI() engine.Team {
	return engine.Team{Spymaster: agent.NewScriptedSpymaster(), Guesser: agent.NewScriptedGuesser()}
}

func TestPlayBoardHumanHitsAssassin(t *testing.T) {
	sess := newBoardSession(t)
	var out bytes.Buffer

	err := playBoard(context.Background(), sess, idleAI(), engine.Blue, scanner("ROBOT\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "ASSASSIN")
	assert.Contains(t, out.String(), "Game over: BLUE wins.")
	winner, over := sess.Winner()
	assert.True(t, over)
	assert.Equal(t, engine.Blue, winner)
}

func TestPlayBoardAIMove(t *testing.T) {
	sess := newBoardSession(t)
	ai := engine.Team{
		Spymaster: agent.NewScriptedSpymaster(engine.Clue{Word: "WYRM", Count: 1}),
		Guesser:   agent.NewScriptedGuesser("dragon"),
	}
	var out bytes.Buffer

	err := playBoard(context.Background(), sess, ai, engine.Blue, scanner("c\nq\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "AI team is BLUE")
	assert.Contains(t, out.String(), "AI clue WYRM,1: guessed [dragon], NONE")
	assert.True(t, sess.Engine.Guessed("dragon"))
	_, over := sess.Winner()
	assert.False(t, over, "quitting does not end the game")
}

func TestPlayBoardRejectsBadGuess(t *testing.T) {
	sess := newBoardSession(t)
	var out bytes.Buffer

	// Unknown word, then a valid one typed in another case, then EOF.
	err := playBoard(context.Background(), sess, idleAI(), engine.Red, scanner("zebra\n\nMoon\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "not on the board")
	assert.True(t, sess.Engine.Guessed("moon"))
	actions := sess.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, engine.Blue, actions[0].Event.Team, "human plays the team the AI does not")
}

func TestPlayBoardCancelled(t *testing.T) {
	sess := newBoardSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := playBoard(ctx, sess, idleAI(), engine.Red, scanner("moon\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveTeam(t *testing.T) {
	var out bytes.Buffer
	team, err := resolveTeam("", scanner("x\nr\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, engine.Red, team)
	assert.Contains(t, out.String(), "Invalid input")

	team, err = resolveTeam("B", scanner(""), &out)
	require.NoError(t, err)
	assert.Equal(t, engine.Blue, team)

	_, err = resolveTeam("neutral", scanner(""), &out)
	assert.Error(t, err)
	_, err = resolveTeam("", scanner(""), &out)
	assert.Error(t, err)
}

func TestBoardWord(t *testing.T) {
	words := []string{"Apple", "BANK"}
	assert.Equal(t, "Apple", boardWord(words, "APPLE"))
	assert.Equal(t, "BANK", boardWord(words, "bank"))
	assert.Equal(t, "zebra", boardWord(words, "zebra"))
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), nil, strings.NewReader(""), &out)
	assert.True(t, errors.Is(err, errUsage))

	err = run(context.Background(), []string{"dance"}, strings.NewReader(""), &out)
	assert.True(t, errors.Is(err, errUsage))

	require.NoError(t, run(context.Background(), []string{"help"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "commands:")
}
