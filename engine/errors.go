package engine

import "errors"

var (
	// ErrInvalidClue rejects a clue that is on the board, contains whitespace
	// or a hyphen, is empty, or has a non-positive count.
	ErrInvalidClue = errors.New("invalid clue")
	// ErrInvalidGuess rejects a guess that is off the board or already guessed.
	ErrInvalidGuess = errors.New("invalid guess")
	// ErrActorExhausted means an actor failed to produce a legal move within MaxTries.
	ErrActorExhausted = errors.New("actor exhausted retries")
	// ErrSetup is returned when a board cannot be constructed.
	ErrSetup = errors.New("invalid game setup")
)
