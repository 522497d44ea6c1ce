// internal/boardfile/boardfile.go
//
// Physical boards are described by a two-row CSV file: the first row holds
// the 25 words, the second the matching color letters
// (b = blue, r = red, y = assassin, n = neutral).
package boardfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spymaster-lab/codenames/engine"
)

// ErrFormat wraps every malformed board file error.
var ErrFormat = errors.New("boardfile: bad format")

// Board is a parsed board file.
type Board struct {
	Words []string
	Code  engine.Code
}

var letters = map[string]engine.TeamColor{
	"b": engine.Blue,
	"r": engine.Red,
	"y": engine.Assassin,
	"n": engine.Neutral,
}

// Load parses the board file at path.
func Load(path string) (Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return Board{}, fmt.Errorf("open board file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a board from r. Extra rows are ignored.
func Parse(r io.Reader) (Board, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	wordRow, err := cr.Read()
	if err != nil {
		return Board{}, fmt.Errorf("%w: reading words row: %v", ErrFormat, err)
	}
	codeRow, err := cr.Read()
	if err != nil {
		return Board{}, fmt.Errorf("%w: reading code row: %v", ErrFormat, err)
	}
	if len(wordRow) != engine.BoardSize || len(codeRow) != engine.BoardSize {
		return Board{}, fmt.Errorf("%w: need exactly %d words and %d code letters, got %d and %d",
			ErrFormat, engine.BoardSize, engine.BoardSize, len(wordRow), len(codeRow))
	}

	b := Board{Words: make([]string, engine.BoardSize), Code: make(engine.Code, engine.BoardSize)}
	for i := range wordRow {
		w := strings.TrimSpace(wordRow[i])
		c, ok := letters[strings.ToLower(strings.TrimSpace(codeRow[i]))]
		if !ok {
			return Board{}, fmt.Errorf("%w: code letter %q for %s must be b, r, y or n", ErrFormat, codeRow[i], w)
		}
		if _, dup := b.Code[w]; dup {
			return Board{}, fmt.Errorf("%w: duplicate word %q", ErrFormat, w)
		}
		b.Words[i] = w
		b.Code[w] = c
	}
	return b, nil
}
