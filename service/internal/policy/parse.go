// internal/policy/parse.go
package policy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spymaster-lab/codenames/engine"
)

const (
	openTag  = "<response>"
	closeTag = "</response>"
)

// ErrNoResponse is returned when a reply lacks the <response> tag.
var ErrNoResponse = errors.New("no <response> tag found in reply")

// ExtractResponse returns the text between the first <response> and the
// following </response>. A missing closing tag takes the rest of the reply.
func ExtractResponse(text string) (string, error) {
	i := strings.Index(text, openTag)
	if i < 0 {
		return "", ErrNoResponse
	}
	rest := text[i+len(openTag):]
	if j := strings.Index(rest, closeTag); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest), nil
}

// ParseClue parses a "word,count" answer.
func ParseClue(answer string) (engine.Clue, error) {
	i := strings.LastIndex(answer, ",")
	if i < 0 {
		return engine.Clue{}, fmt.Errorf("clue %q must look like Word,2", answer)
	}
	word := strings.TrimSpace(answer[:i])
	n, err := strconv.Atoi(strings.TrimSpace(answer[i+1:]))
	if err != nil {
		return engine.Clue{}, fmt.Errorf("clue %q has no valid number: %w", answer, err)
	}
	return engine.Clue{Word: word, Count: n}, nil
}
