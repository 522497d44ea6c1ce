// internal/policy/prompt.go
package policy

import (
	"fmt"
	"strings"

	"github.com/spymaster-lab/codenames/engine"
)

const spymasterSystem = `You are the spymaster in Codenames. Among the words that haven't been guessed (i.e. don't have a color next to them), think about which words can be related via a clue word. You can keep it simple and have the clue correspond to 1 word, or relate 2 words, or even 3 or 4 words. Give a final clue in this format: <response>Word,2</response>. The response should be the word and the number of words to guess with the tags around the answer.`

const guesserSystem = `You are the guesser in Codenames. Look at the board. Words with a color next to them have already been guessed, and can be ignored. Use the clue word to figure out which word is related. After thinking, write your guess as <response>Word</response>. The response should be the word with the tags around the answer. Do not include the tags around anything other than your answer. If you want to stop guessing this turn, answer <response>` + engine.EndOfTurn + `</response>.`

// SpymasterPrompt renders the full-information view for a remote spymaster.
// Speculative rounds, if any, are summarized so the policy can repeat a clue
// that worked or revise one that did not.
func SpymasterPrompt(v engine.SpymasterView, includeThoughts bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board as the guesser sees it:\n%s\n-------\n", strings.Join(v.Board, ", "))
	fmt.Fprintf(&b, "Board with code: %s\nYou are on team %s", strings.Join(v.BoardWithCode, ", "), v.Team)
	if includeThoughts && len(v.Thoughts) > 0 {
		fmt.Fprintf(&b, "\nGuesser's thoughts from this game have been: %s", strings.Join(v.Thoughts, " | "))
	}
	if v.Feedback != "" {
		fmt.Fprintf(&b, "\n%s", v.Feedback)
	}
	if len(v.Rollbacks) > 0 {
		b.WriteString("\nWe simulated a version of yourself one or more times already. Here is the log of those previous simulated attempts:\n")
		b.WriteString(RollbackSummary(v))
		b.WriteString("\nIf a simulation was good, you should give that clue again since last time it was just a simulation and this time is for real. Otherwise, consider revising either the clue word or the clue number and give a new clue.")
	}
	return b.String()
}

// RollbackSummary describes each speculative round: the guesses it drew with
// their colors, and whether every guess landed on the current team.
func RollbackSummary(v engine.SpymasterView) string {
	var lines []string
	for _, r := range v.Rollbacks {
		var b strings.Builder
		fmt.Fprintf(&b, "When clue %s was given for %d words, the guesser made the following guesses: ", r.Clue.Word, r.Clue.Count)
		good := 0
		for i, g := range r.Guesses {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s (%s)", g, v.Code[g])
			if v.Code[g] == v.Team {
				good++
			}
		}
		if len(r.Guesses) == 0 {
			b.WriteString("none")
		}
		if r.Clue.Count > 0 && good == r.Clue.Count {
			fmt.Fprintf(&b, "\n%s was perfect! All %d words were guessed.", r.Clue.Word, r.Clue.Count)
		} else {
			fmt.Fprintf(&b, "\nA guess was wrong when clue %s was given for %d words.", r.Clue.Word, r.Clue.Count)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// GuesserPrompt renders the masked view and the clue to act on.
func GuesserPrompt(v engine.GuesserView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board: %s", strings.Join(v.Board, ", "))
	if c, ok := v.LastClue(); ok {
		fmt.Fprintf(&b, "\nYou were given the clue word: %s for %d words.", c.Word, c.Count)
	}
	if v.Feedback != "" {
		fmt.Fprintf(&b, "\n%s", v.Feedback)
	}
	return b.String()
}
