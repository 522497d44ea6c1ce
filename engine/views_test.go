package engine

import (
	"strings"
	"testing"
)

var colorNames = []string{"BLUE", "RED", "NEUTRAL", "ASSASSIN"}

// TestGuesserViewMasksUnguessed verifies no color leaks for unguessed words.
func TestGuesserViewMasksUnguessed(t *testing.T) {
	g := newTestGame(t)
	g.GiveClue("ANIMAL", 2)
	g.GuessWord("EAGLE", "bird")

	v := g.GuesserView("")
	if len(v.Board) != BoardSize {
		t.Fatalf("len(Board) = %d, want %d", len(v.Board), BoardSize)
	}
	for i, entry := range v.Board {
		w := v.Words[i]
		if w == "EAGLE" {
			if entry != "EAGLE (RED)" {
				t.Errorf("guessed entry = %q, want %q", entry, "EAGLE (RED)")
			}
			continue
		}
		if entry != w+" (Unknown)" {
			t.Errorf("entry %d = %q, want %q", i, entry, w+" (Unknown)")
		}
		for _, c := range colorNames {
			if strings.Contains(entry, c) {
				t.Errorf("entry %q leaks %s", entry, c)
			}
		}
	}
	if len(v.Guesses) != 1 || v.Guesses[0] != "EAGLE" {
		t.Errorf("Guesses = %v", v.Guesses)
	}
	if c, ok := v.LastClue(); !ok || c.Word != "ANIMAL" || c.Count != 2 {
		t.Errorf("LastClue = %v, %v", c, ok)
	}
	if v.Team != Blue {
		t.Errorf("Team = %s", v.Team)
	}
	if len(v.Unguessed()) != BoardSize-1 {
		t.Errorf("Unguessed has %d words, want %d", len(v.Unguessed()), BoardSize-1)
	}
}

func TestSpymasterViewShowsEverything(t *testing.T) {
	g := newTestGame(t)
	g.GuessWord("APPLE", "fruit")

	v := g.SpymasterView("try again")
	if v.Feedback != "try again" {
		t.Errorf("Feedback = %q", v.Feedback)
	}
	if len(v.Code) != BoardSize {
		t.Errorf("len(Code) = %d", len(v.Code))
	}
	for i, entry := range v.BoardWithCode {
		w := v.Words[i]
		want := w + " (" + g.Code()[w].String() + ")"
		if entry != want {
			t.Errorf("BoardWithCode[%d] = %q, want %q", i, entry, want)
		}
	}
	// The spymaster's guesser-style board is still masked.
	unknown := 0
	for _, entry := range v.Board {
		if strings.HasSuffix(entry, "(Unknown)") {
			unknown++
		}
	}
	if unknown != BoardSize-1 {
		t.Errorf("masked entries = %d, want %d", unknown, BoardSize-1)
	}
	if len(v.Thoughts) != 1 || v.Thoughts[0] != "fruit" {
		t.Errorf("Thoughts = %v", v.Thoughts)
	}
}

// TestViewsAreCopies verifies actors cannot mutate game state through a view.
func TestViewsAreCopies(t *testing.T) {
	g := newTestGame(t)
	g.GiveClue("ANIMAL", 1)
	g.GuessWord("APPLE", "fruit")

	v := g.SpymasterView("")
	v.Words[0] = "HACKED"
	v.Guesses[0] = "HACKED"
	v.Thoughts[0] = "HACKED"
	v.Clues[0].Word = "HACKED"
	v.Code["APPLE"] = Red

	s := g.Save()
	if s.Guesses[0] != "APPLE" || s.Thoughts[0] != "fruit" || s.Clues[0].Word != "ANIMAL" {
		t.Errorf("state mutated through view: %+v", s)
	}
	if g.Words()[0] == "HACKED" {
		t.Error("board mutated through view")
	}
	if c, _ := g.Color("APPLE"); c != Blue {
		t.Errorf("code mutated through view: APPLE is %s", c)
	}
}
