package engine

import (
	"fmt"
	"math/rand/v2"
)

// Code maps every board word to its hidden color.
type Code map[string]TeamColor

// Clone returns an independent copy of the code.
func (c Code) Clone() Code {
	out := make(Code, len(c))
	for w, color := range c {
		out[w] = color
	}
	return out
}

// Count returns how many words carry the given color.
func (c Code) Count(color TeamColor) int {
	n := 0
	for _, v := range c {
		if v == color {
			n++
		}
	}
	return n
}

// GenerateCode partitions words positionally: the first NBlue words are BLUE,
// the next NRed are RED, the following ones NEUTRAL and the last word is the
// assassin.
func GenerateCode(words []string, rules Rules) (Code, error) {
	if err := checkWords(words); err != nil {
		return nil, err
	}
	if rules.NBlue < 1 || rules.NRed < 1 || rules.NNeutral() < 0 {
		return nil, fmt.Errorf("%w: %d blue + %d red + 1 assassin does not fit %d words",
			ErrSetup, rules.NBlue, rules.NRed, BoardSize)
	}

	code := make(Code, BoardSize)
	i := 0
	for ; i < rules.NBlue; i++ {
		code[words[i]] = Blue
	}
	for ; i < rules.NBlue+rules.NRed; i++ {
		code[words[i]] = Red
	}
	for ; i < BoardSize-1; i++ {
		code[words[i]] = Neutral
	}
	code[words[BoardSize-1]] = Assassin
	return code, nil
}

// checkWords enforces exactly BoardSize distinct, non-sentinel words.
func checkWords(words []string) error {
	if len(words) != BoardSize {
		return fmt.Errorf("%w: board needs exactly %d words, got %d", ErrSetup, BoardSize, len(words))
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" || w == EndOfTurn {
			return fmt.Errorf("%w: %q is not a usable board word", ErrSetup, w)
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: duplicate board word %q", ErrSetup, w)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// checkCode verifies code is total over words with exactly one assassin.
func checkCode(words []string, code Code) error {
	if len(code) != len(words) {
		return fmt.Errorf("%w: code has %d entries for %d words", ErrSetup, len(code), len(words))
	}
	for _, w := range words {
		c, ok := code[w]
		if !ok {
			return fmt.Errorf("%w: word %q has no color", ErrSetup, w)
		}
		if c == NoColor || c > Assassin {
			return fmt.Errorf("%w: word %q has invalid color %d", ErrSetup, w, c)
		}
	}
	if n := code.Count(Assassin); n != 1 {
		return fmt.Errorf("%w: code must contain exactly one assassin, found %d", ErrSetup, n)
	}
	return nil
}

// Board is the fixed vocabulary in display order together with its code.
type Board struct {
	words []string
	code  Code
}

// newBoard copies words, shuffles them with a PCG source seeded from seed,
// and attaches the code.
func newBoard(words []string, code Code, seed uint64) Board {
	b := Board{
		words: append([]string(nil), words...),
		code:  code.Clone(),
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(b.words), func(i, j int) {
		b.words[i], b.words[j] = b.words[j], b.words[i]
	})
	return b
}

// Words returns a copy of the board vocabulary in display order.
func (b *Board) Words() []string { return append([]string(nil), b.words...) }

// Color returns the hidden color of a word and whether it is on the board.
func (b *Board) Color(word string) (TeamColor, bool) {
	c, ok := b.code[word]
	return c, ok
}

// Contains reports whether word is board vocabulary.
func (b *Board) Contains(word string) bool {
	_, ok := b.code[word]
	return ok
}
