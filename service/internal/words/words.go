// internal/words/words.go
//
// Board vocabulary: loads a word list from a file or the embedded default and
// draws seeded samples of distinct words from it.
package words

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
)

//go:embed default_words.txt
var embedded string

// Default returns the embedded word list.
func Default() []string {
	list, _ := parse(strings.NewReader(embedded))
	return list
}

// Load reads a word list from path, or returns the embedded list when path
// is empty.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	list, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}
	return list, nil
}

// parse reads one word per line. Blank lines and lines starting with '#' are
// skipped; words are upper-cased and de-duplicated, keeping first occurrence.
func parse(r io.Reader) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Sample draws n distinct words from list. The result depends only on list,
// n and seed.
func Sample(list []string, n int, seed uint64) ([]string, error) {
	if n < 0 || n > len(list) {
		return nil, fmt.Errorf("cannot sample %d words from a list of %d", n, len(list))
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(len(list))
	out := make([]string, n)
	for i := range out {
		out[i] = list[perm[i]]
	}
	return out, nil
}
