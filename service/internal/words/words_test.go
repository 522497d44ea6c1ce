package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spymaster-lab/codenames/engine"
)

func TestDefaultListIsUsable(t *testing.T) {
	list := Default()
	require.GreaterOrEqual(t, len(list), engine.BoardSize)

	seen := map[string]bool{}
	for _, w := range list {
		assert.False(t, seen[w], "duplicate %s", w)
		seen[w] = true
		assert.NotEqual(t, engine.EndOfTurn, w)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\napple\n\n  Bank \nAPPLE\n"), 0o644))

	list, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"APPLE", "BANK"}, list)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0o644))
	_, err = Load(empty)
	assert.Error(t, err)
}

func TestSampleSeeded(t *testing.T) {
	list := Default()
	a, err := Sample(list, engine.BoardSize, 123)
	require.NoError(t, err)
	b, _ := Sample(list, engine.BoardSize, 123)
	c, _ := Sample(list, engine.BoardSize, 124)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, engine.BoardSize)

	seen := map[string]bool{}
	for _, w := range a {
		assert.False(t, seen[w], "sample repeated %s", w)
		seen[w] = true
	}

	_, err = engine.NewGame(a, 123, engine.DefaultRules())
	assert.NoError(t, err, "a sample must make a valid board")
}

func TestSampleTooMany(t *testing.T) {
	_, err := Sample([]string{"A", "B"}, 3, 1)
	assert.Error(t, err)
}
