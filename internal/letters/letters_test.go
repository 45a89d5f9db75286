package letters

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordbomb/internal/words"
)

// scripted returns the queued values in order (mod n), then zeros.
type scripted struct{ vals []int }

func (s *scripted) IntN(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v % n
}

func seeded(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed+1)) }

func TestFromDictionary_CutsFromALongEnoughWord(t *testing.T) {
	dict := words.FromWords([]string{"ab", "planet"})
	g := New(dict, seeded(1))

	for i := 0; i < 50; i++ {
		s, ok := g.FromDictionary(3)
		require.True(t, ok)
		assert.Len(t, s, 3)
		assert.Equal(t, strings.ToUpper(s), s)
		assert.Contains(t, "PLANET", s)
	}
}

func TestFromDictionary_ExactCut(t *testing.T) {
	dict := words.FromWords([]string{"planet"})
	// 100 samples all pick index 0, then the fit pick, then start=2.
	vals := make([]int, SampleSize)
	vals = append(vals, 0, 2)
	g := New(dict, &scripted{vals: vals})

	s, ok := g.FromDictionary(3)
	require.True(t, ok)
	assert.Equal(t, "ANE", s)
}

func TestFromDictionary_NoQualifyingWord(t *testing.T) {
	g := New(words.FromWords([]string{"a", "be"}), seeded(2))
	_, ok := g.FromDictionary(3)
	assert.False(t, ok)

	g = New(nil, seeded(2))
	_, ok = g.FromDictionary(2)
	assert.False(t, ok)
}

func TestFromPool(t *testing.T) {
	t.Run("whole entry when length matches", func(t *testing.T) {
		g := New(nil, seeded(3), WithPool([]string{"x", "ing"}))
		s, ok := g.FromPool(3)
		require.True(t, ok)
		assert.Equal(t, "ING", s)
	})

	t.Run("slice of a longer entry", func(t *testing.T) {
		g := New(nil, seeded(4), WithPool([]string{"ment", "a"}))
		for i := 0; i < 20; i++ {
			s, ok := g.FromPool(2)
			require.True(t, ok)
			assert.Contains(t, []string{"ME", "EN", "NT"}, s)
		}
	})

	t.Run("nothing long enough", func(t *testing.T) {
		g := New(nil, seeded(5), WithPool([]string{"a", "bc"}))
		_, ok := g.FromPool(3)
		assert.False(t, ok)
	})

	t.Run("empty pool", func(t *testing.T) {
		_, ok := New(nil, seeded(6)).FromPool(2)
		assert.False(t, ok)
	})
}

func TestRandom_AlternatesConsonantsAndVowels(t *testing.T) {
	g := New(nil, seeded(7), WithVowelChance(0))
	for i := 0; i < 20; i++ {
		s := g.Random(5)
		require.Len(t, s, 5)
		for j, r := range s {
			if j%2 == 0 {
				assert.Contains(t, Consonants, string(r))
			} else {
				assert.Contains(t, Vowels, string(r))
			}
		}
	}
}

func TestRandom_AlwaysVowelAtFullChance(t *testing.T) {
	g := New(nil, seeded(8), WithVowelChance(1))
	for _, r := range g.Random(6) {
		assert.Contains(t, Vowels, string(r))
	}
}

func TestGenerate_FallbackOrder(t *testing.T) {
	t.Run("dictionary first", func(t *testing.T) {
		g := New(words.FromWords([]string{"zzzz"}), seeded(9), WithPool([]string{"qqqq"}))
		assert.Equal(t, "ZZ", g.Generate(2))
	})
	t.Run("pool when dictionary is empty", func(t *testing.T) {
		g := New(words.FromWords(nil), seeded(9), WithPool([]string{"qqqq"}))
		assert.Equal(t, "QQ", g.Generate(2))
	})
	t.Run("random when both are empty", func(t *testing.T) {
		g := New(words.FromWords(nil), seeded(9))
		s := g.Generate(3)
		assert.Len(t, s, 3)
		assert.Contains(t, Vowels, s[1:2])
	})
	t.Run("length clamps to one", func(t *testing.T) {
		g := New(nil, seeded(9))
		assert.Len(t, g.Generate(0), 1)
	})
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	dict := words.FromWords([]string{"cat", "catalog", "scatter", "dog", "doghouse"})
	a := New(dict, seeded(10))
	b := New(dict, seeded(10))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Generate(3), b.Generate(3))
	}
}

func TestLoadPool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "found.txt")
	require.NoError(t, os.WriteFile(path, []byte("ING\n\n ent \n"), 0o644))

	p, err := LoadPool(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ing", "ent"}, p)

	_, err = LoadPool(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, words.ErrMissing)

	assert.NotEmpty(t, PoolOrEmbedded(filepath.Join(dir, "missing.txt")))
}
