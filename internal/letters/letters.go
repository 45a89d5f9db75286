// internal/letters/letters.go
//
// Letter-sequence generation for each round.
//
// Strategies, each a fallback for the previous one:
//   1. FromDictionary: sample words from the dictionary, keep those long
//      enough, cut a random contiguous slice out of one of them.
//   2. FromPool: same cut, taken from the supplementary letter pool.
//   3. Random: alternate consonant/vowel, with a chance of an
//      out-of-turn vowel. Needs no dictionary at all.
//
// Strategies 1 and 2 guarantee the sequence occurs in at least one known
// word. All randomness comes from the injected Source so a seeded source
// gives reproducible output. Sequences are always upper-case.

package letters

import (
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbomb/assets"
	"github.com/robalobadob/wordbomb/internal/words"
)

const (
	// SampleSize is how many dictionary words are drawn per attempt.
	SampleSize = 100

	Vowels     = "AEIOUY"
	Consonants = "BCDFGHJKLMNPQRSTVWXZ"

	chanceScale = 1_000_000
)

// Source is the random source; *math/rand/v2.Rand satisfies it.
type Source = words.Source

// Sampler draws random words; *words.Dictionary satisfies it.
type Sampler interface {
	SampleRandomWords(n int, src words.Source) []string
}

// Generator produces letter sequences. It is not safe for concurrent use
// when the Source is not.
type Generator struct {
	dict        Sampler
	pool        map[int][]string // pool entries bucketed by rune length
	poolLens    []int            // bucket keys, ascending
	vowelChance float64
	src         Source
}

// Option configures a Generator.
type Option func(*Generator)

// WithPool installs the supplementary pool.
func WithPool(entries []string) Option {
	return func(g *Generator) { g.setPool(entries) }
}

// WithVowelChance sets the probability of an out-of-turn vowel in Random.
func WithVowelChance(p float64) Option {
	return func(g *Generator) {
		if p >= 0 && p <= 1 {
			g.vowelChance = p
		}
	}
}

// New builds a Generator. dict may be nil.
func New(dict Sampler, src Source, opts ...Option) *Generator {
	g := &Generator{dict: dict, src: src, pool: map[int][]string{}}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *Generator) setPool(entries []string) {
	g.pool = map[int][]string{}
	g.poolLens = nil
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		n := len([]rune(e))
		if _, ok := g.pool[n]; !ok {
			g.poolLens = append(g.poolLens, n)
		}
		g.pool[n] = append(g.pool[n], e)
	}
	sort.Ints(g.poolLens)
}

// Generate returns a sequence of the given length using the first
// strategy that succeeds.
func (g *Generator) Generate(length int) string {
	if length < 1 {
		length = 1
	}
	if s, ok := g.FromDictionary(length); ok {
		return s
	}
	if s, ok := g.FromPool(length); ok {
		log.Debug().Int("length", length).Msg("letters: dictionary strategy empty, used pool")
		return s
	}
	log.Debug().Int("length", length).Msg("letters: falling back to random letters")
	return g.Random(length)
}

// FromDictionary cuts a sequence out of a randomly sampled dictionary word.
func (g *Generator) FromDictionary(length int) (string, bool) {
	if g.dict == nil {
		return "", false
	}
	var fit []string
	for _, w := range g.dict.SampleRandomWords(SampleSize, g.src) {
		if len([]rune(w)) >= length {
			fit = append(fit, w)
		}
	}
	if len(fit) == 0 {
		return "", false
	}
	return g.cut(fit[g.src.IntN(len(fit))], length), true
}

// FromPool cuts a sequence out of a random pool entry of sufficient length.
func (g *Generator) FromPool(length int) (string, bool) {
	// poolLens is ascending; find the first bucket that is long enough.
	first := sort.SearchInts(g.poolLens, length)
	total := 0
	for _, n := range g.poolLens[first:] {
		total += len(g.pool[n])
	}
	if total == 0 {
		return "", false
	}

	i := g.src.IntN(total)
	for _, n := range g.poolLens[first:] {
		bucket := g.pool[n]
		if i < len(bucket) {
			return g.cut(bucket[i], length), true
		}
		i -= len(bucket)
	}
	return "", false
}

// Random synthesizes a sequence: consonant at even positions and vowel at
// odd positions, with vowelChance of a vowel replacing a consonant.
func (g *Generator) Random(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		pool := Consonants
		if i%2 == 1 || g.src.IntN(chanceScale) < int(g.vowelChance*chanceScale) {
			pool = Vowels
		}
		b.WriteByte(pool[g.src.IntN(len(pool))])
	}
	return b.String()
}

// cut returns a random contiguous slice of w of the given rune length,
// upper-cased. The whole word is returned when it is exactly that long.
func (g *Generator) cut(w string, length int) string {
	r := []rune(w)
	if len(r) == length {
		return strings.ToUpper(w)
	}
	start := g.src.IntN(len(r) - length + 1)
	return strings.ToUpper(string(r[start : start+length]))
}

// LoadPool reads the supplementary pool file. A missing file yields an
// empty pool and the wrapped words.ErrMissing.
func LoadPool(path string) ([]string, error) {
	d, err := words.Load(path)
	if err != nil {
		return nil, err
	}
	return d.Words(), nil
}

// EmbeddedPool returns the starter pool shipped with the binary.
func EmbeddedPool() []string {
	p, err := assets.LetterPool()
	if err != nil {
		log.Warn().Err(err).Msg("letters: embedded pool unreadable")
		return nil
	}
	return p
}

// PoolOrEmbedded loads path and falls back to the embedded pool when the
// file is missing.
func PoolOrEmbedded(path string) []string {
	p, err := LoadPool(path)
	if err != nil {
		if !errors.Is(err, words.ErrMissing) {
			log.Warn().Err(err).Str("path", path).Msg("letters: pool unreadable, using embedded pool")
		}
		return EmbeddedPool()
	}
	return p
}
