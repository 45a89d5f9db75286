// internal/words/words.go
//
// Dictionary index for the game.
//
// Responsibilities:
//   - Load a newline-delimited word list (file or embedded starter list).
//   - Maintain a lookup set plus an ordered list for random sampling.
//   - Answer membership and required-substring queries.
//
// Load rules:
//   • Each line is trimmed and lowercased; blank lines and '#' comment
//     lines are skipped (the same rule as the embedded lists in assets).
//   • Duplicates collapse: the list keeps the first occurrence only.
//   • A missing file yields an empty, degraded dictionary and ErrMissing,
//     never a crash. Every validation then rejects.
//
// A Dictionary is immutable after load and safe for concurrent readers.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordbomb/assets"
)

// ErrMissing is returned (wrapped) when the configured word file is absent.
var ErrMissing = errors.New("words: dictionary file missing")

// Source is the random source used for sampling.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Dictionary is a loaded word list.
type Dictionary struct {
	set      map[string]struct{} // lowercase words
	list     []string            // first occurrences, load order
	degraded bool                // load failed; validation always rejects
}

// Load reads a word list from path.
// On a missing or unreadable file it returns an empty degraded dictionary
// together with the error, so callers can log and keep going.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		d := &Dictionary{set: map[string]struct{}{}, degraded: true}
		if errors.Is(err, os.ErrNotExist) {
			return d, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return d, fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		d.degraded = true
		return d, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return d, nil
}

// LoadEmbedded builds a dictionary from the embedded starter list.
func LoadEmbedded() (*Dictionary, error) {
	list, err := assets.WordList()
	if err != nil {
		return &Dictionary{set: map[string]struct{}{}, degraded: true}, err
	}
	return FromWords(list), nil
}

// Read parses one word per line from r.
func Read(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{set: map[string]struct{}{}}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		d.add(sc.Text())
	}
	return d, sc.Err()
}

// FromWords builds a dictionary from an in-memory list using the same
// normalization as Load.
func FromWords(list []string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	for _, w := range list {
		d.add(w)
	}
	return d
}

func (d *Dictionary) add(raw string) {
	w := normalize(raw)
	if w == "" || strings.HasPrefix(w, "#") {
		return
	}
	if _, ok := d.set[w]; ok {
		return
	}
	d.set[w] = struct{}{}
	d.list = append(d.list, w)
}

// normalize trims and lowercases a word.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Contains reports case-insensitive membership.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.set[normalize(word)]
	return ok
}

// IsValidWord reports whether word is in the dictionary and contains
// required as a case-insensitive substring.
func (d *Dictionary) IsValidWord(word, required string) bool {
	w := normalize(word)
	if w == "" {
		return false
	}
	if _, ok := d.set[w]; !ok {
		return false
	}
	return strings.Contains(w, strings.ToLower(required))
}

// WordCount returns the number of distinct words loaded.
func (d *Dictionary) WordCount() int { return len(d.set) }

// Words returns a copy of the loaded words in load order.
func (d *Dictionary) Words() []string {
	return append([]string(nil), d.list...)
}

// Degraded reports whether the dictionary failed to load.
func (d *Dictionary) Degraded() bool { return d.degraded || len(d.list) == 0 }

// SampleRandomWords returns up to n words drawn with replacement.
// An empty dictionary yields nil.
func (d *Dictionary) SampleRandomWords(n int, src Source) []string {
	if n <= 0 || len(d.list) == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = d.list[src.IntN(len(d.list))]
	}
	return out
}

// WordsContaining lists up to limit words containing seq, in load order.
// limit <= 0 means no limit.
func (d *Dictionary) WordsContaining(seq string, limit int) []string {
	seq = strings.ToLower(seq)
	var out []string
	for _, w := range d.list {
		if strings.Contains(w, seq) {
			out = append(out, w)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
