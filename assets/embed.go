// assets/embed.go
//
// Embedded starter data so the game runs without any files configured:
//   - words.txt: small starter dictionary
//   - found.txt: starter letter pool
//   - sql/*.sql: migrations for the sqlite storage backend
//
// Word and pool lines are trimmed and lowercased; blank lines and '#'
// comment lines are skipped, matching words.Read for on-disk files.

package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed words.txt found.txt sql/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded starter dictionary.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// LetterPool returns the embedded starter letter pool.
func LetterPool() ([]string, error) {
	return readLines("found.txt")
}

// Migration is one embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded sql/*.sql scripts in lexical order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := fs.ReadFile(FS, n)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: n, SQL: string(b)})
	}
	return out, nil
}
