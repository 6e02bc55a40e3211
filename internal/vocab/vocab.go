// Package vocab holds the static skills vocabulary used for résumé skill
// matching. The vocabulary is loaded once at startup and is read-only for the
// remainder of the process lifetime; changing it requires a restart.
package vocab

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed skills.txt
var defaultSkills []byte

// Vocabulary is an immutable list of known skill phrases, lowercased,
// deduplicated, and sorted by descending phrase length so longer phrases are
// tested before shorter ones they contain.
type Vocabulary struct {
	phrases []string
}

// Load reads a vocabulary from a file with one phrase per line. Blank lines
// and lines starting with '#' are skipped.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skills file: %w", err)
	}
	defer f.Close()

	var phrases []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		phrases = append(phrases, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read skills file: %w", err)
	}
	return FromPhrases(phrases), nil
}

// Default returns the vocabulary embedded in the binary.
func Default() *Vocabulary {
	var phrases []string
	scanner := bufio.NewScanner(bytes.NewReader(defaultSkills))
	for scanner.Scan() {
		phrases = append(phrases, scanner.Text())
	}
	return FromPhrases(phrases)
}

// FromPhrases builds a vocabulary from raw phrases, normalizing and sorting
// them. Duplicates (after lowercasing) are dropped.
func FromPhrases(raw []string) *Vocabulary {
	seen := make(map[string]struct{}, len(raw))
	phrases := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		phrases = append(phrases, p)
	}

	// Longest first; ties break lexicographically for determinism.
	sort.Slice(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})

	return &Vocabulary{phrases: phrases}
}

// Phrases returns the sorted phrases. Callers must not modify the slice.
func (v *Vocabulary) Phrases() []string {
	if v == nil {
		return nil
	}
	return v.phrases
}

// Len reports the number of phrases.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.phrases)
}
