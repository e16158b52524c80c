// Package lexicon holds the read-only word sets the extraction pipeline
// filters against: a reference vocabulary and an English stop-word list.
// Sets are loaded once at process start and never mutated afterwards, so
// they are safe to share across jobs.
package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	_ "embed"
)

//go:embed stopwords_en.txt
var stopwordsEN string

// Set is a case-folded word set.
type Set map[string]struct{}

// New builds a set from the given words, case-folding each one.
func New(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.add(w)
	}
	return s
}

func (s Set) add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word != "" {
		s[word] = struct{}{}
	}
}

// Contains reports whether the case-folded word is in the set.
func (s Set) Contains(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// Len returns the number of words in the set.
func (s Set) Len() int { return len(s) }

// Load reads a newline-delimited word file (one word per line, blank lines
// ignored) into a Set.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer f.Close()

	s := make(Set)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		s.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}
	return s, nil
}

var (
	stopOnce sync.Once
	stopSet  Set
)

// Stopwords returns the embedded English stop-word set.
func Stopwords() Set {
	stopOnce.Do(func() {
		stopSet = make(Set)
		for _, line := range strings.Split(stopwordsEN, "\n") {
			stopSet.add(line)
		}
	})
	return stopSet
}
