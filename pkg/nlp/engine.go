package nlp

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/kljensen/snowball"
)

// Lemmatizer is an Engine that normalizes words to their dictionary base
// form using an embedded English lemma dictionary ("running" -> "run",
// "cats" -> "cat").
type Lemmatizer struct {
	lem *golem.Lemmatizer
}

// NewLemmatizer loads the English lemma dictionary.
func NewLemmatizer() (*Lemmatizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemma dictionary: %w", err)
	}
	return &Lemmatizer{lem: lem}, nil
}

func (l *Lemmatizer) Tokenize(text string) []Token {
	return buildTokens(text, l.lem.Lemma)
}

// Stemmer is an Engine that normalizes words with the Snowball English
// stemmer. Lighter than the lemmatizer but less precise ("cats" -> "cat",
// yet "sat" stays "sat").
type Stemmer struct{}

func (Stemmer) Tokenize(text string) []Token {
	return buildTokens(text, func(word string) string {
		stemmed, err := snowball.Stem(word, "english", false)
		if err != nil {
			// Stem only fails for unsupported languages or empty input;
			// fall back to the lower-cased surface form.
			return word
		}
		return stemmed
	})
}

// ForName returns the engine selected in configuration: "lemma" (default)
// or "stem".
func ForName(name string) (Engine, error) {
	switch name {
	case "", "lemma":
		return NewLemmatizer()
	case "stem":
		return Stemmer{}, nil
	default:
		return nil, fmt.Errorf("unknown normalizer %q (expected \"lemma\" or \"stem\")", name)
	}
}
