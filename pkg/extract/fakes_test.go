package extract

import (
	"strings"
	"unicode"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/nlp"
)

// fakeEngine splits on non-letters and maps irregular forms through a fixed
// lemma table, so tests control normalization exactly.
type fakeEngine struct {
	lemmas map[string]string
}

func (e fakeEngine) Tokenize(text string) []nlp.Token {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []nlp.Token
	for _, w := range words {
		alpha, ascii := true, true
		for _, r := range w {
			if !unicode.IsLetter(r) {
				alpha = false
			}
			if r > unicode.MaxASCII {
				ascii = false
			}
		}
		lower := strings.ToLower(w)
		lemma := lower
		if mapped, ok := e.lemmas[lower]; ok {
			lemma = mapped
		}
		tokens = append(tokens, nlp.Token{Text: w, Lemma: lemma, Alpha: alpha, ASCII: ascii})
	}
	return tokens
}

// fakeDoc serves fixed page texts, injects per-page errors, and can run a
// hook before each page read (used to trigger cancellation mid-run).
type fakeDoc struct {
	pages  []string
	errs   map[int]error
	onPage func(pageNum int)
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }

func (d *fakeDoc) PageText(pageNum int) (string, error) {
	if d.onPage != nil {
		d.onPage(pageNum)
	}
	if err := d.errs[pageNum]; err != nil {
		return "", err
	}
	return d.pages[pageNum-1], nil
}
