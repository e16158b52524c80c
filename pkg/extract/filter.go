package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/lexicon"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/nlp"
)

// Accept reports whether a token counts toward the frequency statistics:
// the surface form is alphabetic, ASCII-only and longer than one character,
// and the case-folded lemma is in the vocabulary but not a stop word.
func Accept(tok nlp.Token, vocab, stop lexicon.Set) bool {
	if !tok.Alpha || !tok.ASCII {
		return false
	}
	if utf8.RuneCountInString(tok.Text) <= 1 {
		return false
	}
	lemma := strings.ToLower(tok.Lemma)
	if !vocab.Contains(lemma) {
		return false
	}
	return !stop.Contains(lemma)
}

// FilterTokens runs page text through the engine and returns the accepted
// lemmas (case-folded) in the engine's emission order. Pure with respect to
// its inputs; empty text yields no lemmas.
func FilterTokens(text string, engine nlp.Engine, vocab, stop lexicon.Set) []string {
	if text == "" {
		return nil
	}
	var accepted []string
	for _, tok := range engine.Tokenize(text) {
		if Accept(tok, vocab, stop) {
			accepted = append(accepted, strings.ToLower(tok.Lemma))
		}
	}
	return accepted
}
