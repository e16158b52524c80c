package nlp

import (
	"strings"
	"unicode"
)

// splitWords breaks text into maximal runs of letters and digits.
// Punctuation, whitespace and everything else separates tokens.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// classify fills in the token flags for a surface form.
func classify(word string) (alpha, ascii bool) {
	alpha, ascii = true, true
	for _, r := range word {
		if !unicode.IsLetter(r) {
			alpha = false
		}
		if r > unicode.MaxASCII {
			ascii = false
		}
	}
	return alpha, ascii
}

// buildTokens tokenizes text and normalizes each word with the given
// normalizer, which receives a lower-cased surface form.
func buildTokens(text string, normalize func(string) string) []Token {
	words := splitWords(text)
	if len(words) == 0 {
		return nil
	}
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		alpha, ascii := classify(w)
		tokens = append(tokens, Token{
			Text:  w,
			Lemma: normalize(strings.ToLower(w)),
			Alpha: alpha,
			ASCII: ascii,
		})
	}
	return tokens
}
