package nlp

// Token is one word-like unit produced by tokenizing page text,
// prior to any filtering.
type Token struct {
	// Text is the surface form as it appeared on the page.
	Text string
	// Lemma is the normalized form, always lower case.
	Lemma string
	// Alpha is true when the surface form consists of letters only.
	Alpha bool
	// ASCII is true when every rune of the surface form is ASCII.
	ASCII bool
}

// Engine tokenizes raw text. Implementations must be total (never fail for
// any string input) and deterministic, and safe for concurrent use.
type Engine interface {
	Tokenize(text string) []Token
}
