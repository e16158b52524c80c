package extract

import (
	"context"
	"errors"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/lexicon"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/nlp"
)

// Document is the page-oriented reader the extractor pulls text from.
// Page numbers are 1-based. PageText failures of type ErrorTypePageRead are
// tolerated per page; any other failure ends the whole run.
type Document interface {
	PageCount() int
	PageText(pageNum int) (string, error)
}

// PageRange is an inclusive, 1-based page interval.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Pages returns the number of pages in the range.
func (r PageRange) Pages() int {
	return r.End - r.Start + 1
}

// Validate checks the range against a document's page count:
// 1 <= Start <= End <= totalPages.
func (r PageRange) Validate(totalPages int) error {
	if r.Start < 1 || r.End < r.Start || r.End > totalPages {
		return newInvalidRangeError(r, totalPages)
	}
	return nil
}

// ProgressFunc receives the completed percentage after each processed page.
type ProgressFunc func(percent int)

// Extractor walks a validated page range of a document, filters each page's
// text and folds the accepted lemmas into a frequency counter. One Extractor
// may be reused across jobs; the word sets it holds are read-only.
type Extractor struct {
	engine nlp.Engine
	vocab  lexicon.Set
	stop   lexicon.Set
}

// NewExtractor creates an extractor over the given engine and word sets.
func NewExtractor(engine nlp.Engine, vocab, stop lexicon.Set) *Extractor {
	return &Extractor{engine: engine, vocab: vocab, stop: stop}
}

// Run processes pages strictly in ascending order, reporting progress after
// every page. A page whose text cannot be read contributes zero tokens and
// does not abort the run; the number of such pages is returned. The context
// is checked between pages, so cancellation takes effect at the next page
// boundary and is reported as an ErrorTypeCancelled error.
func (e *Extractor) Run(ctx context.Context, doc Document, r PageRange, onProgress ProgressFunc) (*Counter, int, error) {
	counter := NewCounter()
	total := r.Pages()
	failed := 0

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, failed, newCancelledError(err)
		}

		pageNum := r.Start + i
		text, err := doc.PageText(pageNum)
		if err != nil {
			var xerr *Error
			if errors.As(err, &xerr) && xerr.Recoverable() {
				// A single unreadable page must not abort the whole range.
				failed++
			} else {
				return nil, failed, newEngineError(pageNum, err)
			}
		} else {
			for _, lemma := range FilterTokens(text, e.engine, e.vocab, e.stop) {
				counter.Fold(lemma)
			}
		}

		if onProgress != nil {
			onProgress((i + 1) * 100 / total)
		}
	}

	return counter, failed, nil
}
