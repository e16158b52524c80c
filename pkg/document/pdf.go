// Package document provides page-oriented access to PDF files on disk.
package document

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
)

// PDF reads per-page plain text from a PDF file. It satisfies
// extract.Document. Not safe for concurrent use; one open PDF belongs to
// one extraction at a time.
type PDF struct {
	path   string
	file   *os.File
	reader *pdf.Reader
	pages  int
}

// Open validates the file and prepares per-page text access. Validation is
// relaxed so slightly malformed but readable files still open. A file that
// fails validation or parsing yields a document_open error.
func Open(path string) (*PDF, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return nil, extract.NewDocumentOpenError(path, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, extract.NewDocumentOpenError(path, err)
	}

	return &PDF{
		path:   path,
		file:   f,
		reader: reader,
		pages:  reader.NumPage(),
	}, nil
}

// Path returns the file path the document was opened from.
func (d *PDF) Path() string { return d.path }

// PageCount returns the number of pages in the document.
func (d *PDF) PageCount() int { return d.pages }

// PageText returns the plain text of a page (1-based). A page that cannot
// be decoded yields a page_read error, which the extractor tolerates.
func (d *PDF) PageText(pageNum int) (text string, err error) {
	if pageNum < 1 || pageNum > d.pages {
		return "", extract.NewPageReadError(pageNum, fmt.Errorf("page out of bounds (document has %d pages)", d.pages))
	}

	// The underlying parser panics on some malformed content streams;
	// convert those into per-page read errors so one bad page cannot take
	// down the whole extraction.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = extract.NewPageReadError(pageNum, fmt.Errorf("page content malformed: %v", r))
		}
	}()

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return "", extract.NewPageReadError(pageNum, fmt.Errorf("page missing from page tree"))
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", extract.NewPageReadError(pageNum, err)
	}
	return text, nil
}

// Close releases the underlying file handle.
func (d *PDF) Close() error {
	return d.file.Close()
}
