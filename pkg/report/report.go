// Package report formats extraction results as the plain-text frequency
// report: a totals header followed by one padded "<word> <count>" row per
// ranked entry, descending by count.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
)

// Suffix is appended to the source PDF's base name to build the report
// file name.
const Suffix = "_word_frequency.txt"

// Write writes the report for a finished extraction to w.
func Write(w io.Writer, counter *extract.Counter) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "total words: %d, unique words: %d\n\n", counter.Total(), counter.Unique())
	for _, wc := range counter.Ranked() {
		fmt.Fprintf(bw, "%-20s %d\n", wc.Word, wc.Count)
	}

	return bw.Flush()
}

// FilePath returns the report path for a source PDF: the PDF's base name
// plus Suffix, in the same directory.
func FilePath(pdfPath string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(filepath.Dir(pdfPath), base+Suffix)
}

// Save writes the report next to the source PDF and returns the path it
// was written to.
func Save(pdfPath string, counter *extract.Counter) (string, error) {
	outPath := FilePath(pdfPath)

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := Write(f, counter); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return outPath, nil
}
