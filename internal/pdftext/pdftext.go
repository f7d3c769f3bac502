// Package pdftext turns PDF documents into plain text for the extraction
// pipeline. Extraction is strictly best-effort: corrupt, encrypted, or
// scanned documents yield empty text rather than errors, so one bad file
// never stops a folder run.
package pdftext

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// Source produces plain text for a document. FirstPages is cheap and is
// always consulted; FullText is only materialized when the first pages
// yield no identifier candidates.
type Source interface {
	FirstPages(path string, n int) string
	FullText(path string) string
}

// Extractor is the live Source backed by the pdf reader library.
type Extractor struct{}

func (Extractor) FirstPages(path string, n int) string {
	if n <= 0 {
		return ""
	}
	return extract(path, n)
}

func (Extractor) FullText(path string) string {
	return extract(path, 0)
}

// extract reads up to maxPages pages of text (all pages when maxPages is
// zero). The pdf library panics on some malformed files, so the whole
// read is fenced with a recover.
func extract(path string, maxPages int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	pages := r.NumPage()
	if maxPages > 0 && maxPages < pages {
		pages = maxPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String()
}
