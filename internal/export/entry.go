// Package export serializes accepted metadata records into the citation
// exchange outputs: a BibTeX file, a RIS file, the per-document CSV
// report, and the manual-review CSV.
package export

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pdfbib/internal/crossref"
)

// ErrEmptyRecord reports a record too bare to cite: no title and no DOI.
var ErrEmptyRecord = errors.New("record has neither title nor DOI")

// Entry is one bibliography entry derived from an accepted record. It is
// format-neutral; the BibTeX and RIS writers render it.
type Entry struct {
	Key      string
	BibType  string
	RISType  string
	Title    string
	Authors  []string // display names, entry order
	Year     string
	Journal  string
	Volume   string
	Issue    string
	Pages    string
	DOI      string
	URL      string
	Filename string
}

var nonWordRunRe = regexp.MustCompile(`\W+`)

// risTypes maps Crossref work types to RIS reference types.
var risTypes = map[string]string{
	"journal-article":     "JOUR",
	"article-journal":     "JOUR",
	"book":                "BOOK",
	"report":              "RPRT",
	"proceedings-article": "CPAPER",
	"dissertation":        "THES",
}

// Build constructs an Entry from a resolved work. The thesis flag forces
// the thesis-specific entry types in both output formats. Build fails
// only when the record carries neither a title nor a DOI; such records
// cannot produce a useful citation.
func Build(rec *crossref.Work, filename string, thesis bool) (Entry, error) {
	title := rec.PrimaryTitle()
	if title == "" && rec.DOI == "" {
		return Entry{}, ErrEmptyRecord
	}

	authors := make([]string, 0, len(rec.Author))
	for _, a := range rec.Author {
		if name := a.Name(); name != "" {
			authors = append(authors, name)
		}
	}

	e := Entry{
		Key:      citeKey(rec, title),
		BibType:  bibType(rec.Type, thesis),
		RISType:  risType(rec.Type, thesis),
		Title:    title,
		Authors:  authors,
		Year:     rec.Year(),
		Journal:  rec.Container(),
		Volume:   rec.Volume,
		Issue:    rec.Issue,
		Pages:    rec.Page,
		DOI:      rec.DOI,
		URL:      rec.URL,
		Filename: filename,
	}
	return e, nil
}

// citeKey builds family_year_shorttitle with non-word runs collapsed to
// underscores, e.g. lovelace_2021_an_example_article.
func citeKey(rec *crossref.Work, title string) string {
	first := "anon"
	if len(rec.Author) > 0 {
		if f := rec.Author[0].Family; f != "" {
			first = f
		} else if g := rec.Author[0].Given; g != "" {
			first = g
		}
	}
	year := rec.Year()
	if year == "" {
		year = "n.d."
	}
	short := title
	if len(short) > 30 {
		short = short[:30]
	}
	key := strings.ToLower(fmt.Sprintf("%s_%s_%s", first, year, short))
	key = nonWordRunRe.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

func bibType(workType string, thesis bool) string {
	if thesis {
		return "phdthesis"
	}
	if strings.Contains(workType, "journal") {
		return "article"
	}
	return "misc"
}

func risType(workType string, thesis bool) string {
	if thesis {
		return "THES"
	}
	if t, ok := risTypes[workType]; ok {
		return t
	}
	return "GEN"
}
