// Package candidate extracts DOI and title candidates from PDF text. It is
// pure text processing: no file or network access, and no failures — bad
// input degrades to empty output.
package candidate

import (
	"regexp"
	"strings"
)

// Provenance records where and how a DOI candidate was found. It doubles
// as a trust signal: a DOI printed on the first pages, especially one
// carrying an explicit label, is far more likely to identify the document
// itself than a bare pattern match deep in the references.
type Provenance string

const (
	FirstPagesLabel Provenance = "firstpages_label"
	FirstPagesAny   Provenance = "firstpages_any"
	AnywhereLabel   Provenance = "anywhere_label"
	AnywhereAny     Provenance = "anywhere_any"
)

// HighTrust reports whether a candidate with this provenance may be
// accepted on resolution alone, without title corroboration.
func (p Provenance) HighTrust() bool {
	return p == FirstPagesLabel || p == FirstPagesAny
}

// Candidate is one DOI-shaped string found in a document's text.
type Candidate struct {
	DOI        string
	Provenance Provenance
}

var (
	// doiRe matches any DOI-shaped token: 10.NNNN/suffix with the suffix
	// running until whitespace or a quote/angle delimiter.
	doiRe = regexp.MustCompile(`10\.\d{4,9}/[^\s"'<>]+`)

	// labeledRe requires a marker before the DOI: a "doi" label word with
	// colon or whitespace, or a doi.org resolver URL prefix.
	labeledRe = regexp.MustCompile(`(?i)(?:\bdoi\b[\s:]+|https?://(?:dx\.)?doi\.org/)\s*(10\.\d{4,9}/[^\s"'<>]+)`)
)

// Extract scans both text sources for DOI candidates and returns them in
// trust order: first-pages results before full-text results, labeled
// before unlabeled within each source. Duplicates are dropped
// case-insensitively; the first occurrence wins and keeps its provenance.
// Either input may be empty.
func Extract(fullText, firstPages string) []Candidate {
	var raw []Candidate
	raw = collect(raw, firstPages, FirstPagesLabel, FirstPagesAny)
	raw = collect(raw, fullText, AnywhereLabel, AnywhereAny)

	seen := make(map[string]struct{}, len(raw))
	out := make([]Candidate, 0, len(raw))
	for _, c := range raw {
		key := strings.ToLower(c.DOI)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func collect(dst []Candidate, text string, labeled, unlabeled Provenance) []Candidate {
	if text == "" {
		return dst
	}
	for _, m := range labeledRe.FindAllStringSubmatch(text, -1) {
		if doi := clean(m[1]); doi != "" {
			dst = append(dst, Candidate{DOI: doi, Provenance: labeled})
		}
	}
	for _, m := range doiRe.FindAllString(text, -1) {
		if doi := clean(m); doi != "" {
			dst = append(dst, Candidate{DOI: doi, Provenance: unlabeled})
		}
	}
	return dst
}

// clean strips trailing punctuation that the loose suffix pattern drags
// in when a DOI ends a sentence or sits inside parentheses.
func clean(doi string) string {
	return strings.TrimRight(strings.TrimSpace(doi), ".,;)")
}
