// Package match decides, per document, whether a metadata record fetched
// for an extracted identifier or title can be trusted. It owns the
// acceptance policy, the manual-review escape hatch, and the pacing of
// resolver calls.
package match

import (
	"pdfbib/internal/candidate"
	"pdfbib/internal/crossref"
)

// Status is the terminal disposition of a document.
type Status string

const (
	StatusMatched Status = "matched"
	StatusNoMatch Status = "no_match"
	StatusError   Status = "error"
)

// Confidence labels how an accepted record was justified.
type Confidence string

const (
	// ConfidenceHigh: identifier found on the first pages; resolution alone suffices.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium: identifier found anywhere, corroborated by title similarity.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceTitleSearch: no identifier in the document; record came from a title query.
	ConfidenceTitleSearch Confidence = "title_search"
	// ConfidenceNone: nothing accepted.
	ConfidenceNone Confidence = "none"
)

// Source values for the report's provenance-of-match column.
const (
	SourcePDFText     = "pdf_text"
	SourceTitleSearch = "title_search"
)

// Document is one input PDF as the engine sees it. FullText lazily
// materializes the complete text; the engine only invokes it when the
// first pages yield no identifier candidates.
type Document struct {
	Name           string
	FirstPages     string
	TitleCandidate string
	FullText       func() string
}

// Outcome is the engine's single, final decision for a document.
// At most one record is ever accepted.
type Outcome struct {
	Status     Status
	Record     *crossref.Work
	DOI        string
	Confidence Confidence
	Provenance candidate.Provenance
	Similarity float64
	Source     string
	Thesis     bool
	Warning    string
}

// ReviewEntry captures a title-search hit the policy declined to
// auto-accept, for human adjudication. It is produced only when the
// document's outcome is no_match and the title query returned a record.
type ReviewEntry struct {
	Filename       string
	CandidateTitle string
	AttemptedTitle string
	AttemptedDOI   string
	Similarity     float64
	Reason         string
}

// Reason codes for declined title-search hits.
const (
	ReasonAutoAcceptDisabled = "auto_accept_disabled"
	ReasonLowSimilarity      = "similarity_below_threshold"
	ReasonTitleTooShort      = "title_too_short"
	ReasonAffiliationTerm    = "affiliation_term_in_title"
)
