package app

import "time"

// Config holds runtime configuration for one folder run.
type Config struct {
	// InputDir is the folder scanned (non-recursively) for PDF files.
	InputDir string
	// OutputDir receives the bibliography and report files. Empty means
	// the current working directory.
	OutputDir string

	// Crossref
	Mailto          string
	CrossrefBaseURL string
	Timeout         time.Duration
	Delay           time.Duration

	// Acceptance policy
	SimilarityThreshold float64
	TitleAutoAccept     bool
	TitleMinLen         int
	TitleRows           int

	// FirstPages is how many leading pages are extracted for the cheap
	// first-pages scan.
	FirstPages int

	Verbose bool
}

// Output filenames, written into OutputDir.
const (
	BibFileName    = "references.bib"
	RISFileName    = "references.ris"
	ReportFileName = "doi_report.csv"
	ReviewFileName = "manual_review.csv"
)
