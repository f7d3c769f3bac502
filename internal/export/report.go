package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"pdfbib/internal/match"
)

// ReportRow is one line of the per-document CSV report. Every scanned
// document contributes exactly one row, whatever its outcome.
type ReportRow struct {
	Filename       string
	DOI            string
	Status         match.Status
	Source         string
	Confidence     match.Confidence
	Provenance     string
	Similarity     float64
	ResolvedTitle  string
	CandidateTitle string
	TypeHint       string
	Warning        string
}

var reportHeader = []string{
	"filename", "doi", "status", "source", "confidence", "provenance",
	"similarity", "resolved_title", "candidate_title", "type_hint", "warning",
}

// WriteReport writes the outcome report as CSV with a header row.
func WriteReport(w io.Writer, rows []ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Filename,
			r.DOI,
			string(r.Status),
			r.Source,
			string(r.Confidence),
			r.Provenance,
			fmt.Sprintf("%.2f", r.Similarity),
			r.ResolvedTitle,
			r.CandidateTitle,
			r.TypeHint,
			r.Warning,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var reviewHeader = []string{
	"filename", "candidate_title", "attempted_title", "attempted_doi", "similarity", "reason",
}

// WriteReview writes declined title-search hits as CSV. Callers skip the
// file entirely when there are no rows.
func WriteReview(w io.Writer, rows []match.ReviewEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reviewHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Filename,
			r.CandidateTitle,
			r.AttemptedTitle,
			r.AttemptedDOI,
			fmt.Sprintf("%.2f", r.Similarity),
			r.Reason,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
