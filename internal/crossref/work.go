// Package crossref talks to the Crossref REST API to verify DOI candidates
// and to search for works by title. The live client makes exactly one
// attempt per call and identifies the operator through a mailto contact in
// the User-Agent, per the API's polite-pool convention.
package crossref

import (
	"context"
	"strconv"
	"strings"
)

// Work is the subset of a Crossref work record the pipeline consumes.
// Field tags mirror the API's JSON spelling, including its capitalized
// DOI and URL keys and list-valued titles.
type Work struct {
	DOI            string   `json:"DOI"`
	Type           string   `json:"type"`
	Title          []string `json:"title"`
	Author         []Author `json:"author"`
	ContainerTitle []string `json:"container-title"`
	Volume         string   `json:"volume"`
	Issue          string   `json:"issue"`
	Page           string   `json:"page"`
	Issued         Date     `json:"issued"`
	URL            string   `json:"URL"`
}

// Author is one contributor with Crossref's given/family split.
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// Date carries Crossref's nested date-parts representation; only the year
// is ever read.
type Date struct {
	DateParts [][]int `json:"date-parts"`
}

// PrimaryTitle returns the first title, or "" when the record has none.
func (w *Work) PrimaryTitle() string {
	if w == nil || len(w.Title) == 0 {
		return ""
	}
	return strings.TrimSpace(w.Title[0])
}

// Container returns the first container title (journal or proceedings
// name), or "".
func (w *Work) Container() string {
	if w == nil || len(w.ContainerTitle) == 0 {
		return ""
	}
	return strings.TrimSpace(w.ContainerTitle[0])
}

// Year returns the publication year as a string, or "" when the record
// carries no usable issued date.
func (w *Work) Year() string {
	if w == nil || len(w.Issued.DateParts) == 0 || len(w.Issued.DateParts[0]) == 0 {
		return ""
	}
	y := w.Issued.DateParts[0][0]
	if y <= 0 {
		return ""
	}
	return strconv.Itoa(y)
}

// Name returns the author's display name, "Given Family" with either part
// optional.
func (a Author) Name() string {
	return strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
}

// Resolver is the metadata lookup boundary. Both operations return
// (nil, nil) when the catalog has no answer; an error only reports a
// transport or decoding failure, which callers treat as "no answer" after
// recording it.
type Resolver interface {
	// ResolveDOI fetches the work registered under a DOI.
	ResolveDOI(ctx context.Context, doi string) (*Work, error)
	// SearchTitle queries works by title and returns the top-ranked hit,
	// considering at most rows results.
	SearchTitle(ctx context.Context, title string, rows int) (*Work, error)
}
