// Package app wires the extraction pipeline together and runs it over a
// folder of PDFs: text extraction, candidate scanning, Crossref
// resolution, classification, and the four output files.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"pdfbib/internal/candidate"
	"pdfbib/internal/crossref"
	"pdfbib/internal/export"
	"pdfbib/internal/match"
	"pdfbib/internal/pdftext"
)

// App owns the collaborators for one run. Text and the engine's Resolver
// are replaceable so tests can run the whole pipeline deterministically.
type App struct {
	cfg    Config
	Text   pdftext.Source
	Engine *match.Engine
}

// Summary counts outcomes across a run, for the end-of-run table.
type Summary struct {
	Documents int
	Matched   int
	NoMatch   int
	Errors    int
	Review    int
}

// New validates cfg and assembles the live pipeline.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	info, err := os.Stat(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("input folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input folder: %s is not a directory", cfg.InputDir)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = match.DefaultDelay
	}
	resolver := &crossref.Client{
		BaseURL:    cfg.CrossrefBaseURL,
		Mailto:     cfg.Mailto,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	return &App{
		cfg:  cfg,
		Text: pdftext.Extractor{},
		Engine: &match.Engine{
			Resolver:        resolver,
			Threshold:       cfg.SimilarityThreshold,
			TitleAutoAccept: cfg.TitleAutoAccept,
			TitleMinLen:     cfg.TitleMinLen,
			TitleRows:       cfg.TitleRows,
			Delay:           delay,
		},
	}, nil
}

// Run processes every PDF in the input folder, one document at a time,
// then writes the bibliography and report files. Per-document failures
// degrade to report rows; only output writing can fail the run here.
func (a *App) Run(ctx context.Context) (Summary, error) {
	files, err := a.listPDFs()
	if err != nil {
		return Summary{}, err
	}
	log.Info().Int("count", len(files)).Str("folder", a.cfg.InputDir).Msg("scanning PDF files")

	firstPages := a.cfg.FirstPages
	if firstPages <= 0 {
		firstPages = 3
	}

	var (
		entries    []export.Entry
		reportRows []export.ReportRow
		reviewRows []match.ReviewEntry
	)
	summary := Summary{Documents: len(files)}

	for _, name := range files {
		path := filepath.Join(a.cfg.InputDir, name)
		first := a.Text.FirstPages(path, firstPages)
		doc := match.Document{
			Name:           name,
			FirstPages:     first,
			TitleCandidate: candidate.TitleCandidate(first),
			FullText:       func() string { return a.Text.FullText(path) },
		}

		outcome, review := a.Engine.Decide(ctx, doc)
		outcome.Thesis = match.IsThesis(outcome.Record, doc.TitleCandidate, doc.FirstPages, name)
		if review != nil {
			reviewRows = append(reviewRows, *review)
			summary.Review++
		}

		if outcome.Status == match.StatusMatched {
			entry, err := export.Build(outcome.Record, name, outcome.Thesis)
			if err != nil {
				// The record resolved but cannot produce a citation; keep
				// the document in the report, out of the bibliography.
				outcome.Status = match.StatusError
				outcome.Warning = joinWarnings(outcome.Warning, "entry construction: "+err.Error())
				log.Warn().Err(err).Str("file", name).Msg("entry construction failed")
			} else {
				entries = append(entries, entry)
			}
		}

		switch outcome.Status {
		case match.StatusMatched:
			summary.Matched++
		case match.StatusError:
			summary.Errors++
		default:
			summary.NoMatch++
		}

		reportRows = append(reportRows, reportRow(outcome, doc))
		log.Info().
			Str("file", name).
			Str("status", string(outcome.Status)).
			Str("confidence", string(outcome.Confidence)).
			Str("doi", outcome.DOI).
			Msg("document processed")
	}

	if err := a.writeOutputs(entries, reportRows, reviewRows); err != nil {
		return summary, err
	}
	return summary, nil
}

// listPDFs returns the PDF filenames directly inside the input folder,
// sorted for deterministic processing order.
func (a *App) listPDFs() ([]string, error) {
	dirents, err := os.ReadDir(a.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input folder: %w", err)
	}
	var files []string
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			files = append(files, d.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func reportRow(out match.Outcome, doc match.Document) export.ReportRow {
	return export.ReportRow{
		Filename:       doc.Name,
		DOI:            out.DOI,
		Status:         out.Status,
		Source:         out.Source,
		Confidence:     out.Confidence,
		Provenance:     string(out.Provenance),
		Similarity:     out.Similarity,
		ResolvedTitle:  out.Record.PrimaryTitle(),
		CandidateTitle: doc.TitleCandidate,
		TypeHint:       typeHint(out),
		Warning:        out.Warning,
	}
}

func typeHint(out match.Outcome) string {
	if out.Thesis {
		return "thesis"
	}
	if out.Record != nil {
		return out.Record.Type
	}
	return ""
}

func (a *App) writeOutputs(entries []export.Entry, reportRows []export.ReportRow, reviewRows []match.ReviewEntry) error {
	outDir := a.cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}

	if err := writeFile(filepath.Join(outDir, BibFileName), func(f *os.File) error {
		return export.WriteBibTeX(f, entries)
	}); err != nil {
		return fmt.Errorf("write bibtex: %w", err)
	}
	if err := writeFile(filepath.Join(outDir, RISFileName), func(f *os.File) error {
		return export.WriteRIS(f, entries)
	}); err != nil {
		return fmt.Errorf("write ris: %w", err)
	}
	if err := writeFile(filepath.Join(outDir, ReportFileName), func(f *os.File) error {
		return export.WriteReport(f, reportRows)
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	// The review file only exists when there is something to review.
	if len(reviewRows) > 0 {
		if err := writeFile(filepath.Join(outDir, ReviewFileName), func(f *os.File) error {
			return export.WriteReview(f, reviewRows)
		}); err != nil {
			return fmt.Errorf("write review: %w", err)
		}
	}
	log.Info().Str("dir", outDir).Msg("wrote bibliography and report files")
	return nil
}

func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func joinWarnings(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
