package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"pdfbib/internal/crossref"
	"pdfbib/internal/match"
)

func sampleWork() *crossref.Work {
	return &crossref.Work{
		DOI:            "10.1000/xyz123",
		Type:           "journal-article",
		Title:          []string{"An Example Article"},
		Author:         []crossref.Author{{Given: "Ada", Family: "Lovelace"}, {Given: "Charles", Family: "Babbage"}},
		ContainerTitle: []string{"Journal of Examples"},
		Volume:         "12",
		Issue:          "3",
		Page:           "100-110",
		Issued:         crossref.Date{DateParts: [][]int{{2021, 5}}},
		URL:            "https://doi.org/10.1000/xyz123",
	}
}

func TestBuild_FullRecord(t *testing.T) {
	e, err := Build(sampleWork(), "paper.pdf", false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if e.Key != "lovelace_2021_an_example_article" {
		t.Fatalf("key = %q", e.Key)
	}
	if e.BibType != "article" || e.RISType != "JOUR" {
		t.Fatalf("types = %s/%s", e.BibType, e.RISType)
	}
	if len(e.Authors) != 2 || e.Authors[0] != "Ada Lovelace" {
		t.Fatalf("authors = %v", e.Authors)
	}
	if e.Year != "2021" || e.Journal != "Journal of Examples" {
		t.Fatalf("entry = %+v", e)
	}
}

func TestBuild_ThesisFlagSwitchesTypes(t *testing.T) {
	e, err := Build(sampleWork(), "thesis.pdf", true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if e.BibType != "phdthesis" {
		t.Fatalf("bib type = %s, want phdthesis", e.BibType)
	}
	if e.RISType != "THES" {
		t.Fatalf("ris type = %s, want THES", e.RISType)
	}
}

func TestBuild_EmptyRecordFails(t *testing.T) {
	_, err := Build(&crossref.Work{Type: "journal-article"}, "x.pdf", false)
	if !errors.Is(err, ErrEmptyRecord) {
		t.Fatalf("err = %v, want ErrEmptyRecord", err)
	}
}

func TestBuild_NoAuthorsUsesAnonKey(t *testing.T) {
	rec := &crossref.Work{DOI: "10.1/x", Title: []string{"Untitled Committee Report"}}
	e, err := Build(rec, "r.pdf", false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasPrefix(e.Key, "anon_n_d_") {
		t.Fatalf("key = %q", e.Key)
	}
}

func TestWriteBibTeX(t *testing.T) {
	e, _ := Build(sampleWork(), "paper.pdf", false)
	var buf bytes.Buffer
	if err := WriteBibTeX(&buf, []Entry{e}); err != nil {
		t.Fatalf("WriteBibTeX: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"@article{lovelace_2021_an_example_article,",
		"    title = {An Example Article},",
		"    author = {Ada Lovelace and Charles Babbage},",
		"    year = {2021},",
		"    journal = {Journal of Examples},",
		"    number = {3},",
		"    doi = {10.1000/xyz123},",
		"    note = {PDF file: paper.pdf},",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("bibtex output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteBibTeX_OmitsEmptyFields(t *testing.T) {
	e, _ := Build(&crossref.Work{DOI: "10.1/x", Title: []string{"Sparse"}}, "s.pdf", false)
	var buf bytes.Buffer
	if err := WriteBibTeX(&buf, []Entry{e}); err != nil {
		t.Fatalf("WriteBibTeX: %v", err)
	}
	out := buf.String()
	for _, absent := range []string{"author =", "year =", "journal =", "volume =", "pages =", "url ="} {
		if strings.Contains(out, absent) {
			t.Fatalf("empty field %q rendered:\n%s", absent, out)
		}
	}
}

func TestWriteRIS(t *testing.T) {
	e, _ := Build(sampleWork(), "paper.pdf", false)
	var buf bytes.Buffer
	if err := WriteRIS(&buf, []Entry{e}); err != nil {
		t.Fatalf("WriteRIS: %v", err)
	}
	out := buf.String()
	lines := []string{
		"TY  - JOUR",
		"AU  - Ada Lovelace",
		"AU  - Charles Babbage",
		"TI  - An Example Article",
		"JO  - Journal of Examples",
		"PY  - 2021",
		"VL  - 12",
		"IS  - 3",
		"SP  - 100-110",
		"DO  - 10.1000/xyz123",
		"N1  - PDF file: paper.pdf",
		"ER  - ",
	}
	for _, want := range lines {
		if !strings.Contains(out, want+"\n") {
			t.Fatalf("ris output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRIS_BlankLineBetweenRecords(t *testing.T) {
	e, _ := Build(sampleWork(), "a.pdf", false)
	var buf bytes.Buffer
	if err := WriteRIS(&buf, []Entry{e, e}); err != nil {
		t.Fatalf("WriteRIS: %v", err)
	}
	if !strings.Contains(buf.String(), "ER  - \n\nTY  - ") {
		t.Fatalf("records not separated by a blank line:\n%s", buf.String())
	}
}

func TestRoundTrip_BibAndRISAgree(t *testing.T) {
	e, _ := Build(sampleWork(), "paper.pdf", false)
	var bib, ris bytes.Buffer
	if err := WriteBibTeX(&bib, []Entry{e}); err != nil {
		t.Fatalf("bib: %v", err)
	}
	if err := WriteRIS(&ris, []Entry{e}); err != nil {
		t.Fatalf("ris: %v", err)
	}
	if !strings.Contains(bib.String(), "{10.1000/xyz123}") || !strings.Contains(ris.String(), "DO  - 10.1000/xyz123") {
		t.Fatal("identifier differs between formats")
	}
	if !strings.Contains(bib.String(), "{An Example Article}") || !strings.Contains(ris.String(), "TI  - An Example Article") {
		t.Fatal("title differs between formats")
	}
}

func TestWriteReport(t *testing.T) {
	rows := []ReportRow{
		{
			Filename:       "a.pdf",
			DOI:            "10.1000/xyz123",
			Status:         match.StatusMatched,
			Source:         match.SourcePDFText,
			Confidence:     match.ConfidenceHigh,
			Provenance:     "firstpages_label",
			Similarity:     0.9142,
			ResolvedTitle:  "An Example Article",
			CandidateTitle: "An example article",
			TypeHint:       "journal-article",
		},
		{Filename: "b.pdf", Status: match.StatusNoMatch, Confidence: match.ConfidenceNone},
	}
	var buf bytes.Buffer
	if err := WriteReport(&buf, rows); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d csv records, want header + 2", len(records))
	}
	if records[0][0] != "filename" || records[0][10] != "warning" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][6] != "0.91" {
		t.Fatalf("similarity formatting = %q", records[1][6])
	}
	if records[2][2] != "no_match" {
		t.Fatalf("status column = %q", records[2][2])
	}
}

func TestWriteReview(t *testing.T) {
	rows := []match.ReviewEntry{{
		Filename:       "b.pdf",
		CandidateTitle: "Soil carbon dynamics in boreal forests",
		AttemptedTitle: "Soil Carbon Dynamics in Boreal Forests",
		AttemptedDOI:   "10.2000/titlehit",
		Similarity:     1,
		Reason:         match.ReasonAutoAcceptDisabled,
	}}
	var buf bytes.Buffer
	if err := WriteReview(&buf, rows); err != nil {
		t.Fatalf("WriteReview: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[1][5] != match.ReasonAutoAcceptDisabled {
		t.Fatalf("reason column = %q", records[1][5])
	}
}
