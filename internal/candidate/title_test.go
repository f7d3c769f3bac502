package candidate

import (
	"fmt"
	"strings"
	"testing"
)

func TestTitleCandidate_Empty(t *testing.T) {
	if got := TitleCandidate(""); got != "" {
		t.Fatalf("expected empty title for empty text, got %q", got)
	}
}

func TestTitleCandidate_SkipsHeadersAndAffiliations(t *testing.T) {
	text := strings.Join([]string{
		"Lehigh University",
		"Department of Physics",
		"Abstract of the dissertation follows below",
		"Magnetic ordering in two-dimensional lattices",
		"John Smith",
	}, "\n")
	got := TitleCandidate(text)
	if got != "Magnetic ordering in two-dimensional lattices" {
		t.Fatalf("got %q", got)
	}
}

func TestTitleCandidate_SkipsThesisBoilerplate(t *testing.T) {
	text := strings.Join([]string{
		"Theses and Dissertations Collection",
		"A dissertation submitted to the graduate faculty",
		"In partial fulfillment of the requirements",
		"Hydrodynamic instabilities in rotating stellar interiors",
	}, "\n")
	got := TitleCandidate(text)
	if got != "Hydrodynamic instabilities in rotating stellar interiors" {
		t.Fatalf("got %q", got)
	}
}

func TestTitleCandidate_RequiresMinimumLength(t *testing.T) {
	text := "Short header\nAnother tiny line\nA sufficiently descriptive candidate title line"
	got := TitleCandidate(text)
	if got != "A sufficiently descriptive candidate title line" {
		t.Fatalf("got %q", got)
	}
}

func TestTitleCandidate_FallbackToFirstNonEmptyLine(t *testing.T) {
	// Every line fails the filters; the first non-empty one comes back.
	text := "\n\nUniversity of Somewhere\nCollege of Arts\n"
	got := TitleCandidate(text)
	if got != "University of Somewhere" {
		t.Fatalf("got %q", got)
	}
}

func TestTitleCandidate_ScanWindowIsBounded(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "hdr %02d\n", i)
	}
	b.WriteString("A qualifying title line appearing far too deep in the page\n")
	got := TitleCandidate(b.String())
	if got != "hdr 00" {
		t.Fatalf("expected fallback to first line, got %q", got)
	}
}

func TestContainsAffiliation(t *testing.T) {
	cases := map[string]bool{
		"Graduate School of Engineering": true,
		"Institute for Advanced Study":   true,
		"A study of sedimentary basins":  false,
		"UNIVERSITY PRESS":               true,
	}
	for s, want := range cases {
		if got := ContainsAffiliation(s); got != want {
			t.Fatalf("ContainsAffiliation(%q) = %v, want %v", s, got, want)
		}
	}
}
