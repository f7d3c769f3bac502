package match

import (
	"regexp"
	"strings"

	"pdfbib/internal/crossref"
)

// thesisBodyRe probes first-pages text with whole-word matches so that
// e.g. "synthesis" does not flip the flag.
var thesisBodyRe = regexp.MustCompile(`(?i)\b(?:thesis|dissertation|ph\.?\s?d|master's)\b`)

var thesisFilenameTerms = []string{"thesis", "dissert", "phd"}

// IsThesis reports whether the document looks like a thesis or
// dissertation. Signals are checked cheapest-claim-first: the record's
// declared type, the record's title, the extracted title candidate, the
// first-pages text, and finally the filename. Any accepted record's
// export type switches to the thesis form when this returns true; the
// flag is also reported for unmatched documents.
func IsThesis(rec *crossref.Work, titleCandidate, firstPages, filename string) bool {
	if rec != nil {
		if containsAny(rec.Type, "dissertation", "thesis") {
			return true
		}
		if containsAny(rec.PrimaryTitle(), "dissertation", "thesis") {
			return true
		}
	}
	if containsAny(titleCandidate, "thesis", "dissertation", "phd", "ph.d") {
		return true
	}
	if firstPages != "" && thesisBodyRe.MatchString(firstPages) {
		return true
	}
	return containsAny(filename, thesisFilenameTerms...)
}

func containsAny(s string, terms ...string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
