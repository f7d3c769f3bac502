package candidate

import (
	"bufio"
	"strings"
)

// maxTitleScanLines bounds the title scan to the top of the first page or
// two; anything deeper is body text.
const maxTitleScanLines = 30

// minTitleChars is the shortest line accepted as a title during the scan.
// Shorter lines are usually running heads, page numbers, or section labels.
const minTitleChars = 20

// skipPrefixes are header and boilerplate words that start lines which are
// never the title. Thesis front matter contributes most of them.
var skipPrefixes = []string{
	"abstract",
	"keywords",
	"introduction",
	"acknowledg",
	"copyright",
	"theses",
	"dissertations",
	"a thesis",
	"a dissertation",
	"submitted in",
	"in partial fulfillment",
}

// affiliationTerms mark institutional lines. Title pages of theses and
// repository cover sheets put these above the actual title.
var affiliationTerms = []string{
	"university",
	"college",
	"department",
	"institute",
	"school",
	"faculty of",
	"graduate",
}

// TitleCandidate picks the most title-like line from first-pages text.
// It scans the first 30 non-empty lines in order, skipping known header
// words and institutional lines, and returns the first remaining line
// longer than 20 characters. If nothing qualifies it falls back to the
// first non-empty line, even a short or skipped one; empty input yields "".
func TitleCandidate(firstPages string) string {
	if firstPages == "" {
		return ""
	}
	var firstNonEmpty string
	scanned := 0
	scanner := bufio.NewScanner(strings.NewReader(firstPages))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if firstNonEmpty == "" {
			firstNonEmpty = line
		}
		scanned++
		if scanned > maxTitleScanLines {
			break
		}
		if len(line) <= minTitleChars {
			continue
		}
		lower := strings.ToLower(line)
		if hasSkipPrefix(lower) || ContainsAffiliation(line) {
			continue
		}
		return line
	}
	return firstNonEmpty
}

func hasSkipPrefix(lower string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// ContainsAffiliation reports whether s mentions an institutional
// affiliation term. The title-fallback acceptance guard shares this check:
// a "title" naming a university is almost always front matter.
func ContainsAffiliation(s string) bool {
	lower := strings.ToLower(s)
	for _, term := range affiliationTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
