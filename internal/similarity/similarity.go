// Package similarity scores how alike two title strings are. The ratio is
// used to corroborate bibliographic records fetched for loosely matched
// identifiers, so it favors stability over linguistic sophistication.
package similarity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Ratio returns a normalized similarity score in [0,1] between a and b.
// The score is 2*M/T where M is the total length of the longest matching
// blocks between the normalized inputs and T is the combined length.
// Ratio is symmetric, Ratio(a,a) is 1 for non-empty a, and an empty input
// on either side yields 0.
func Ratio(a, b string) float64 {
	na := normalize(a)
	nb := normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	ra := []rune(na)
	rb := []rune(nb)
	total := len(ra) + len(rb)
	matched := matchingRunes(ra, rb)
	return 2 * float64(matched) / float64(total)
}

// normalize folds case and applies NFKC so that ligatures and width
// variants common in PDF-extracted text (ﬁ, ﬂ, full-width forms) compare
// equal to their plain spellings. Runs of whitespace collapse to a single
// space because PDF extraction breaks lines unpredictably.
func normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// matchingRunes counts runes covered by the longest matching blocks,
// found by recursively splitting around the longest common substring.
func matchingRunes(a, b []rune) int {
	ai, bi, n := longestMatch(a, b)
	if n == 0 {
		return 0
	}
	return n + matchingRunes(a[:ai], b[:bi]) + matchingRunes(a[ai+n:], b[bi+n:])
}

// longestMatch finds the longest common substring of a and b, returning
// its start offsets and length. Ties resolve to the earliest offsets so
// the block decomposition is deterministic.
func longestMatch(a, b []rune) (ai, bi, n int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	// lengths[j] is the length of the common suffix ending at a[i-1], b[j-1]
	// for the current row i.
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > n {
					n = cur[j]
					ai = i - n
					bi = j - n
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, n
}
