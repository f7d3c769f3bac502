package export

import (
	"fmt"
	"io"
	"strings"
)

// WriteRIS renders entries as an RIS file, one record per matched
// document, records separated by a blank line. Tags follow the RIS
// tag-per-line convention with N1 carrying the source-filename note.
func WriteRIS(w io.Writer, entries []Entry) error {
	records := make([]string, 0, len(entries))
	for _, e := range entries {
		records = append(records, risRecord(e))
	}
	_, err := io.WriteString(w, strings.Join(records, "\n"))
	return err
}

func risRecord(e Entry) string {
	var b strings.Builder
	tag := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s  - %s\n", name, value)
		}
	}

	tag("TY", e.RISType)
	for _, a := range e.Authors {
		tag("AU", a)
	}
	tag("TI", e.Title)
	tag("JO", e.Journal)
	tag("PY", e.Year)
	tag("VL", e.Volume)
	tag("IS", e.Issue)
	tag("SP", e.Pages)
	tag("DO", e.DOI)
	tag("UR", e.URL)
	tag("N1", note(e.Filename))
	b.WriteString("ER  - \n")
	return b.String()
}
