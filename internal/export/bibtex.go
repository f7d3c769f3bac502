package export

import (
	"fmt"
	"io"
	"strings"
)

// bibField is one rendered BibTeX field; order is fixed so output is
// reproducible between runs.
type bibField struct {
	name  string
	value string
}

// WriteBibTeX renders entries as a BibTeX database, one entry per matched
// document. Empty fields are omitted; fields are indented four spaces.
func WriteBibTeX(w io.Writer, entries []Entry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeBibEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeBibEntry(w io.Writer, e Entry) error {
	fields := []bibField{
		{"title", e.Title},
		{"author", strings.Join(e.Authors, " and ")},
		{"year", e.Year},
		{"journal", e.Journal},
		{"volume", e.Volume},
		{"number", e.Issue},
		{"pages", e.Pages},
		{"doi", e.DOI},
		{"url", e.URL},
		{"note", note(e.Filename)},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", e.BibType, e.Key)
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(&b, "    %s = {%s},\n", f.name, f.value)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func note(filename string) string {
	if filename == "" {
		return ""
	}
	return "PDF file: " + filename
}
