package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

// BibTeX serializes docs as one @article entry per document (@misc when
// year is unknown), keyed "<FirstAuthorSurname><Year>_<index>".
func BibTeX(docs []queryplan.Document) ([]byte, error) {
	var b strings.Builder

	for i, d := range docs {
		entryType := "article"
		if d.Year == 0 {
			entryType = "misc"
		}

		b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, citationKey(d, i)))
		writeField(&b, "title", d.Title)
		if len(d.Authors) > 0 {
			writeField(&b, "author", strings.Join(d.Authors, " and "))
		}
		if d.Year != 0 {
			writeField(&b, "year", strconv.Itoa(d.Year))
		}
		if d.Venue != "" {
			writeField(&b, "journal", d.Venue)
		}
		if d.DOI != "" {
			writeField(&b, "doi", d.DOI)
		}
		if d.URL != "" {
			writeField(&b, "url", d.URL)
		}
		if d.Abstract != "" {
			writeField(&b, "abstract", d.Abstract)
		}
		b.WriteString("}\n\n")
	}

	return []byte(b.String()), nil
}

func writeField(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "  %s = {%s},\n", name, escapeBraces(value))
}

func escapeBraces(s string) string {
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	return s
}

// citationKey builds "<FirstAuthorSurname><Year>_<index>", falling back to
// "Unknown" when no author is present.
func citationKey(d queryplan.Document, index int) string {
	surname := "Unknown"
	if len(d.Authors) > 0 {
		fields := strings.Fields(d.Authors[0])
		if len(fields) > 0 {
			surname = sanitizeKey(fields[len(fields)-1])
		}
	}
	year := ""
	if d.Year != 0 {
		year = strconv.Itoa(d.Year)
	}
	return fmt.Sprintf("%s%s_%d", surname, year, index)
}

// sanitizeKey strips characters BibTeX keys disallow.
func sanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
