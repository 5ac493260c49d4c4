package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

const maxRISAuthors = 20

// RIS serializes docs as standard RIS tag/value records.
func RIS(docs []queryplan.Document) ([]byte, error) {
	var b strings.Builder

	for _, d := range docs {
		writeTag(&b, "TY", "JOUR")
		writeTag(&b, "TI", d.Title)

		authors := d.Authors
		if len(authors) > maxRISAuthors {
			authors = authors[:maxRISAuthors]
		}
		for _, a := range authors {
			writeTag(&b, "AU", a)
		}

		if d.Year != 0 {
			writeTag(&b, "PY", strconv.Itoa(d.Year))
		}
		if d.Venue != "" {
			writeTag(&b, "JO", d.Venue)
		}
		if d.DOI != "" {
			writeTag(&b, "DO", d.DOI)
		}
		if d.URL != "" {
			writeTag(&b, "UR", d.URL)
		}
		if d.Abstract != "" {
			writeTag(&b, "AB", d.Abstract)
		}
		if d.Provider != "" {
			writeTag(&b, "KW", d.Provider)
		}
		b.WriteString("ER  - \n\n")
	}

	return []byte(b.String()), nil
}

func writeTag(b *strings.Builder, tag, value string) {
	fmt.Fprintf(b, "%s  - %s\n", tag, value)
}
