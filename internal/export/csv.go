package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

const (
	maxAbstractChars = 500
	maxCSVAuthors    = 10
)

var csvHeader = []string{"title", "authors", "year", "venue", "doi", "url", "abstract", "citation_count", "provider"}

// CSV serializes docs as UTF-8 CSV: one header row plus one row per
// document, fields escaped per RFC 4180 via encoding/csv.
func CSV(docs []queryplan.Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, d := range docs {
		citations := ""
		if d.CitationCount != nil {
			citations = strconv.Itoa(*d.CitationCount)
		}
		row := []string{
			d.Title,
			joinAuthors(d.Authors, maxCSVAuthors),
			yearString(d.Year),
			d.Venue,
			d.DOI,
			d.URL,
			truncate(d.Abstract, maxAbstractChars),
			citations,
			d.Provider,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func joinAuthors(authors []string, max int) string {
	if len(authors) > max {
		authors = authors[:max]
	}
	return strings.Join(authors, "; ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func yearString(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
