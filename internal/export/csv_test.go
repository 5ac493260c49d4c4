package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

func TestCSV_RoundTrips(t *testing.T) {
	citations := 12
	docs := []queryplan.Document{
		{
			Title:         "A Study, With Commas",
			Authors:       []string{"Jane Smith", "John Doe"},
			Year:          2021,
			Venue:         "Journal of Things",
			DOI:           "10.1/x",
			URL:           "https://example.com",
			Abstract:      strings.Repeat("a", 600),
			CitationCount: &citations,
			Provider:      "openalex",
		},
	}

	data, err := CSV(docs)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(data)))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "A Study, With Commas", rows[1][0])
	require.Equal(t, "Jane Smith; John Doe", rows[1][1])
	require.Equal(t, "2021", rows[1][2])
	require.Len(t, rows[1][6], maxAbstractChars)
	require.Equal(t, "12", rows[1][7])
}

func TestCSV_AuthorCapAndEmptyCitations(t *testing.T) {
	authors := make([]string, 15)
	for i := range authors {
		authors[i] = "Author"
	}
	docs := []queryplan.Document{{Title: "T", Authors: authors, Provider: "crossref"}}

	data, err := CSV(docs)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(data)))
	rows, err := r.ReadAll()
	require.NoError(t, err)

	joined := strings.Split(rows[1][1], "; ")
	require.Len(t, joined, maxCSVAuthors)
	require.Equal(t, "", rows[1][7])
}
