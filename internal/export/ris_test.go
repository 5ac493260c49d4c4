package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

func TestRIS_TagShape(t *testing.T) {
	docs := []queryplan.Document{
		{Title: "A Paper", Authors: []string{"Jane Smith", "John Doe"}, Year: 2019, Venue: "Journal", DOI: "10.1/x"},
	}

	data, err := RIS(docs)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "TY  - JOUR\n")
	assert.Contains(t, out, "TI  - A Paper\n")
	assert.Contains(t, out, "AU  - Jane Smith\n")
	assert.Contains(t, out, "AU  - John Doe\n")
	assert.Contains(t, out, "PY  - 2019\n")
	assert.Contains(t, out, "ER  - \n")
}

func TestRIS_AuthorCap(t *testing.T) {
	authors := make([]string, 25)
	for i := range authors {
		authors[i] = "Author"
	}
	docs := []queryplan.Document{{Title: "T", Authors: authors}}

	data, err := RIS(docs)
	require.NoError(t, err)

	assert.Equal(t, maxRISAuthors, strings.Count(string(data), "AU  - "))
}
