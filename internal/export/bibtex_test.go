package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

func TestBibTeX_EntryShape(t *testing.T) {
	docs := []queryplan.Document{
		{Title: "Title {With} Braces", Authors: []string{"Jane Smith"}, Year: 2020, Venue: "Journal"},
	}

	data, err := BibTeX(docs)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "@article{Smith2020_0,"))
	assert.Contains(t, out, "title = {Title \\{With\\} Braces}")
	assert.Contains(t, out, "author = {Jane Smith}")
	assert.Contains(t, out, "year = {2020}")
}

func TestBibTeX_MiscWhenNoYear(t *testing.T) {
	docs := []queryplan.Document{{Title: "Undated"}}

	data, err := BibTeX(docs)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "@misc{Unknown_0,"))
}
