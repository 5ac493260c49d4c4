package dialect

import "github.com/mbsoft31/slr-pipeline/internal/queryplan"

// newArxiv builds the arXiv dialect. arXiv's search API supports
// field-prefixed terms (abs:, all:) but has no controlled-vocabulary field,
// so a controlled_vocab term downgrades to the abstract-search prefix.
func newArxiv() Dialect {
	return &base{
		name:                    "arxiv",
		orConnector:             " OR ",
		andConnector:            " AND ",
		notPrefix:               " ANDNOT ",
		phraseQuoteChar:         `"`,
		supportsFieldTags:       true,
		supportsControlledVocab: false,
		formatTerm:              formatArxivTerm,
	}
}

func formatArxivTerm(term queryplan.SearchTerm) (string, *Warning) {
	text := quoteIfPhrase(term, `"`)

	if term.FieldTag == queryplan.FieldControlledVocab {
		return "abs:" + text, &Warning{Message: "controlled vocabulary term \"" + term.Text + "\" downgraded to abstract search: arxiv has no controlled-vocabulary field"}
	}
	if term.FieldTag == queryplan.FieldAllFields {
		return "all:" + text, nil
	}
	return "abs:" + text, nil
}
