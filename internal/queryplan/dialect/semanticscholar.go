package dialect

// newSemanticScholar builds the Semantic Scholar dialect. Its search
// endpoint takes free text with no field-tag or controlled-vocabulary
// syntax.
func newSemanticScholar() Dialect {
	return &base{
		name:                    "semanticscholar",
		orConnector:             " OR ",
		andConnector:            " AND ",
		notPrefix:               " NOT ",
		phraseQuoteChar:         `"`,
		supportsFieldTags:       false,
		supportsControlledVocab: false,
		formatTerm:              formatPlainTerm("semanticscholar"),
	}
}
