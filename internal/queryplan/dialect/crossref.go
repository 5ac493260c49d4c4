package dialect

// newCrossref builds the Crossref dialect. Crossref's bibliographic search
// parameter takes free text; there is no field-tag or controlled-vocabulary
// syntax to target.
func newCrossref() Dialect {
	return &base{
		name:                    "crossref",
		orConnector:             " OR ",
		andConnector:            " AND ",
		notPrefix:               " NOT ",
		phraseQuoteChar:         `"`,
		supportsFieldTags:       false,
		supportsControlledVocab: false,
		formatTerm:              formatPlainTerm("crossref"),
	}
}
