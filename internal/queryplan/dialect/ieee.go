package dialect

// newIEEE builds the IEEE Xplore dialect. IEEE's metadata search wraps each
// block's OR-group in a "Full Text & Metadata":(...) field tag; it has no
// separate controlled-vocabulary field.
func newIEEE() Dialect {
	return &base{
		name:                    "ieee",
		orConnector:             " OR ",
		andConnector:            " AND ",
		notPrefix:               " NOT ",
		phraseQuoteChar:         `"`,
		supportsFieldTags:       true,
		supportsControlledVocab: false,
		formatTerm:              formatPlainTerm("ieee"),
		envelope: func(joined string) string {
			return `"Full Text & Metadata":(` + joined + ")"
		},
	}
}
