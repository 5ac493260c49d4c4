package dialect

// newWebOfScience builds the Web of Science dialect. WoS's topic search
// wraps each block's OR-group in a TS=(...) field tag; it has no
// controlled-vocabulary field distinct from topic search.
func newWebOfScience() Dialect {
	return &base{
		name:                    "wos",
		orConnector:             " OR ",
		andConnector:            " AND ",
		notPrefix:               " NOT ",
		phraseQuoteChar:         `"`,
		supportsFieldTags:       true,
		supportsControlledVocab: false,
		formatTerm:              formatPlainTerm("wos"),
		envelope: func(joined string) string {
			return "TS=(" + joined + ")"
		},
	}
}
