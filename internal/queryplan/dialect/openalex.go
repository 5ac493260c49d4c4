package dialect

import "github.com/mbsoft31/slr-pipeline/internal/queryplan"

// newOpenAlex builds the OpenAlex dialect. OpenAlex's search endpoint takes
// plain boolean text with no field-tag syntax, so every term is emitted
// verbatim (quoted when it's a phrase).
func newOpenAlex() Dialect {
	return &base{
		name:                    "openalex",
		orConnector:             " OR ",
		andConnector:            " AND ",
		notPrefix:               " NOT ",
		phraseQuoteChar:         `"`,
		supportsFieldTags:       false,
		supportsControlledVocab: false,
		formatTerm:              formatPlainTerm("openalex"),
	}
}

// formatPlainTerm builds a termFormatter for dialects with no field-tag
// syntax: terms are quoted only when they're phrases, and a
// controlled_vocab term is downgraded to keyword with a warning.
func formatPlainTerm(dialectName string) termFormatter {
	return func(term queryplan.SearchTerm) (string, *Warning) {
		text := quoteIfPhrase(term, `"`)
		if term.FieldTag == queryplan.FieldControlledVocab {
			return text, &Warning{Message: "controlled vocabulary term \"" + term.Text + "\" downgraded to keyword: " + dialectName + " has no controlled-vocabulary field"}
		}
		return text, nil
	}
}
