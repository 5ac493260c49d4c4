package dialect

import "github.com/mbsoft31/slr-pipeline/internal/queryplan"

// newScopus builds the Scopus dialect. Scopus has no per-term field
// distinction: every block's OR-group of terms is wrapped in exactly one
// outer TITLE-ABS-KEY(...) envelope, not one envelope per term.
func newScopus() Dialect {
	return &base{
		name:                    "scopus",
		orConnector:             " OR ",
		andConnector:            " AND ",
		notPrefix:               " AND NOT ",
		phraseQuoteChar:         `"`,
		supportsFieldTags:       false,
		supportsControlledVocab: false,
		formatTerm:              formatScopusTerm,
		envelope: func(joined string) string {
			return "TITLE-ABS-KEY(" + joined + ")"
		},
	}
}

func formatScopusTerm(term queryplan.SearchTerm) (string, *Warning) {
	text := quoteIfPhrase(term, `"`)
	if term.FieldTag == queryplan.FieldControlledVocab {
		return text, &Warning{Message: "controlled vocabulary term \"" + term.Text + "\" downgraded to keyword: scopus has no MeSH-equivalent field"}
	}
	return text, nil
}
