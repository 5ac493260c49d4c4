package dialect

import "github.com/mbsoft31/slr-pipeline/internal/queryplan"

// newPubMed builds the PubMed dialect: every term is double-quoted and
// tagged with its MEDLINE field — [MeSH Terms] for controlled vocabulary,
// [Title/Abstract] for keywords, [All Fields] otherwise.
func newPubMed() Dialect {
	return &base{
		name:                    "pubmed",
		orConnector:             " OR ",
		andConnector:            " AND ",
		notPrefix:               " NOT ",
		phraseQuoteChar:         `"`,
		supportsFieldTags:       true,
		supportsControlledVocab: true,
		formatTerm:              formatPubMedTerm,
	}
}

func formatPubMedTerm(term queryplan.SearchTerm) (string, *Warning) {
	var tag string
	switch term.FieldTag {
	case queryplan.FieldControlledVocab:
		tag = "[MeSH Terms]"
	case queryplan.FieldKeyword:
		tag = "[Title/Abstract]"
	default:
		tag = "[All Fields]"
	}
	return `"` + term.Text + `"` + tag, nil
}
