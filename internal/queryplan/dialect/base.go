package dialect

import (
	"fmt"
	"strings"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

// termFormatter renders one SearchTerm as dialect syntax. It returns a
// warning when the term had to be adapted (e.g. a controlled-vocab term
// downgraded to keyword on a dialect that doesn't support it).
type termFormatter func(term queryplan.SearchTerm) (string, *Warning)

// blockEnvelope wraps an already-OR-joined block of terms, e.g. Scopus's
// single outer TITLE-ABS-KEY(...) per block. When nil, the generic skeleton
// falls back to plain parenthesization for multi-term blocks.
type blockEnvelope func(joinedOR string) string

// base implements the shared compilation skeleton: format each term ->
// join intra-block with OR -> join inter-block with AND -> apply NOT to an
// exclusion block. base does no sanitizing of its own; terms built with
// queryplan.NewSearchTerm arrive with quotes already stripped. Each dialect
// supplies only its term formatting and optional block envelope.
type base struct {
	name             string
	orConnector      string
	andConnector     string
	notPrefix        string
	phraseQuoteChar  string
	maxQueryLength   *int
	supportsFieldTags       bool
	supportsControlledVocab bool
	formatTerm       termFormatter
	envelope         blockEnvelope
}

func (b *base) Name() string { return b.name }

func (b *base) Capabilities() Capabilities {
	return Capabilities{
		SupportsFieldTags:       b.supportsFieldTags,
		SupportsControlledVocab: b.supportsControlledVocab,
		PhraseQuoteChar:         b.phraseQuoteChar,
		MaxQueryLength:          b.maxQueryLength,
	}
}

func (b *base) Format(plan queryplan.QueryPlan) string {
	s, _ := b.Compile(plan)
	return s
}

func (b *base) Compile(plan queryplan.QueryPlan) (string, []Warning) {
	var warnings []Warning

	if len(plan.Blocks) == 0 {
		warnings = append(warnings, Warning{Message: "empty query plan: no blocks to compile"})
		return "", warnings
	}

	groups := make([]string, 0, len(plan.Blocks))
	for _, blk := range plan.Blocks {
		text, ws := b.formatBlock(blk)
		warnings = append(warnings, ws...)
		groups = append(groups, text)
	}

	result := strings.Join(groups, b.andConnector)

	if plan.Exclusion != nil && len(plan.Exclusion.Terms) > 0 {
		exText, ws := b.formatBlock(*plan.Exclusion)
		warnings = append(warnings, ws...)
		result = result + b.notPrefix + exText
	}

	if b.maxQueryLength != nil && len(result) > *b.maxQueryLength {
		warnings = append(warnings, Warning{Message: fmt.Sprintf("compiled query length %d exceeds %s's max_query_length %d", len(result), b.name, *b.maxQueryLength)})
	}

	return result, warnings
}

func (b *base) formatBlock(blk queryplan.ConceptBlock) (string, []Warning) {
	var warnings []Warning
	formatted := make([]string, 0, len(blk.Terms))
	for _, term := range blk.Terms {
		text, w := b.formatTerm(term)
		if w != nil {
			warnings = append(warnings, *w)
		}
		formatted = append(formatted, text)
	}

	joined := strings.Join(formatted, b.orConnector)

	if b.envelope != nil {
		return b.envelope(joined), warnings
	}
	if len(formatted) >= 2 {
		return "(" + joined + ")", warnings
	}
	return joined, warnings
}

// quoteIfPhrase wraps text in quoteChar when the term is a phrase.
func quoteIfPhrase(term queryplan.SearchTerm, quoteChar string) string {
	if term.IsPhrase {
		return quoteChar + term.Text + quoteChar
	}
	return term.Text
}
