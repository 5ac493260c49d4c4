// Package queryplan defines the value types the Boolean Query Synthesis
// Engine compiles: ConceptBlock, QueryPlan, FieldTag, SearchTerm, and the
// normalized Document returned by search providers.
package queryplan

import "strings"

// FieldTag selects which part of a record a SearchTerm is matched against.
type FieldTag string

const (
	FieldKeyword        FieldTag = "keyword"
	FieldControlledVocab FieldTag = "controlled_vocab"
	FieldAllFields       FieldTag = "all_fields"
)

// SearchTerm is one token (or phrase) of a ConceptBlock.
type SearchTerm struct {
	Text     string
	FieldTag FieldTag
	IsPhrase bool
}

// NewSearchTerm builds a SearchTerm, inferring IsPhrase from whitespace in
// text per the invariant: is_phrase iff text contains whitespace or is
// explicitly phrase-quoted.
func NewSearchTerm(text string, tag FieldTag) SearchTerm {
	isPhrase := strings.ContainsAny(text, " \t\n") || (strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`))
	return SearchTerm{Text: sanitize(text), FieldTag: tag, IsPhrase: isPhrase}
}

// sanitize strips quote characters and collapses internal whitespace, per
// the compiler's shared sanitization step.
func sanitize(text string) string {
	text = strings.NewReplacer(`"`, "", "'", "").Replace(text)
	fields := strings.Fields(text)
	return strings.Join(fields, " ")
}

// ConceptBlock is a set of synonymous/related terms combined with OR. An
// empty block is illegal in a final QueryPlan.
type ConceptBlock struct {
	Label string
	Terms []SearchTerm
}

// QueryPlan is blocks combined with AND; an optional Exclusion block models
// NOT.
type QueryPlan struct {
	Blocks    []ConceptBlock
	Exclusion *ConceptBlock
}

// TotalTerms returns T: the total number of terms across all blocks
// (excluding the exclusion block).
func (p QueryPlan) TotalTerms() int {
	n := 0
	for _, b := range p.Blocks {
		n += len(b.Terms)
	}
	return n
}

// NumBlocks returns B: the number of blocks (excluding the exclusion
// block).
func (p QueryPlan) NumBlocks() int {
	return len(p.Blocks)
}

// Document is the normalized search result shared across all providers.
type Document struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Year          int      `json:"year"`
	Venue         string   `json:"venue,omitempty"`
	DOI           string   `json:"doi,omitempty"`
	URL           string   `json:"url,omitempty"`
	Abstract      string   `json:"abstract,omitempty"`
	CitationCount *int     `json:"citation_count,omitempty"`
	Provider      string   `json:"provider"`
	ArxivID       string   `json:"arxiv_id,omitempty"`
	PubMedID      string   `json:"pubmed_id,omitempty"`
	Fingerprint   string   `json:"fingerprint"`
}
