// Package dialect implements the Boolean Query Synthesis Engine's
// dialect-pluggable compiler: a shared compilation skeleton with per-dialect
// term formatting and block-joining overrides, registered into a map at
// init rather than expressed as a class hierarchy.
package dialect

import "github.com/mbsoft31/slr-pipeline/internal/queryplan"

// Warning is a compiler diagnostic attached to a Compile result.
type Warning struct {
	Message string
}

// Capabilities describes what a Dialect supports, so callers can decide
// whether a QueryPlan needs adaptation before formatting.
type Capabilities struct {
	SupportsFieldTags        bool
	SupportsControlledVocab  bool
	PhraseQuoteChar          string
	MaxQueryLength           *int
}

// Dialect formats an abstract QueryPlan into one scholarly database's
// Boolean-query syntax.
type Dialect interface {
	Name() string
	Format(plan queryplan.QueryPlan) string
	Compile(plan queryplan.QueryPlan) (string, []Warning)
	Capabilities() Capabilities
}

var registry = map[string]Dialect{}

func register(d Dialect) {
	registry[d.Name()] = d
}

// Get returns the named dialect, or nil if unrecognized.
func Get(name string) Dialect {
	return registry[name]
}

// Names lists every registered dialect name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func init() {
	register(newPubMed())
	register(newScopus())
	register(newOpenAlex())
	register(newArxiv())
	register(newCrossref())
	register(newSemanticScholar())
	register(newWebOfScience())
	register(newIEEE())
}
