package export

import (
	"fmt"
	"strings"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
)

// ProtocolInput bundles the artifacts the Markdown protocol draws from. Any
// field left nil is a section that hasn't been approved yet and is
// rendered with a placeholder line rather than omitted, so the protocol
// always shows the full PRISMA-aligned shape.
type ProtocolInput struct {
	ProblemFraming      *artifact.ProblemFraming
	ConceptModel        *artifact.ConceptModel
	ResearchQuestions   *artifact.ResearchQuestionSet
	QueryPlan           *artifact.DatabaseQueryPlan
	SearchResults       *artifact.SearchResults
	ScreeningCriteria   *artifact.ScreeningCriteria
}

// Markdown renders a PRISMA-aligned protocol document. Section order is
// fixed: Problem Statement, Concept Model, Research Questions, Database
// Query Plan, Search Results, Screening Criteria.
func Markdown(projectTitle string, in ProtocolInput) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Systematic Review Protocol: %s\n\n", projectTitle)

	b.WriteString("## Problem Statement\n\n")
	if in.ProblemFraming != nil {
		fmt.Fprintf(&b, "%s\n\n", in.ProblemFraming.ProblemStatement)
		if len(in.ProblemFraming.Goals) > 0 {
			b.WriteString("**Goals:**\n\n")
			for _, g := range in.ProblemFraming.Goals {
				fmt.Fprintf(&b, "- %s\n", g)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("_not yet approved_\n\n")
	}

	b.WriteString("## Concept Model\n\n")
	if in.ConceptModel != nil {
		for _, c := range in.ConceptModel.Concepts {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", c.Label, c.Type, c.Description)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("_not yet approved_\n\n")
	}

	b.WriteString("## Research Questions\n\n")
	if in.ResearchQuestions != nil {
		for i, q := range in.ResearchQuestions.Questions {
			fmt.Fprintf(&b, "%d. %s (%s, %s)\n", i+1, q.Text, q.Type, q.Priority)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("_not yet approved_\n\n")
	}

	b.WriteString("## Database Query Plan\n\n")
	if in.QueryPlan != nil {
		for _, q := range in.QueryPlan.Queries {
			fmt.Fprintf(&b, "### %s\n\n```\n%s\n```\n\n", q.DatabaseName, q.BooleanQueryString)
			fmt.Fprintf(&b, "Complexity: %s (%d terms, %d blocks)\n\n", q.ComplexityAnalysis.Level, q.ComplexityAnalysis.TotalTerms, q.ComplexityAnalysis.NumBlocks)
		}
	} else {
		b.WriteString("_not yet approved_\n\n")
	}

	b.WriteString("## Search Results\n\n")
	if in.SearchResults != nil {
		fmt.Fprintf(&b, "Total results: %d\n\n", in.SearchResults.TotalResults)
		fmt.Fprintf(&b, "Deduplicated: %d (%.1f%% duplicates removed)\n\n", in.SearchResults.DeduplicatedCount, in.SearchResults.DeduplicationStats.Rate*100)
		fmt.Fprintf(&b, "Databases searched: %s\n\n", strings.Join(in.SearchResults.DatabasesSearched, ", "))
	} else {
		b.WriteString("_search not yet executed_\n\n")
	}

	b.WriteString("## Screening Criteria\n\n")
	if in.ScreeningCriteria != nil {
		b.WriteString("**Inclusion:**\n\n")
		for _, c := range in.ScreeningCriteria.InclusionCriteria {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n**Exclusion:**\n\n")
		for _, c := range in.ScreeningCriteria.ExclusionCriteria {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("_not yet approved_\n\n")
	}

	return []byte(b.String())
}
