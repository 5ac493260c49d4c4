package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
)

func TestMarkdown_RendersPlaceholdersForUnapprovedSections(t *testing.T) {
	out := string(Markdown("Pair Programming Review", ProtocolInput{}))

	assert.Contains(t, out, "# Systematic Review Protocol: Pair Programming Review")
	assert.Contains(t, out, "## Problem Statement\n\n_not yet approved_")
	assert.Contains(t, out, "## Search Results\n\n_search not yet executed_")
	assert.Contains(t, out, "## Screening Criteria\n\n_not yet approved_")
}

func TestMarkdown_RendersApprovedSections(t *testing.T) {
	in := ProtocolInput{
		ProblemFraming: &artifact.ProblemFraming{
			ProblemStatement: "Does pair programming reduce defect rates?",
			Goals:            []string{"quantify effect size"},
		},
		ConceptModel: &artifact.ConceptModel{
			Concepts: []artifact.Concept{{Label: "pair programming", Type: artifact.ConceptIntervention, Description: "two developers, one workstation"}},
		},
		ResearchQuestions: &artifact.ResearchQuestionSet{
			Questions: []artifact.ResearchQuestion{{Text: "What is the effect on defect rates?", Type: artifact.QuestionEvaluative, Priority: artifact.PriorityMust}},
		},
		ScreeningCriteria: &artifact.ScreeningCriteria{
			InclusionCriteria: []string{"peer-reviewed empirical studies"},
			ExclusionCriteria: []string{"gray literature"},
		},
	}

	out := string(Markdown("Pair Programming Review", in))

	assert.Contains(t, out, "Does pair programming reduce defect rates?")
	assert.Contains(t, out, "- quantify effect size")
	assert.Contains(t, out, "**pair programming** (intervention)")
	assert.Contains(t, out, "What is the effect on defect rates?")
	assert.Contains(t, out, "- peer-reviewed empirical studies")
	assert.Contains(t, out, "- gray literature")
}

func TestMarkdown_SectionOrderIsFixed(t *testing.T) {
	out := string(Markdown("Title", ProtocolInput{}))

	sections := []string{
		"## Problem Statement",
		"## Concept Model",
		"## Research Questions",
		"## Database Query Plan",
		"## Search Results",
		"## Screening Criteria",
	}

	last := -1
	for _, s := range sections {
		idx := indexOf(out, s)
		assert.GreaterOrEqual(t, idx, 0, "missing section %s", s)
		assert.Greater(t, idx, last, "section %s out of order", s)
		last = idx
	}
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
