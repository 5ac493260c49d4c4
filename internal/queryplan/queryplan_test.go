package queryplan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

func TestNewSearchTerm_InfersPhraseFromWhitespace(t *testing.T) {
	term := queryplan.NewSearchTerm("pair programming", queryplan.FieldKeyword)
	assert.True(t, term.IsPhrase)
	assert.Equal(t, "pair programming", term.Text)

	single := queryplan.NewSearchTerm("refactoring", queryplan.FieldKeyword)
	assert.False(t, single.IsPhrase)
}

func TestNewSearchTerm_SanitizesQuotesAndWhitespace(t *testing.T) {
	term := queryplan.NewSearchTerm(`  "pair   programming"  `, queryplan.FieldKeyword)
	assert.Equal(t, "pair programming", term.Text)
}

func TestQueryPlan_TotalTermsAndNumBlocksExcludeExclusion(t *testing.T) {
	plan := queryplan.QueryPlan{
		Blocks: []queryplan.ConceptBlock{
			{Label: "pair programming", Terms: []queryplan.SearchTerm{
				queryplan.NewSearchTerm("pair programming", queryplan.FieldKeyword),
				queryplan.NewSearchTerm("pairing", queryplan.FieldKeyword),
			}},
			{Label: "defects", Terms: []queryplan.SearchTerm{
				queryplan.NewSearchTerm("defect rate", queryplan.FieldKeyword),
			}},
		},
		Exclusion: &queryplan.ConceptBlock{Label: "exclude", Terms: []queryplan.SearchTerm{
			queryplan.NewSearchTerm("survey", queryplan.FieldKeyword),
		}},
	}

	assert.Equal(t, 3, plan.TotalTerms())
	assert.Equal(t, 2, plan.NumBlocks())
}

func TestFingerprint_IsCaseInsensitive(t *testing.T) {
	a := queryplan.Fingerprint("Pair Programming: An Empirical Study", []string{"Jane Doe"}, 2020)
	b := queryplan.Fingerprint("pair programming: an empirical study", []string{"Jane Doe"}, 2020)
	assert.Equal(t, a, b)
}

func TestFingerprint_DiffersOnYear(t *testing.T) {
	a := queryplan.Fingerprint("Pair Programming", []string{"Jane Doe"}, 2020)
	b := queryplan.Fingerprint("Pair Programming", []string{"Jane Doe"}, 2021)
	assert.NotEqual(t, a, b)
}

func TestNormalizeTitle_StripsPunctuationAndCollapsesWhitespace(t *testing.T) {
	got := queryplan.NormalizeTitle("Pair-Programming:  An Empirical  Study!")
	assert.Equal(t, "pairprogramming an empirical study", got)
}

func TestAnalyze_ClassifiesVeryBroadWithFewBlocksOrTerms(t *testing.T) {
	plan := queryplan.QueryPlan{Blocks: []queryplan.ConceptBlock{
		{Label: "only", Terms: []queryplan.SearchTerm{queryplan.NewSearchTerm("x", queryplan.FieldKeyword)}},
	}}
	analysis := queryplan.Analyze(plan)
	assert.Equal(t, queryplan.LevelVeryBroad, analysis.Level)
	assert.Equal(t, "> 10k", analysis.ExpectedResults)
}

func TestAnalyze_ClassifiesBalancedForModerateBlocksAndTerms(t *testing.T) {
	blocks := make([]queryplan.ConceptBlock, 4)
	for i := range blocks {
		terms := make([]queryplan.SearchTerm, 3)
		for j := range terms {
			terms[j] = queryplan.NewSearchTerm("term", queryplan.FieldKeyword)
		}
		blocks[i] = queryplan.ConceptBlock{Label: "block", Terms: terms}
	}
	analysis := queryplan.Analyze(queryplan.QueryPlan{Blocks: blocks})
	assert.Equal(t, queryplan.LevelBalanced, analysis.Level)
}

func TestAnalyze_VeryNarrowTakesPrecedenceOverNarrowWhenBothMatch(t *testing.T) {
	blocks := make([]queryplan.ConceptBlock, 7)
	for i := range blocks {
		terms := make([]queryplan.SearchTerm, 6)
		for j := range terms {
			terms[j] = queryplan.NewSearchTerm("term", queryplan.FieldKeyword)
		}
		blocks[i] = queryplan.ConceptBlock{Label: "block", Terms: terms}
	}
	plan := queryplan.QueryPlan{Blocks: blocks}
	assert.Greater(t, plan.TotalTerms(), 40)
	assert.GreaterOrEqual(t, plan.NumBlocks(), 7)

	analysis := queryplan.Analyze(plan)
	assert.Equal(t, queryplan.LevelVeryNarrow, analysis.Level)
}

func TestAnalyze_WarnsOnEmptyBlockAndOverlongTerm(t *testing.T) {
	longTerm := ""
	for i := 0; i < 101; i++ {
		longTerm += "x"
	}
	plan := queryplan.QueryPlan{Blocks: []queryplan.ConceptBlock{
		{Label: "empty", Terms: nil},
		{Label: "long", Terms: []queryplan.SearchTerm{queryplan.NewSearchTerm(longTerm, queryplan.FieldKeyword)}},
	}}
	analysis := queryplan.Analyze(plan)
	assert.Len(t, analysis.Warnings, 2)
}

func TestAnalyze_WarnsOnOverlongExclusionBlock(t *testing.T) {
	plan := queryplan.QueryPlan{
		Blocks: []queryplan.ConceptBlock{
			{Label: "main", Terms: []queryplan.SearchTerm{queryplan.NewSearchTerm("x", queryplan.FieldKeyword)}},
		},
		Exclusion: &queryplan.ConceptBlock{Label: "exclude", Terms: []queryplan.SearchTerm{
			queryplan.NewSearchTerm("a", queryplan.FieldKeyword),
			queryplan.NewSearchTerm("b", queryplan.FieldKeyword),
			queryplan.NewSearchTerm("c", queryplan.FieldKeyword),
		}},
	}
	analysis := queryplan.Analyze(plan)
	assert.Contains(t, analysis.Warnings[0], "exclusion block")
}
