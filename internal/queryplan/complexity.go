package queryplan

import "fmt"

// Level is the Complexity Analyzer's classification of a QueryPlan.
type Level string

const (
	LevelVeryBroad  Level = "very_broad"
	LevelBroad      Level = "broad"
	LevelBalanced   Level = "balanced"
	LevelNarrow     Level = "narrow"
	LevelVeryNarrow Level = "very_narrow"
)

// Analysis is the Complexity Analyzer's output.
type Analysis struct {
	Level           Level
	TotalTerms      int
	NumBlocks       int
	ExpectedResults string
	Guidance        string
	Warnings        []string
}

var expectedResultsByLevel = map[Level]string{
	LevelVeryBroad:  "> 10k",
	LevelBroad:      "1k–10k",
	LevelBalanced:   "100–1k",
	LevelNarrow:     "10–100",
	LevelVeryNarrow: "< 10",
}

var guidanceByLevel = map[Level]string{
	LevelVeryBroad:  "Very broad search. Expect a large, noisy result set; consider adding blocks or controlled-vocabulary terms to narrow scope.",
	LevelBroad:      "Broad search. Still likely to return many results; consider tightening key blocks.",
	LevelBalanced:   "Balanced search. A reasonable trade-off between recall and precision for most reviews.",
	LevelNarrow:     "Narrow search. Good precision; verify that relevant studies aren't being excluded.",
	LevelVeryNarrow: "Very narrow search. High risk of missing relevant studies; consider loosening some blocks.",
}

// Analyze classifies plan per the pipeline's complexity rubric. Levels are
// checked from broadest to most specific, except that very_narrow is
// checked ahead of narrow: their defining conditions overlap (any plan
// satisfying very_narrow's B≥7∧T>40 also satisfies narrow's B≥6), and the
// narrower, more specific label is the one this pipeline reports when both
// match.
func Analyze(plan QueryPlan) Analysis {
	t := plan.TotalTerms()
	b := plan.NumBlocks()
	avg := 0.0
	if b > 0 {
		avg = float64(t) / float64(b)
	}

	level := classify(t, b, avg)

	return Analysis{
		Level:           level,
		TotalTerms:      t,
		NumBlocks:       b,
		ExpectedResults: expectedResultsByLevel[level],
		Guidance:        guidanceByLevel[level],
		Warnings:        warnings(plan),
	}
}

func classify(t, b int, avg float64) Level {
	switch {
	case b <= 1 || t < 4:
		return LevelVeryBroad
	case (b == 2 && avg >= 3) || t < 8:
		return LevelBroad
	case b >= 3 && b <= 5 && t >= 8 && t <= 25:
		return LevelBalanced
	case b >= 7 && t > 40:
		return LevelVeryNarrow
	case (b >= 4 && t > 25) || b >= 6:
		return LevelNarrow
	default:
		return LevelBalanced
	}
}

func warnings(plan QueryPlan) []string {
	var warns []string

	if plan.Exclusion != nil && len(plan.Exclusion.Terms) > 2 {
		warns = append(warns, fmt.Sprintf("exclusion block %q has more than 2 terms; consider narrowing the NOT clause", plan.Exclusion.Label))
	}

	for _, b := range plan.Blocks {
		if len(b.Terms) == 0 {
			warns = append(warns, fmt.Sprintf("block %q has no included terms", b.Label))
		}
		for _, term := range b.Terms {
			if len(term.Text) > 100 {
				warns = append(warns, fmt.Sprintf("term %q in block %q exceeds 100 characters", term.Text, b.Label))
			}
		}
	}

	return warns
}
