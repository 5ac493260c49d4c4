package stage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
	"github.com/mbsoft31/slr-pipeline/internal/queryplan/dialect"
)

// DatabaseQueryPlan compiles the approved search concept blocks into a
// per-database Boolean query using the dialect registry, then runs each
// compiled plan through the complexity analyzer. It is purely mechanical:
// no LLM is involved.
type DatabaseQueryPlan struct{}

func (DatabaseQueryPlan) Name() string { return "database-query-plan" }
func (DatabaseQueryPlan) Requires() []artifact.Type {
	return []artifact.Type{artifact.TypeSearchConceptBlocks}
}

func (s DatabaseQueryPlan) Run(ctx context.Context, deps *Deps, projectID string, inputs map[string]any) Result {
	var blocks artifact.SearchConceptBlocks
	if err := deps.Store.Load(projectID, artifact.TypeSearchConceptBlocks, &blocks); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}

	databases := requestedDatabases(inputs)

	plan := toQueryPlan(blocks.Blocks)
	if plan.NumBlocks() == 0 {
		return Result{StageName: s.Name(), ValidationErrors: []string{"search concept blocks produced an empty query plan"}}
	}
	analysis := queryplan.Analyze(plan)

	queries := make([]artifact.DatabaseQuery, 0, len(databases))
	var warnings []string
	for _, name := range databases {
		d := dialect.Get(name)
		if d == nil {
			warnings = append(warnings, fmt.Sprintf("unknown database dialect %q skipped", name))
			continue
		}

		formatted, compileWarnings := d.Compile(plan)
		for _, w := range compileWarnings {
			warnings = append(warnings, fmt.Sprintf("%s: %s", name, w.Message))
		}

		queries = append(queries, artifact.DatabaseQuery{
			ID:                 uuid.NewString(),
			DatabaseName:       name,
			QueryBlocks:        blockLabels(blocks.Blocks),
			BooleanQueryString: formatted,
			ComplexityAnalysis: artifact.ComplexityAnalysis{
				Level:           string(analysis.Level),
				TotalTerms:      analysis.TotalTerms,
				NumBlocks:       analysis.NumBlocks,
				ExpectedResults: analysis.ExpectedResults,
				Guidance:        analysis.Guidance,
				Warnings:        analysis.Warnings,
			},
		})
	}

	if len(queries) == 0 {
		return Result{StageName: s.Name(), ValidationErrors: []string{"no recognized database dialects were selected"}}
	}

	now := time.Now()
	queryPlan := artifact.DatabaseQueryPlan{
		Header: artifact.Header{
			ProjectID: projectID, Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now,
			ModelMetadata: &artifact.ModelMetadata{ModelName: "slrctl", Mode: "deterministic", GeneratedAt: now},
		},
		Queries: queries,
	}

	return Result{
		StageName:     s.Name(),
		DraftArtifact: &queryPlan,
		Warnings:      warnings,
	}
}

// requestedDatabases returns the caller-selected database list from inputs,
// defaulting to every dialect the registry knows about, sorted for
// deterministic output ordering.
func requestedDatabases(inputs map[string]any) []string {
	if raw, ok := inputs["databases"].([]string); ok && len(raw) > 0 {
		return raw
	}
	if raw, ok := inputs["databases"].([]any); ok && len(raw) > 0 {
		names := make([]string, 0, len(raw))
		for _, v := range raw {
			if str, ok := v.(string); ok {
				names = append(names, str)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	names := dialect.Names()
	sort.Strings(names)
	return names
}

func toQueryPlan(blocks []artifact.SearchConceptBlock) queryplan.QueryPlan {
	plan := queryplan.QueryPlan{}
	for _, b := range blocks {
		terms := make([]queryplan.SearchTerm, 0, len(b.TermsIncluded))
		for _, t := range b.TermsIncluded {
			terms = append(terms, queryplan.NewSearchTerm(t, queryplan.FieldAllFields))
		}
		if len(terms) == 0 {
			continue
		}
		plan.Blocks = append(plan.Blocks, queryplan.ConceptBlock{Label: b.Label, Terms: terms})
	}
	return plan
}

func blockLabels(blocks []artifact.SearchConceptBlock) []string {
	labels := make([]string, 0, len(blocks))
	for _, b := range blocks {
		labels = append(labels, b.Label)
	}
	return labels
}
