package stage

import (
	"context"
	"time"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
)

// QueryExecution runs the approved database query plan against every
// executable provider via the search executor. No LLM is involved.
type QueryExecution struct{}

func (QueryExecution) Name() string { return "query-execution" }
func (QueryExecution) Requires() []artifact.Type {
	return []artifact.Type{artifact.TypeDatabaseQueryPlan}
}

func (s QueryExecution) Run(ctx context.Context, deps *Deps, projectID string, inputs map[string]any) Result {
	var plan artifact.DatabaseQueryPlan
	if err := deps.Store.Load(projectID, artifact.TypeDatabaseQueryPlan, &plan); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}

	if deps.Executor == nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{"no search executor configured"}}
	}

	results, err := deps.Executor.Run(ctx, projectID, plan)
	if err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}

	now := time.Now()
	if results.ModelMetadata == nil {
		results.ModelMetadata = &artifact.ModelMetadata{ModelName: "slrctl", Mode: "deterministic", GeneratedAt: now}
	}

	return Result{
		StageName:     s.Name(),
		DraftArtifact: &results,
		Metadata:      results.ModelMetadata,
	}
}
