// Package stage implements the pipeline's named stages and the Controller
// that gates each one on its upstream artifacts being approved: check
// guards, build a draft, attach prompts/warnings, generalized from a
// single tool-call shape into a stage registry driving a multi-step
// pipeline.
package stage

import (
	"context"
	"encoding/json"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
)

// Result is the outcome of running one stage.
type Result struct {
	StageName        string         `json:"stage_name"`
	DraftArtifact    any            `json:"draft_artifact"`
	ExtraArtifacts   map[string]any `json:"extra_artifacts,omitempty"`
	Metadata         *artifact.ModelMetadata `json:"metadata,omitempty"`
	Prompts          []string       `json:"prompts,omitempty"`
	ValidationErrors []string       `json:"validation_errors,omitempty"`
	Warnings         []string       `json:"warnings,omitempty"`
}

// Failed reports whether the stage produced no artifact at all.
func (r Result) Failed() bool {
	return r.DraftArtifact == nil && len(r.ValidationErrors) > 0
}

// Deps bundles the services stages are pure functions over.
type Deps struct {
	Store    *artifact.Store
	Drafter  LLMDrafter
	Executor QueryExecutor
	CritiqueMaxIterations int
}

// LLMDrafter is the narrow subset of llm.Drafter the stage layer depends
// on. Its schema parameter is map[string]any, of which llm.Schema is an
// alias, so the llm.Drafter that cmd/slrctl builds with llm.Build
// satisfies it.
type LLMDrafter interface {
	Draft(ctx context.Context, prompt string, schema map[string]any) (json.RawMessage, error)
	Critique(ctx context.Context, value json.RawMessage, schema map[string]any) (feedback string, ok bool, err error)
}

// QueryExecutor is the subset of search.Executor the query-execution stage
// depends on.
type QueryExecutor interface {
	Run(ctx context.Context, projectID string, plan artifact.DatabaseQueryPlan) (artifact.SearchResults, error)
}

// Stage is one named step of the pipeline.
type Stage interface {
	Name() string
	// Requires lists the artifact types that must be approved (or
	// approved_with_notes) before this stage may run.
	Requires() []artifact.Type
	Run(ctx context.Context, deps *Deps, projectID string, inputs map[string]any) Result
}
