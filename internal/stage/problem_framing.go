package stage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/llm"
)

// ProblemFraming drafts the problem statement and seed concept model from
// an approved ProjectContext.
type ProblemFraming struct{}

func (ProblemFraming) Name() string { return "problem-framing" }
func (ProblemFraming) Requires() []artifact.Type {
	return []artifact.Type{artifact.TypeProjectContext}
}

var problemFramingSchema = llm.Schema{
	"type": "object",
	"properties": map[string]any{
		"problem_statement": map[string]any{"type": "string"},
		"goals":             map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"scope_in":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"scope_out":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"research_gap":      map[string]any{"type": "string"},
	},
	"required": []string{"problem_statement", "goals"},
}

type problemFramingDraft struct {
	ProblemStatement string   `json:"problem_statement"`
	Goals            []string `json:"goals"`
	ScopeIn          []string `json:"scope_in"`
	ScopeOut         []string `json:"scope_out"`
	ResearchGap      string   `json:"research_gap"`
}

func (s ProblemFraming) Run(ctx context.Context, deps *Deps, projectID string, inputs map[string]any) Result {
	var ctxArtifact artifact.ProjectContext
	if err := deps.Store.Load(projectID, artifact.TypeProjectContext, &ctxArtifact); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}

	prompt := fmt.Sprintf("Frame the research problem for a systematic literature review titled %q (%s). Description: %s",
		ctxArtifact.Title, ctxArtifact.Discipline, ctxArtifact.Description)

	outcome := llm.Refine(ctx, deps.Drafter, prompt, problemFramingSchema, deps.CritiqueMaxIterations, func() (json.RawMessage, string) {
		draft := problemFramingDraft{
			ProblemStatement: fmt.Sprintf("Investigate: %s", ctxArtifact.Title),
			Goals:            []string{"characterize the current state of the art"},
		}
		data, _ := json.Marshal(draft)
		return data, "seeded from project title only"
	})

	var draft problemFramingDraft
	if err := json.Unmarshal(outcome.Value, &draft); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{fmt.Sprintf("drafted value did not parse: %v", err)}}
	}
	if draft.ProblemStatement == "" {
		return Result{StageName: s.Name(), ValidationErrors: []string{"drafted problem_statement is empty"}}
	}

	now := time.Now()
	meta := &artifact.ModelMetadata{ModelName: "slrctl", Mode: outcome.Mode, GeneratedAt: now, Notes: outcome.Notes}

	framing := artifact.ProblemFraming{
		Header: artifact.Header{
			ProjectID: projectID, Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now, ModelMetadata: meta,
		},
		ProblemStatement: draft.ProblemStatement,
		Goals:            draft.Goals,
		ScopeIn:          draft.ScopeIn,
		ScopeOut:         draft.ScopeOut,
		ResearchGap:      draft.ResearchGap,
	}

	concepts := seedConcepts(ctxArtifact.Keywords)
	conceptModel := artifact.ConceptModel{
		Header: artifact.Header{
			ProjectID: projectID, Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now, ModelMetadata: meta,
		},
		Concepts: concepts,
	}

	return Result{
		StageName:     s.Name(),
		DraftArtifact: &framing,
		ExtraArtifacts: map[string]any{
			string(artifact.TypeConceptModel): &conceptModel,
		},
		Metadata: meta,
	}
}

// seedConcepts builds one "other"-typed Concept per keyword, the
// deterministic fallback when no LLM-drafted concept model is available.
func seedConcepts(keywords []string) []artifact.Concept {
	if len(keywords) == 0 {
		return []artifact.Concept{{ID: uuid.NewString(), Label: "unspecified", Type: artifact.ConceptOther}}
	}
	concepts := make([]artifact.Concept, 0, len(keywords))
	for _, k := range keywords {
		concepts = append(concepts, artifact.Concept{ID: uuid.NewString(), Label: k, Type: artifact.ConceptOther})
	}
	return concepts
}
