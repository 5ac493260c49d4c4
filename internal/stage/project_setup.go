package stage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/llm"
)

// ProjectSetup drafts a ProjectContext from a raw research idea.
type ProjectSetup struct{}

func (ProjectSetup) Name() string              { return "project-setup" }
func (ProjectSetup) Requires() []artifact.Type { return nil }

var projectSetupSchema = llm.Schema{
	"type": "object",
	"properties": map[string]any{
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"discipline":  map[string]any{"type": "string"},
		"keywords":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"required": []string{"title"},
}

type projectSetupDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Discipline  string   `json:"discipline"`
	Keywords    []string `json:"keywords"`
}

func (s ProjectSetup) Run(ctx context.Context, deps *Deps, projectID string, inputs map[string]any) Result {
	rawIdea, _ := inputs["raw_idea"].(string)
	if strings.TrimSpace(rawIdea) == "" {
		return Result{StageName: s.Name(), ValidationErrors: []string{"raw_idea is required"}}
	}

	prompt := fmt.Sprintf("Given this research idea, propose a project title, one-paragraph description, academic discipline, and a short list of keywords:\n\n%s", rawIdea)

	outcome := llm.Refine(ctx, deps.Drafter, prompt, projectSetupSchema, deps.CritiqueMaxIterations, func() (json.RawMessage, string) {
		title := firstSentence(rawIdea)
		draft := projectSetupDraft{Title: title}
		data, _ := json.Marshal(draft)
		return data, "extracted title from first sentence; discipline/keywords left for the user to fill in"
	})

	var draft projectSetupDraft
	prompts := []string{}
	var validationErrors []string
	if err := json.Unmarshal(outcome.Value, &draft); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("drafted value did not parse: %v", err))
		return Result{StageName: s.Name(), ValidationErrors: validationErrors}
	}
	if draft.Title == "" {
		validationErrors = append(validationErrors, "drafted title is empty")
		return Result{StageName: s.Name(), ValidationErrors: validationErrors}
	}
	if outcome.Mode == "deterministic" {
		prompts = append(prompts, "fill in discipline and keywords before approving")
	}

	now := time.Now()
	ctxArtifact := artifact.ProjectContext{
		Header: artifact.Header{
			ProjectID: projectID,
			Status:    artifact.StatusDraft,
			CreatedAt: now,
			UpdatedAt: now,
			ModelMetadata: &artifact.ModelMetadata{
				ModelName:   "slrctl",
				Mode:        outcome.Mode,
				GeneratedAt: now,
				Notes:       outcome.Notes,
			},
		},
		ID:          projectID,
		Title:       draft.Title,
		Description: draft.Description,
		Discipline:  draft.Discipline,
		Keywords:    draft.Keywords,
	}

	return Result{
		StageName:     s.Name(),
		DraftArtifact: &ctxArtifact,
		Metadata:      ctxArtifact.ModelMetadata,
		Prompts:       prompts,
	}
}

// firstSentence returns the text up to the first '.', '!', or '?', trimmed,
// falling back to the whole string when no terminator is found.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	idx := strings.IndexAny(text, ".!?")
	if idx == -1 {
		return text
	}
	return strings.TrimSpace(text[:idx])
}
