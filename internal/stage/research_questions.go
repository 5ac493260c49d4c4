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

// ResearchQuestions drafts the project's research question set from the
// approved problem framing and concept model.
type ResearchQuestions struct{}

func (ResearchQuestions) Name() string { return "research-questions" }
func (ResearchQuestions) Requires() []artifact.Type {
	return []artifact.Type{artifact.TypeProblemFraming, artifact.TypeConceptModel}
}

var researchQuestionsSchema = llm.Schema{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":     map[string]any{"type": "string"},
					"type":     map[string]any{"type": "string"},
					"priority": map[string]any{"type": "string"},
				},
				"required": []string{"text", "type"},
			},
		},
	},
	"required": []string{"questions"},
}

type researchQuestionDraft struct {
	Text     string `json:"text"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

type researchQuestionsDraft struct {
	Questions []researchQuestionDraft `json:"questions"`
}

func (s ResearchQuestions) Run(ctx context.Context, deps *Deps, projectID string, inputs map[string]any) Result {
	var framing artifact.ProblemFraming
	if err := deps.Store.Load(projectID, artifact.TypeProblemFraming, &framing); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}
	var concepts artifact.ConceptModel
	if err := deps.Store.Load(projectID, artifact.TypeConceptModel, &concepts); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}

	prompt := fmt.Sprintf("Derive research questions for this problem statement: %q, covering these concepts: %s",
		framing.ProblemStatement, conceptLabels(concepts.Concepts))

	outcome := llm.Refine(ctx, deps.Drafter, prompt, researchQuestionsSchema, deps.CritiqueMaxIterations, func() (json.RawMessage, string) {
		draft := researchQuestionsDraft{}
		for _, c := range concepts.Concepts {
			draft.Questions = append(draft.Questions, researchQuestionDraft{
				Text:     fmt.Sprintf("What does the literature report about %s?", c.Label),
				Type:     string(artifact.QuestionDescriptive),
				Priority: string(artifact.PriorityMust),
			})
		}
		data, _ := json.Marshal(draft)
		return data, "one descriptive question seeded per concept"
	})

	var draft researchQuestionsDraft
	if err := json.Unmarshal(outcome.Value, &draft); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{fmt.Sprintf("drafted value did not parse: %v", err)}}
	}
	if len(draft.Questions) == 0 {
		return Result{StageName: s.Name(), ValidationErrors: []string{"drafted question set is empty"}}
	}

	now := time.Now()
	meta := &artifact.ModelMetadata{ModelName: "slrctl", Mode: outcome.Mode, GeneratedAt: now, Notes: outcome.Notes}

	questions := make([]artifact.ResearchQuestion, 0, len(draft.Questions))
	for _, q := range draft.Questions {
		qType := artifact.QuestionType(q.Type)
		if qType == "" {
			qType = artifact.QuestionDescriptive
		}
		priority := artifact.QuestionPriority(q.Priority)
		if priority == "" {
			priority = artifact.PriorityNice
		}
		questions = append(questions, artifact.ResearchQuestion{
			ID:       uuid.NewString(),
			Text:     q.Text,
			Type:     qType,
			Priority: priority,
		})
	}

	set := artifact.ResearchQuestionSet{
		Header: artifact.Header{
			ProjectID: projectID, Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now, ModelMetadata: meta,
		},
		Questions: questions,
	}

	return Result{
		StageName:     s.Name(),
		DraftArtifact: &set,
		Metadata:      meta,
	}
}

func conceptLabels(concepts []artifact.Concept) string {
	labels := make([]string, 0, len(concepts))
	for _, c := range concepts {
		labels = append(labels, c.Label)
	}
	if len(labels) == 0 {
		return "(none)"
	}
	out := labels[0]
	for _, l := range labels[1:] {
		out += ", " + l
	}
	return out
}
