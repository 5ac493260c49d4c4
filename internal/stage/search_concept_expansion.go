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

// SearchConceptExpansion drafts synonym/variant term blocks for each concept,
// ready to be compiled into per-database Boolean queries.
type SearchConceptExpansion struct{}

func (SearchConceptExpansion) Name() string { return "search-concept-expansion" }
func (SearchConceptExpansion) Requires() []artifact.Type {
	return []artifact.Type{artifact.TypeConceptModel, artifact.TypeResearchQuestionSet}
}

var searchConceptExpansionSchema = llm.Schema{
	"type": "object",
	"properties": map[string]any{
		"blocks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"label":          map[string]any{"type": "string"},
					"terms_included": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"terms_excluded": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []string{"label", "terms_included"},
			},
		},
	},
	"required": []string{"blocks"},
}

type searchConceptBlockDraft struct {
	Label         string   `json:"label"`
	TermsIncluded []string `json:"terms_included"`
	TermsExcluded []string `json:"terms_excluded"`
}

type searchConceptExpansionDraft struct {
	Blocks []searchConceptBlockDraft `json:"blocks"`
}

func (s SearchConceptExpansion) Run(ctx context.Context, deps *Deps, projectID string, inputs map[string]any) Result {
	var concepts artifact.ConceptModel
	if err := deps.Store.Load(projectID, artifact.TypeConceptModel, &concepts); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}

	prompt := fmt.Sprintf("For each of these concepts, list synonymous and related search terms suitable for a Boolean database query: %s", conceptLabels(concepts.Concepts))

	outcome := llm.Refine(ctx, deps.Drafter, prompt, searchConceptExpansionSchema, deps.CritiqueMaxIterations, func() (json.RawMessage, string) {
		draft := searchConceptExpansionDraft{}
		for _, c := range concepts.Concepts {
			draft.Blocks = append(draft.Blocks, searchConceptBlockDraft{
				Label:         c.Label,
				TermsIncluded: []string{c.Label},
			})
		}
		data, _ := json.Marshal(draft)
		return data, "one block per concept, containing only the concept's own label"
	})

	var draft searchConceptExpansionDraft
	if err := json.Unmarshal(outcome.Value, &draft); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{fmt.Sprintf("drafted value did not parse: %v", err)}}
	}
	if len(draft.Blocks) == 0 {
		return Result{StageName: s.Name(), ValidationErrors: []string{"drafted block set is empty"}}
	}

	now := time.Now()
	meta := &artifact.ModelMetadata{ModelName: "slrctl", Mode: outcome.Mode, GeneratedAt: now, Notes: outcome.Notes}

	blocks := make([]artifact.SearchConceptBlock, 0, len(draft.Blocks))
	for _, b := range draft.Blocks {
		if len(b.TermsIncluded) == 0 {
			continue
		}
		blocks = append(blocks, artifact.SearchConceptBlock{
			ID:            uuid.NewString(),
			Label:         b.Label,
			TermsIncluded: b.TermsIncluded,
			TermsExcluded: b.TermsExcluded,
		})
	}
	if len(blocks) == 0 {
		return Result{StageName: s.Name(), ValidationErrors: []string{"every drafted block had an empty term list"}}
	}

	searchBlocks := artifact.SearchConceptBlocks{
		Header: artifact.Header{
			ProjectID: projectID, Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now, ModelMetadata: meta,
		},
		Blocks: blocks,
	}

	return Result{
		StageName:     s.Name(),
		DraftArtifact: &searchBlocks,
		Metadata:      meta,
	}
}
