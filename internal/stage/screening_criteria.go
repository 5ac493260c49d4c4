package stage

import (
	"context"
	"fmt"
	"time"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
)

// ScreeningCriteria derives inclusion/exclusion criteria deterministically
// from the approved problem framing and concept model. No LLM is involved:
// every concept maps to an inclusion criterion (PICO-typed ones with
// type-specific wording) and the framing's scope_in entries are added to
// them; the framing's scope_out entries plus two fixed exclusions form the
// exclusion criteria.
type ScreeningCriteria struct{}

func (ScreeningCriteria) Name() string { return "screening-criteria" }
func (ScreeningCriteria) Requires() []artifact.Type {
	return []artifact.Type{artifact.TypeProblemFraming, artifact.TypeConceptModel}
}

func (s ScreeningCriteria) Run(ctx context.Context, deps *Deps, projectID string, inputs map[string]any) Result {
	var framing artifact.ProblemFraming
	if err := deps.Store.Load(projectID, artifact.TypeProblemFraming, &framing); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}
	var concepts artifact.ConceptModel
	if err := deps.Store.Load(projectID, artifact.TypeConceptModel, &concepts); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}

	var inclusion []string
	for _, c := range concepts.Concepts {
		switch c.Type {
		case artifact.ConceptPopulation:
			inclusion = append(inclusion, fmt.Sprintf("studies involving the population: %s", c.Label))
		case artifact.ConceptIntervention:
			inclusion = append(inclusion, fmt.Sprintf("studies applying the intervention: %s", c.Label))
		case artifact.ConceptComparison:
			inclusion = append(inclusion, fmt.Sprintf("studies reporting a comparison against: %s", c.Label))
		case artifact.ConceptOutcome:
			inclusion = append(inclusion, fmt.Sprintf("studies reporting the outcome: %s", c.Label))
		default:
			inclusion = append(inclusion, fmt.Sprintf("studies addressing: %s", c.Label))
		}
	}
	for _, in := range framing.ScopeIn {
		inclusion = append(inclusion, in)
	}
	if len(inclusion) == 0 {
		inclusion = append(inclusion, "studies directly addressing the problem statement")
	}

	var exclusion []string
	for _, out := range framing.ScopeOut {
		exclusion = append(exclusion, out)
	}
	exclusion = append(exclusion, "non-peer-reviewed gray literature", "studies not published in English")

	now := time.Now()
	criteria := artifact.ScreeningCriteria{
		Header: artifact.Header{
			ProjectID: projectID, Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now,
			ModelMetadata: &artifact.ModelMetadata{ModelName: "slrctl", Mode: "deterministic", GeneratedAt: now},
		},
		InclusionCriteria: inclusion,
		ExclusionCriteria: exclusion,
	}

	return Result{
		StageName:     s.Name(),
		DraftArtifact: &criteria,
		Metadata:      criteria.ModelMetadata,
	}
}
