package stage

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/pipelineerr"
)

// Controller is the single entry point the CLI (and any future transport)
// binds to: it owns the artifact store and the services stages need, and
// enforces the HITL precondition gate before running any stage.
type Controller struct {
	deps *Deps
}

// NewController builds a Controller over deps. deps.Store must be non-nil;
// deps.Drafter and deps.Executor may be nil for stages that don't need them
// (project-setup et al. fall back to their deterministic path when Drafter
// is nil).
func NewController(deps *Deps) *Controller {
	return &Controller{deps: deps}
}

// StartProject runs project-setup for a freshly minted project id.
func (c *Controller) StartProject(ctx context.Context, rawIdea string) (string, Result, error) {
	projectID := uuid.NewString()

	result := Get("project-setup").Run(ctx, c.deps, projectID, map[string]any{"raw_idea": rawIdea})
	if result.Failed() {
		return projectID, result, nil
	}

	if err := c.persist(projectID, artifact.TypeProjectContext, result); err != nil {
		return projectID, result, err
	}

	return projectID, result, nil
}

// RunStage runs the named stage for projectID after checking that every
// upstream artifact it requires is approved. Returns PreconditionFailed
// without any side effect when a requirement is unmet.
func (c *Controller) RunStage(ctx context.Context, name, projectID string, inputs map[string]any) (Result, error) {
	s := Get(name)
	if s == nil {
		return Result{}, pipelineerr.Validation("unknown stage: " + name)
	}

	statuses, err := c.deps.Store.List(projectID)
	if err != nil {
		return Result{}, err
	}

	var missing []string
	for _, req := range s.Requires() {
		st, ok := statuses[req]
		if !ok || !st.Approved() {
			missing = append(missing, string(req))
		}
	}
	if len(missing) > 0 {
		return Result{}, pipelineerr.Precondition("stage "+name+" requires approved upstream artifacts", missing)
	}

	result := s.Run(ctx, c.deps, projectID, inputs)
	if result.Failed() {
		return result, nil
	}

	if t, ok := artifactTypeForStage(name); ok {
		if err := c.persist(projectID, t, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// ApproveArtifact transitions an artifact's status (and records an
// optional user note), then returns the stages that become available as a
// result. It does not apply field-level edits to the artifact body; a
// caller that edits an artifact saves it with Store.Save before invoking
// this. This only transitions status.
func (c *Controller) ApproveArtifact(projectID string, t artifact.Type, status artifact.Status, userNotes string) ([]string, error) {
	if err := c.deps.Store.UpdateStatus(projectID, t, status, userNotes); err != nil {
		return nil, err
	}

	return c.ListAvailableStages(projectID)
}

// Store exposes the underlying artifact store for read-only operations
// (status listing) that don't belong on Controller itself.
func (c *Controller) Store() *artifact.Store {
	return c.deps.Store
}

// ListAvailableStages returns every stage whose Requires() are all
// currently approved/approved_with_notes.
func (c *Controller) ListAvailableStages(projectID string) ([]string, error) {
	statuses, err := c.deps.Store.List(projectID)
	if err != nil {
		return nil, err
	}

	var available []string
	for _, name := range Names() {
		s := Get(name)
		ready := true
		for _, req := range s.Requires() {
			st, ok := statuses[req]
			if !ok || !st.Approved() {
				ready = false
				break
			}
		}
		if ready {
			available = append(available, name)
		}
	}
	return available, nil
}

// persist saves the stage's draft artifact and any extra artifacts
// (keyed by artifact.Type string value) to the store as drafts.
func (c *Controller) persist(projectID string, t artifact.Type, result Result) error {
	if err := c.deps.Store.Save(projectID, t, result.DraftArtifact); err != nil {
		return err
	}
	for key, value := range result.ExtraArtifacts {
		if err := c.deps.Store.Save(projectID, artifact.Type(key), value); err != nil {
			return err
		}
	}
	return nil
}

func artifactTypeForStage(name string) (artifact.Type, bool) {
	switch name {
	case "problem-framing":
		return artifact.TypeProblemFraming, true
	case "research-questions":
		return artifact.TypeResearchQuestionSet, true
	case "search-concept-expansion":
		return artifact.TypeSearchConceptBlocks, true
	case "database-query-plan":
		return artifact.TypeDatabaseQueryPlan, true
	case "query-execution":
		return artifact.TypeSearchResults, true
	case "screening-criteria":
		return artifact.TypeScreeningCriteria, true
	case "strategy-export":
		return artifact.TypeStrategyExportBundle, true
	default:
		return "", false
	}
}
