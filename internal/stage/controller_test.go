package stage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/pipelineerr"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	store := artifact.New(t.TempDir())
	return NewController(&Deps{Store: store, CritiqueMaxIterations: 2})
}

func TestStartProject_DeterministicFallback(t *testing.T) {
	c := newTestController(t)

	projectID, result, err := c.StartProject(context.Background(), "Do cats help reduce workplace stress? An exploratory review.")
	require.NoError(t, err)
	require.False(t, result.Failed())
	assert.NotEmpty(t, projectID)

	var ctxArtifact artifact.ProjectContext
	require.NoError(t, c.deps.Store.Load(projectID, artifact.TypeProjectContext, &ctxArtifact))
	assert.Equal(t, "Do cats help reduce workplace stress", ctxArtifact.Title)
	assert.Equal(t, artifact.StatusDraft, ctxArtifact.Status)
}

func TestStartProject_EmptyIdeaFails(t *testing.T) {
	c := newTestController(t)

	_, result, err := c.StartProject(context.Background(), "   ")
	require.NoError(t, err)
	assert.True(t, result.Failed())
}

func TestRunStage_PreconditionFailedWhenUpstreamNotApproved(t *testing.T) {
	c := newTestController(t)

	projectID, _, err := c.StartProject(context.Background(), "Effects of pair programming on code quality.")
	require.NoError(t, err)

	_, err = c.RunStage(context.Background(), "problem-framing", projectID, nil)
	require.Error(t, err)
	assert.True(t, pipelineerr.OfKind(err, pipelineerr.KindPreconditionFailed))

	assert.False(t, c.deps.Store.Exists(projectID, artifact.TypeProblemFraming))
}

func TestRunStage_SucceedsOnceUpstreamApproved(t *testing.T) {
	c := newTestController(t)

	projectID, _, err := c.StartProject(context.Background(), "Effects of pair programming on code quality.")
	require.NoError(t, err)

	_, err = c.ApproveArtifact(projectID, artifact.TypeProjectContext, artifact.StatusApproved, "")
	require.NoError(t, err)

	result, err := c.RunStage(context.Background(), "problem-framing", projectID, nil)
	require.NoError(t, err)
	require.False(t, result.Failed())

	assert.True(t, c.deps.Store.Exists(projectID, artifact.TypeProblemFraming))
	assert.True(t, c.deps.Store.Exists(projectID, artifact.TypeConceptModel))
}

func TestRunStage_UnknownStageIsValidationError(t *testing.T) {
	c := newTestController(t)

	_, err := c.RunStage(context.Background(), "not-a-real-stage", "whatever", nil)
	require.Error(t, err)
	assert.True(t, pipelineerr.OfKind(err, pipelineerr.KindValidation))
}

func TestApproveArtifact_ApprovedWithNotesUnblocksDownstream(t *testing.T) {
	c := newTestController(t)

	projectID, _, err := c.StartProject(context.Background(), "Effects of pair programming on code quality.")
	require.NoError(t, err)

	available, err := c.ApproveArtifact(projectID, artifact.TypeProjectContext, artifact.StatusApprovedWithNotes, "looks fine, proceed")
	require.NoError(t, err)
	assert.Contains(t, available, "problem-framing")
}

func TestListAvailableStages_OnlyProjectSetupInitially(t *testing.T) {
	c := newTestController(t)

	projectID, _, err := c.StartProject(context.Background(), "Effects of pair programming on code quality.")
	require.NoError(t, err)

	available, err := c.ListAvailableStages(projectID)
	require.NoError(t, err)
	assert.NotContains(t, available, "problem-framing")
	assert.NotContains(t, available, "research-questions")
}
