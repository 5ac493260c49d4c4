package artifact_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/pipelineerr"
)

func TestSaveAndLoad_RoundTrips(t *testing.T) {
	store := artifact.New(t.TempDir())

	now := time.Now()
	ctx := artifact.ProjectContext{
		Header: artifact.Header{ProjectID: "proj-1", Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now},
		ID:     "proj-1",
		Title:  "Effects of pair programming on defect rates",
	}

	require.NoError(t, store.Save("proj-1", artifact.TypeProjectContext, &ctx))

	var loaded artifact.ProjectContext
	require.NoError(t, store.Load("proj-1", artifact.TypeProjectContext, &loaded))
	assert.Equal(t, ctx.Title, loaded.Title)
	assert.Equal(t, artifact.StatusDraft, loaded.Status)
}

func TestLoad_MissingArtifactIsNotFound(t *testing.T) {
	store := artifact.New(t.TempDir())

	var out artifact.ProjectContext
	err := store.Load("nope", artifact.TypeProjectContext, &out)
	require.Error(t, err)
	assert.True(t, pipelineerr.OfKind(err, pipelineerr.KindNotFound))
}

func TestUpdateStatus_PatchesStatusWithoutKnowingConcreteType(t *testing.T) {
	store := artifact.New(t.TempDir())

	now := time.Now()
	framing := artifact.ProblemFraming{
		Header:           artifact.Header{ProjectID: "proj-1", Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now},
		ProblemStatement: "Does X affect Y?",
	}
	require.NoError(t, store.Save("proj-1", artifact.TypeProblemFraming, &framing))

	require.NoError(t, store.UpdateStatus("proj-1", artifact.TypeProblemFraming, artifact.StatusApprovedWithNotes, "looks good, minor wording"))

	var loaded artifact.ProblemFraming
	require.NoError(t, store.Load("proj-1", artifact.TypeProblemFraming, &loaded))
	assert.Equal(t, artifact.StatusApprovedWithNotes, loaded.Status)
	assert.True(t, loaded.Status.Approved())
	require.NotNil(t, loaded.ModelMetadata)
	assert.Equal(t, "looks good, minor wording", loaded.ModelMetadata.Notes)
	assert.Equal(t, "Does X affect Y?", loaded.ProblemStatement, "UpdateStatus must not disturb unrelated fields")
}

func TestUpdateStatus_MissingArtifactIsNotFound(t *testing.T) {
	store := artifact.New(t.TempDir())
	err := store.UpdateStatus("proj-1", artifact.TypeProblemFraming, artifact.StatusApproved, "")
	require.Error(t, err)
	assert.True(t, pipelineerr.OfKind(err, pipelineerr.KindNotFound))
}

func TestList_ReturnsStatusPerPersistedType(t *testing.T) {
	store := artifact.New(t.TempDir())
	now := time.Now()

	ctx := artifact.ProjectContext{Header: artifact.Header{ProjectID: "proj-1", Status: artifact.StatusApproved, CreatedAt: now, UpdatedAt: now}}
	framing := artifact.ProblemFraming{Header: artifact.Header{ProjectID: "proj-1", Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now}}

	require.NoError(t, store.Save("proj-1", artifact.TypeProjectContext, &ctx))
	require.NoError(t, store.Save("proj-1", artifact.TypeProblemFraming, &framing))

	statuses, err := store.List("proj-1")
	require.NoError(t, err)
	assert.Equal(t, artifact.StatusApproved, statuses[artifact.TypeProjectContext])
	assert.Equal(t, artifact.StatusDraft, statuses[artifact.TypeProblemFraming])
}

func TestList_UnknownProjectReturnsEmptyNotError(t *testing.T) {
	store := artifact.New(t.TempDir())
	statuses, err := store.List("never-created")
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestExists(t *testing.T) {
	store := artifact.New(t.TempDir())
	assert.False(t, store.Exists("proj-1", artifact.TypeProjectContext))

	now := time.Now()
	ctx := artifact.ProjectContext{Header: artifact.Header{ProjectID: "proj-1", Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now}}
	require.NoError(t, store.Save("proj-1", artifact.TypeProjectContext, &ctx))
	assert.True(t, store.Exists("proj-1", artifact.TypeProjectContext))
}

func TestDelete_RemovesProjectTree(t *testing.T) {
	store := artifact.New(t.TempDir())
	now := time.Now()
	ctx := artifact.ProjectContext{Header: artifact.Header{ProjectID: "proj-1", Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now}}
	require.NoError(t, store.Save("proj-1", artifact.TypeProjectContext, &ctx))

	require.NoError(t, store.Delete("proj-1"))
	assert.False(t, store.Exists("proj-1", artifact.TypeProjectContext))
}
