package stage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
)

func TestDatabaseQueryPlan_CompilesOneQueryPerDatabase(t *testing.T) {
	store := artifact.New(t.TempDir())
	deps := &Deps{Store: store, CritiqueMaxIterations: 2}
	projectID := "proj-1"

	blocks := artifact.SearchConceptBlocks{
		Header: artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved},
		Blocks: []artifact.SearchConceptBlock{
			{ID: "b1", Label: "telemedicine", TermsIncluded: []string{"telemedicine", "telehealth"}},
			{ID: "b2", Label: "rural", TermsIncluded: []string{"rural", "remote area"}},
		},
	}
	require.NoError(t, store.Save(projectID, artifact.TypeSearchConceptBlocks, &blocks))

	result := DatabaseQueryPlan{}.Run(context.Background(), deps, projectID, map[string]any{"databases": []string{"openalex", "arxiv"}})
	require.False(t, result.Failed())

	plan, ok := result.DraftArtifact.(*artifact.DatabaseQueryPlan)
	require.True(t, ok)
	require.Len(t, plan.Queries, 2)

	names := []string{plan.Queries[0].DatabaseName, plan.Queries[1].DatabaseName}
	assert.ElementsMatch(t, []string{"openalex", "arxiv"}, names)
	for _, q := range plan.Queries {
		assert.NotEmpty(t, q.BooleanQueryString)
		assert.NotEmpty(t, q.ComplexityAnalysis.Level)
	}
}

func TestDatabaseQueryPlan_UnknownDialectSkippedWithWarning(t *testing.T) {
	store := artifact.New(t.TempDir())
	deps := &Deps{Store: store, CritiqueMaxIterations: 2}
	projectID := "proj-2"

	blocks := artifact.SearchConceptBlocks{
		Header: artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved},
		Blocks: []artifact.SearchConceptBlock{
			{ID: "b1", Label: "ai", TermsIncluded: []string{"artificial intelligence"}},
		},
	}
	require.NoError(t, store.Save(projectID, artifact.TypeSearchConceptBlocks, &blocks))

	result := DatabaseQueryPlan{}.Run(context.Background(), deps, projectID, map[string]any{"databases": []string{"openalex", "not-a-real-database"}})
	require.False(t, result.Failed())
	assert.NotEmpty(t, result.Warnings)

	plan := result.DraftArtifact.(*artifact.DatabaseQueryPlan)
	assert.Len(t, plan.Queries, 1)
}

func TestDatabaseQueryPlan_EmptyBlocksFails(t *testing.T) {
	store := artifact.New(t.TempDir())
	deps := &Deps{Store: store, CritiqueMaxIterations: 2}
	projectID := "proj-3"

	blocks := artifact.SearchConceptBlocks{Header: artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved}}
	require.NoError(t, store.Save(projectID, artifact.TypeSearchConceptBlocks, &blocks))

	result := DatabaseQueryPlan{}.Run(context.Background(), deps, projectID, nil)
	assert.True(t, result.Failed())
}
