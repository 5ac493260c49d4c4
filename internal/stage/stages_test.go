package stage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
)

func seedProjectContext(t *testing.T, store *artifact.Store, projectID string, keywords []string) {
	t.Helper()
	ctx := artifact.ProjectContext{
		Header:   artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved},
		ID:       projectID,
		Title:    "Remote Work Productivity",
		Keywords: keywords,
	}
	require.NoError(t, store.Save(projectID, artifact.TypeProjectContext, &ctx))
}

func TestProblemFraming_SeedsOneConceptPerKeyword(t *testing.T) {
	store := artifact.New(t.TempDir())
	deps := &Deps{Store: store, CritiqueMaxIterations: 2}
	projectID := "proj-pf"
	seedProjectContext(t, store, projectID, []string{"remote work", "productivity", "burnout"})

	result := ProblemFraming{}.Run(context.Background(), deps, projectID, nil)
	require.False(t, result.Failed())

	concepts, ok := result.ExtraArtifacts["ConceptModel"].(*artifact.ConceptModel)
	require.True(t, ok)
	require.Len(t, concepts.Concepts, 3)
	for _, c := range concepts.Concepts {
		assert.Equal(t, artifact.ConceptOther, c.Type)
	}
}

func TestResearchQuestions_OneDescriptiveQuestionPerConcept(t *testing.T) {
	store := artifact.New(t.TempDir())
	deps := &Deps{Store: store, CritiqueMaxIterations: 2}
	projectID := "proj-rq"

	framing := artifact.ProblemFraming{
		Header:           artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved},
		ProblemStatement: "Investigate remote work productivity.",
	}
	require.NoError(t, store.Save(projectID, artifact.TypeProblemFraming, &framing))

	concepts := artifact.ConceptModel{
		Header: artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved},
		Concepts: []artifact.Concept{
			{ID: "c1", Label: "remote work", Type: artifact.ConceptOther},
			{ID: "c2", Label: "productivity", Type: artifact.ConceptOther},
		},
	}
	require.NoError(t, store.Save(projectID, artifact.TypeConceptModel, &concepts))

	result := ResearchQuestions{}.Run(context.Background(), deps, projectID, nil)
	require.False(t, result.Failed())

	set, ok := result.DraftArtifact.(*artifact.ResearchQuestionSet)
	require.True(t, ok)
	require.Len(t, set.Questions, 2)
	for _, q := range set.Questions {
		assert.Equal(t, artifact.QuestionDescriptive, q.Type)
	}
}

func TestSearchConceptExpansion_OneBlockPerConceptWithOwnLabel(t *testing.T) {
	store := artifact.New(t.TempDir())
	deps := &Deps{Store: store, CritiqueMaxIterations: 2}
	projectID := "proj-sce"

	concepts := artifact.ConceptModel{
		Header: artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved},
		Concepts: []artifact.Concept{
			{ID: "c1", Label: "telemedicine", Type: artifact.ConceptOther},
		},
	}
	require.NoError(t, store.Save(projectID, artifact.TypeConceptModel, &concepts))

	questions := artifact.ResearchQuestionSet{Header: artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved}}
	require.NoError(t, store.Save(projectID, artifact.TypeResearchQuestionSet, &questions))

	result := SearchConceptExpansion{}.Run(context.Background(), deps, projectID, nil)
	require.False(t, result.Failed())

	blocks, ok := result.DraftArtifact.(*artifact.SearchConceptBlocks)
	require.True(t, ok)
	require.Len(t, blocks.Blocks, 1)
	assert.Equal(t, []string{"telemedicine"}, blocks.Blocks[0].TermsIncluded)
}

func TestScreeningCriteria_DerivesFromConceptsAndScope(t *testing.T) {
	store := artifact.New(t.TempDir())
	deps := &Deps{Store: store, CritiqueMaxIterations: 2}
	projectID := "proj-sc"

	framing := artifact.ProblemFraming{
		Header:    artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved},
		ScopeIn:   []string{"peer-reviewed empirical studies"},
		ScopeOut:  []string{"opinion pieces"},
	}
	require.NoError(t, store.Save(projectID, artifact.TypeProblemFraming, &framing))

	concepts := artifact.ConceptModel{
		Header: artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved},
		Concepts: []artifact.Concept{
			{ID: "c1", Label: "remote workers", Type: artifact.ConceptPopulation},
			{ID: "c2", Label: "flexible scheduling", Type: artifact.ConceptIntervention},
		},
	}
	require.NoError(t, store.Save(projectID, artifact.TypeConceptModel, &concepts))

	result := ScreeningCriteria{}.Run(context.Background(), deps, projectID, nil)
	require.False(t, result.Failed())

	criteria, ok := result.DraftArtifact.(*artifact.ScreeningCriteria)
	require.True(t, ok)
	assert.Contains(t, criteria.InclusionCriteria, "peer-reviewed empirical studies")
	assert.Contains(t, criteria.ExclusionCriteria, "opinion pieces")
	assert.Len(t, criteria.InclusionCriteria, 3) // population + intervention + scope_in
}

func TestStrategyExport_WritesBundleBeforeSearchExecuted(t *testing.T) {
	store := artifact.New(t.TempDir())
	deps := &Deps{Store: store, CritiqueMaxIterations: 2}
	projectID := "proj-se"
	seedProjectContext(t, store, projectID, nil)

	criteria := artifact.ScreeningCriteria{
		Header:            artifact.Header{ProjectID: projectID, Status: artifact.StatusApproved},
		InclusionCriteria: []string{"relevant studies"},
	}
	require.NoError(t, store.Save(projectID, artifact.TypeScreeningCriteria, &criteria))

	result := StrategyExport{}.Run(context.Background(), deps, projectID, nil)
	require.False(t, result.Failed())

	bundle, ok := result.DraftArtifact.(*artifact.StrategyExportBundle)
	require.True(t, ok)
	assert.Len(t, bundle.ExportedFiles, 4)
	assert.NotEmpty(t, bundle.Notes)
}
