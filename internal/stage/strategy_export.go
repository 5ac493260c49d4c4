package stage

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/export"
	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

// StrategyExport assembles every approved artifact (plus the search results
// and deduplicated document set, when a search has been run) into the final export bundle:
// CSV, BibTeX, RIS, and a PRISMA-aligned Markdown protocol. No LLM is
// involved.
type StrategyExport struct{}

func (StrategyExport) Name() string { return "strategy-export" }
func (StrategyExport) Requires() []artifact.Type {
	return []artifact.Type{artifact.TypeScreeningCriteria}
}

func (s StrategyExport) Run(ctx context.Context, deps *Deps, projectID string, inputs map[string]any) Result {
	var projectCtx artifact.ProjectContext
	if err := deps.Store.Load(projectID, artifact.TypeProjectContext, &projectCtx); err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}

	protocol := export.ProtocolInput{}

	var framing artifact.ProblemFraming
	if err := deps.Store.Load(projectID, artifact.TypeProblemFraming, &framing); err == nil && framing.Status.Approved() {
		protocol.ProblemFraming = &framing
	}
	var concepts artifact.ConceptModel
	if err := deps.Store.Load(projectID, artifact.TypeConceptModel, &concepts); err == nil && concepts.Status.Approved() {
		protocol.ConceptModel = &concepts
	}
	var questions artifact.ResearchQuestionSet
	if err := deps.Store.Load(projectID, artifact.TypeResearchQuestionSet, &questions); err == nil && questions.Status.Approved() {
		protocol.ResearchQuestions = &questions
	}
	var plan artifact.DatabaseQueryPlan
	if err := deps.Store.Load(projectID, artifact.TypeDatabaseQueryPlan, &plan); err == nil && plan.Status.Approved() {
		protocol.QueryPlan = &plan
	}
	var results artifact.SearchResults
	hasResults := false
	if err := deps.Store.Load(projectID, artifact.TypeSearchResults, &results); err == nil {
		protocol.SearchResults = &results
		hasResults = true
	}
	var criteria artifact.ScreeningCriteria
	if err := deps.Store.Load(projectID, artifact.TypeScreeningCriteria, &criteria); err == nil && criteria.Status.Approved() {
		protocol.ScreeningCriteria = &criteria
	}

	var docs []queryplan.Document
	if hasResults {
		paths := documentSourcePaths(results.ResultFilePaths)
		for _, path := range paths {
			loaded, err := export.LoadDocuments(path)
			if err != nil {
				return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
			}
			docs = append(docs, loaded...)
		}
	}

	bundle, err := export.Bundle(deps.Store.ProjectDir(projectID), projectCtx.Title, docs, protocol)
	if err != nil {
		return Result{StageName: s.Name(), ValidationErrors: []string{err.Error()}}
	}

	now := time.Now()
	bundle.Header = artifact.Header{
		ProjectID: projectID, Status: artifact.StatusDraft, CreatedAt: now, UpdatedAt: now,
		ModelMetadata: &artifact.ModelMetadata{ModelName: "slrctl", Mode: "deterministic", GeneratedAt: now},
	}
	if !hasResults {
		bundle.Notes = "exported before a search was executed; papers.csv/bib/ris are empty"
	}

	return Result{
		StageName:     s.Name(),
		DraftArtifact: &bundle,
		Metadata:      bundle.ModelMetadata,
	}
}

// documentSourcePaths picks the deduplicated result file when one was
// produced, falling back to every per-database file otherwise, so documents
// already merged by the dedup stage aren't double counted.
func documentSourcePaths(paths []string) []string {
	for _, p := range paths {
		if strings.HasPrefix(filepath.Base(p), "deduplicated_") {
			return []string{p}
		}
	}
	return paths
}
