// Package search implements the Multi-Database Search Executor: concurrent
// fan-out of compiled queries to their providers, per-provider rate
// limiting and retry, and persistence of raw and deduplicated results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/config"
	"github.com/mbsoft31/slr-pipeline/internal/dedup"
	"github.com/mbsoft31/slr-pipeline/internal/pipelineerr"
	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
	"github.com/mbsoft31/slr-pipeline/internal/search/provider"
)

// executableProviders names the query dialects this executor can actually
// dispatch; the remaining dialects (pubmed, scopus, wos, ieee) are
// syntax-only: the pipeline compiles their Boolean strings for the
// researcher to paste into the vendor's own search console, but has no
// client library or public API to call on their behalf.
var executableProviders = map[string]struct{}{
	"openalex":        {},
	"arxiv":           {},
	"crossref":        {},
	"semanticscholar": {},
}

// IsExecutable reports whether databaseName can be dispatched automatically.
func IsExecutable(databaseName string) bool {
	_, ok := executableProviders[strings.ToLower(databaseName)]
	return ok
}

// Executor runs a DatabaseQueryPlan's executable queries concurrently and
// persists results under the project's storage directory.
type Executor struct {
	cfg       config.ExecutorConfig
	providers map[string]provider.ProviderConfig
	store     *artifact.Store
	limiters  *limiterRegistry
	httpClient *http.Client
	logger    *slog.Logger
	dedupEnabled bool
}

// processLimiters is the limiter registry shared by every Executor in the
// process.
var processLimiters = newLimiterRegistry()

// New builds an Executor wired to cfg and store. httpClient, when nil,
// defaults to http.DefaultClient.
func New(cfg config.ExecutorConfig, providers map[string]config.ProviderConfig, store *artifact.Store, logger *slog.Logger, httpClient *http.Client, dedupEnabled bool) *Executor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	provCfgs := make(map[string]provider.ProviderConfig, len(providers))
	for name, pc := range providers {
		provCfgs[name] = provider.ProviderConfig{APIKey: pc.APIKey, Capacity: pc.Rate.Capacity, RefillPerSecond: pc.Rate.RefillPerSecond}
	}
	return &Executor{
		cfg:          cfg,
		providers:    provCfgs,
		store:        store,
		limiters:     processLimiters,
		httpClient:   httpClient,
		logger:       logger,
		dedupEnabled: dedupEnabled,
	}
}

// providerFor builds the provider.Provider implementation for databaseName,
// wired to that provider's configured rate limit and credentials.
func (e *Executor) providerFor(name string) (provider.Provider, error) {
	lower := strings.ToLower(name)
	pc := e.providers[lower]
	if pc.Capacity == 0 {
		pc.Capacity = 5
	}
	if pc.RefillPerSecond == 0 {
		pc.RefillPerSecond = 1
	}
	limiter := e.limiters.Get(lower, pc.Capacity, pc.RefillPerSecond)
	retry := provider.RetryPolicy{Attempts: e.cfg.Retry.Attempts, BaseMs: e.cfg.Retry.BaseMs, JitterRatio: e.cfg.Retry.JitterRatio}

	switch lower {
	case "openalex":
		return provider.NewOpenAlex(e.httpClient, limiter, retry, e.logger, pc.APIKey), nil
	case "arxiv":
		return provider.NewArxiv(e.httpClient, limiter, retry, e.logger), nil
	case "crossref":
		return provider.NewCrossref(e.httpClient, limiter, retry, e.logger), nil
	case "semanticscholar":
		return provider.NewSemanticScholar(e.httpClient, limiter, retry, e.logger, pc.APIKey), nil
	default:
		return nil, pipelineerr.Validation(fmt.Sprintf("no executable provider for database %q", name))
	}
}

// runResult is one executable query's outcome.
type runResult struct {
	databaseName string
	documents    []queryplan.Document
	err          error
}

// Run dispatches every executable query in plan concurrently, writes each
// provider's raw results to a side file, deduplicates across providers when
// configured and when at least two providers returned results, and
// composes the resulting SearchResults artifact. Queries for non-executable
// dialects are skipped with a logged warning each; their Boolean strings
// remain in the plan for manual use.
func (e *Executor) Run(ctx context.Context, projectID string, plan artifact.DatabaseQueryPlan) (artifact.SearchResults, error) {
	start := time.Now()

	overall := time.Duration(e.cfg.OverallTimeoutSeconds) * time.Second
	if overall > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, overall)
		defer cancel()
	}

	executable := make([]artifact.DatabaseQuery, 0, len(plan.Queries))
	for _, q := range plan.Queries {
		if IsExecutable(q.DatabaseName) {
			executable = append(executable, q)
		} else {
			e.logger.Warn("skipping syntax-only database", "database", q.DatabaseName)
		}
	}

	concurrency := e.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	if concurrency > len(executable) && len(executable) > 0 {
		concurrency = len(executable)
	}

	results := make([]runResult, len(executable))
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, q := range executable {
		i, q := i, q
		g.Go(func() error {
			results[i] = e.runOne(gctx, q)
			return nil
		})
	}
	// errgroup's Wait error is always nil here: runOne captures its own
	// error per query instead of aborting the whole fan-out on one
	// provider's failure.
	_ = g.Wait()

	resultsDir := filepath.Join(e.store.ProjectDir(projectID), "search_results")
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return artifact.SearchResults{}, pipelineerr.IO("creating search results directory", err)
	}

	var (
		allDocs   []queryplan.Document
		databases []string
		filePaths []string
	)
	timestamp := start.UTC().Format("20060102T150405Z")

	for _, r := range results {
		if r.err != nil {
			e.logger.Warn("provider search failed", "database", r.databaseName, "error", r.err)
			continue
		}
		databases = append(databases, r.databaseName)
		allDocs = append(allDocs, r.documents...)

		fileName := fmt.Sprintf("%s_%s.json", r.databaseName, timestamp)
		path := filepath.Join(resultsDir, fileName)
		if err := writeDocuments(path, r.documents); err != nil {
			return artifact.SearchResults{}, err
		}
		filePaths = append(filePaths, path)
	}

	if len(executable) > 0 && len(databases) == 0 {
		return artifact.SearchResults{}, pipelineerr.Validation(fmt.Sprintf("all %d executable provider(s) failed", len(executable)))
	}

	stats := artifact.DeduplicationStats{OriginalCount: len(allDocs)}
	deduplicatedCount := len(allDocs)

	if e.dedupEnabled && len(databases) >= 2 {
		result := dedup.Dedupe(allDocs)
		stats = result.Stats
		deduplicatedCount = len(result.Documents)

		dedupFile := fmt.Sprintf("deduplicated_%s_%s.json", strings.Join(databases, "-"), timestamp)
		dedupPath := filepath.Join(resultsDir, dedupFile)
		if err := writeDocuments(dedupPath, result.Documents); err != nil {
			return artifact.SearchResults{}, err
		}
		filePaths = append(filePaths, dedupPath)
	}

	header := artifact.Header{
		ProjectID: projectID,
		Status:    artifact.StatusDraft,
		CreatedAt: start,
		UpdatedAt: start,
	}

	searchResults := artifact.SearchResults{
		Header:               header,
		TotalResults:         len(allDocs),
		DeduplicatedCount:    deduplicatedCount,
		DatabasesSearched:    databases,
		ResultFilePaths:      filePaths,
		DeduplicationStats:   stats,
		ExecutionTimeSeconds: time.Since(start).Seconds(),
	}

	if err := e.store.Save(projectID, artifact.TypeSearchResults, &searchResults); err != nil {
		return artifact.SearchResults{}, err
	}

	return searchResults, nil
}

func (e *Executor) runOne(ctx context.Context, q artifact.DatabaseQuery) runResult {
	name := strings.ToLower(q.DatabaseName)

	p, err := e.providerFor(name)
	if err != nil {
		return runResult{databaseName: name, err: err}
	}

	perCall := time.Duration(e.cfg.PerCallTimeoutSeconds) * time.Second
	callCtx := ctx
	if perCall > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, perCall)
		defer cancel()
	}

	maxResults := e.cfg.MaxResultsPerDB
	if maxResults <= 0 {
		maxResults = 100
	}

	docs, err := p.Search(callCtx, q.BooleanQueryString, maxResults)
	return runResult{databaseName: name, documents: docs, err: err}
}

// writeDocuments writes docs as indented JSON to path, creating it if
// necessary. Unlike artifact.Store.Save, result files are not versioned or
// locked: each executor run produces a distinct, timestamped file.
func writeDocuments(path string, docs []queryplan.Document) error {
	if docs == nil {
		docs = []queryplan.Document{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return pipelineerr.Internal("marshaling search results", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return pipelineerr.IO("writing search results file", err)
	}
	return nil
}
