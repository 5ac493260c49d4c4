// Package dedup implements three-level key deduplication over documents
// collected from multiple search providers.
package dedup

import (
	"strings"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

// Result is the outcome of deduplicating a set of documents.
type Result struct {
	Documents []queryplan.Document
	Stats     artifact.DeduplicationStats
}

// minTitleLen is the shortest normalized title considered reliable enough
// to use as a dedup key; shorter titles fall through to the fingerprint key.
const minTitleLen = 10

// Dedupe merges documents collected across one or more providers, keeping
// the first-seen occurrence of each logical document. Each document is
// reduced to a single key, chosen by priority:
//  1. if it has a non-empty DOI, the DOI, lowercased with any doi.org URL
//     or "doi:" prefix removed,
//  2. else if its normalized title is at least minTitleLen characters, that title,
//  3. else its Fingerprint value.
//
// A document is a duplicate of an earlier one if their keys match.
func Dedupe(docs []queryplan.Document) Result {
	seen := make(map[string]struct{}, len(docs))

	kept := make([]queryplan.Document, 0, len(docs))
	duplicates := 0

	for _, d := range docs {
		key := dedupKey(d)
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, d)
	}

	rate := 0.0
	if len(docs) > 0 {
		rate = float64(duplicates) / float64(len(docs))
	}

	return Result{
		Documents: kept,
		Stats: artifact.DeduplicationStats{
			OriginalCount:     len(docs),
			DuplicatesRemoved: duplicates,
			Rate:              rate,
		},
	}
}

func dedupKey(d queryplan.Document) string {
	if doi := normalizeDOI(d.DOI); doi != "" {
		return "doi:" + doi
	}
	if title := queryplan.NormalizeTitle(d.Title); len(title) >= minTitleLen {
		return "title:" + title
	}
	return "fp:" + d.Fingerprint
}

func normalizeDOI(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		if strings.HasPrefix(doi, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(doi, prefix))
		}
	}
	return doi
}
