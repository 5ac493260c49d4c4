// Package provider implements the Provider contract for each executable
// scholarly database: OpenAlex, arXiv, Crossref, and Semantic Scholar. Each
// provider normalizes its own wire format to queryplan.Document and enforces
// its own rate limit and retry policy.
package provider

import (
	"context"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

// Provider executes a compiled Boolean query string against one scholarly
// database and returns normalized documents.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]queryplan.Document, error)
}

// ProviderConfig carries the per-provider credential and rate-limit
// settings the executor reads from config.ProviderConfig, re-exposed here
// so this package doesn't import the config package back.
type ProviderConfig struct {
	APIKey          string
	Capacity        int
	RefillPerSecond float64
}
