package provider

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

// SemanticScholar queries the Semantic Scholar Graph API
// (https://api.semanticscholar.org/graph/v1/paper/search).
type SemanticScholar struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      RetryPolicy
	logger     *slog.Logger
	apiKey     string
}

func NewSemanticScholar(httpClient *http.Client, limiter *rate.Limiter, retry RetryPolicy, logger *slog.Logger, apiKey string) *SemanticScholar {
	return &SemanticScholar{httpClient: httpClient, limiter: limiter, retry: retry, logger: logger, apiKey: apiKey}
}

func (p *SemanticScholar) Name() string { return "semanticscholar" }

type semanticScholarResponse struct {
	Data []semanticScholarPaper `json:"data"`
}

type semanticScholarPaper struct {
	Title     string `json:"title"`
	Abstract  string `json:"abstract"`
	Year      int    `json:"year"`
	URL       string `json:"url"`
	Venue     string `json:"venue"`
	CitationCount int `json:"citationCount"`
	ExternalIDs struct {
		DOI    string `json:"DOI"`
		PubMed string `json:"PubMed"`
		ArXiv  string `json:"ArXiv"`
	} `json:"externalIds"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

func (p *SemanticScholar) Search(ctx context.Context, query string, maxResults int) ([]queryplan.Document, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(clamp(maxResults, 1, 100)))
	params.Set("fields", "title,abstract,year,url,venue,citationCount,externalIds,authors")
	reqURL := "https://api.semanticscholar.org/graph/v1/paper/search?" + params.Encode()

	var headers map[string]string
	if p.apiKey != "" {
		headers = map[string]string{"x-api-key": p.apiKey}
	}

	var out semanticScholarResponse
	if err := fetchJSONWithHeaders(ctx, p.httpClient, p.limiter, p.retry, p.logger, p.Name(), reqURL, headers, &out); err != nil {
		return nil, err
	}

	docs := make([]queryplan.Document, 0, len(out.Data))
	for _, it := range out.Data {
		authors := make([]string, 0, len(it.Authors))
		for _, a := range it.Authors {
			authors = append(authors, a.Name)
		}
		citations := it.CitationCount
		doc := queryplan.Document{
			Title:         it.Title,
			Authors:       authors,
			Year:          it.Year,
			Venue:         it.Venue,
			DOI:           it.ExternalIDs.DOI,
			URL:           it.URL,
			Abstract:      it.Abstract,
			CitationCount: &citations,
			Provider:      p.Name(),
			PubMedID:      it.ExternalIDs.PubMed,
			ArxivID:       it.ExternalIDs.ArXiv,
		}
		doc.Fingerprint = queryplan.Fingerprint(doc.Title, doc.Authors, doc.Year)
		docs = append(docs, doc)
	}

	return docs, nil
}
