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

// Crossref queries the Crossref works API (https://api.crossref.org/works).
type Crossref struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      RetryPolicy
	logger     *slog.Logger
}

func NewCrossref(httpClient *http.Client, limiter *rate.Limiter, retry RetryPolicy, logger *slog.Logger) *Crossref {
	return &Crossref{httpClient: httpClient, limiter: limiter, retry: retry, logger: logger}
}

func (p *Crossref) Name() string { return "crossref" }

type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	Title     []string `json:"title"`
	DOI       string   `json:"DOI"`
	URL       string   `json:"URL"`
	Published struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"published"`
	ContainerTitle []string `json:"container-title"`
	Author         []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
	IsReferencedByCount int `json:"is-referenced-by-count"`
}

func (p *Crossref) Search(ctx context.Context, query string, maxResults int) ([]queryplan.Document, error) {
	params := url.Values{}
	params.Set("query.bibliographic", query)
	params.Set("rows", strconv.Itoa(clamp(maxResults, 1, 1000)))
	reqURL := "https://api.crossref.org/works?" + params.Encode()

	var out crossrefResponse
	if err := fetchJSON(ctx, p.httpClient, p.limiter, p.retry, p.logger, p.Name(), reqURL, &out); err != nil {
		return nil, err
	}

	docs := make([]queryplan.Document, 0, len(out.Message.Items))
	for _, it := range out.Message.Items {
		title := ""
		if len(it.Title) > 0 {
			title = it.Title[0]
		}
		venue := ""
		if len(it.ContainerTitle) > 0 {
			venue = it.ContainerTitle[0]
		}
		year := 0
		if len(it.Published.DateParts) > 0 && len(it.Published.DateParts[0]) > 0 {
			year = it.Published.DateParts[0][0]
		}
		authors := make([]string, 0, len(it.Author))
		for _, a := range it.Author {
			authors = append(authors, (a.Given + " " + a.Family))
		}
		citations := it.IsReferencedByCount
		doc := queryplan.Document{
			Title:         title,
			Authors:       authors,
			Year:          year,
			Venue:         venue,
			DOI:           it.DOI,
			URL:           it.URL,
			CitationCount: &citations,
			Provider:      p.Name(),
		}
		doc.Fingerprint = queryplan.Fingerprint(doc.Title, doc.Authors, doc.Year)
		docs = append(docs, doc)
	}

	return docs, nil
}
