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

// OpenAlex queries the OpenAlex works API (https://api.openalex.org/works).
type OpenAlex struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      RetryPolicy
	logger     *slog.Logger
	mailto     string
}

// NewOpenAlex builds an OpenAlex provider. mailto, when set, is sent as a
// polite-pool identifier per OpenAlex's etiquette guidelines.
func NewOpenAlex(httpClient *http.Client, limiter *rate.Limiter, retry RetryPolicy, logger *slog.Logger, mailto string) *OpenAlex {
	return &OpenAlex{httpClient: httpClient, limiter: limiter, retry: retry, logger: logger, mailto: mailto}
}

func (p *OpenAlex) Name() string { return "openalex" }

type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	Title            string `json:"title"`
	PublicationYear  int    `json:"publication_year"`
	DOI              string `json:"doi"`
	CitedByCount     int    `json:"cited_by_count"`
	Abstract         *openAlexInvertedIndex `json:"abstract_inverted_index"`
	PrimaryLocation  struct {
		Source struct {
			DisplayName string `json:"display_name"`
		} `json:"source"`
		LandingPageURL string `json:"landing_page_url"`
	} `json:"primary_location"`
	Authorships []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
}

// openAlexInvertedIndex is OpenAlex's word->positions abstract encoding.
// It is decoded but not read; no abstract is reconstructed from it, so
// OpenAlex documents carry an empty Document.Abstract.
type openAlexInvertedIndex map[string][]int

func (p *OpenAlex) Search(ctx context.Context, query string, maxResults int) ([]queryplan.Document, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("per_page", strconv.Itoa(clamp(maxResults, 1, 200)))
	if p.mailto != "" {
		params.Set("mailto", p.mailto)
	}
	reqURL := "https://api.openalex.org/works?" + params.Encode()

	var out openAlexResponse
	if err := fetchJSON(ctx, p.httpClient, p.limiter, p.retry, p.logger, p.Name(), reqURL, &out); err != nil {
		return nil, err
	}

	docs := make([]queryplan.Document, 0, len(out.Results))
	for _, w := range out.Results {
		authors := make([]string, 0, len(w.Authorships))
		for _, a := range w.Authorships {
			authors = append(authors, a.Author.DisplayName)
		}
		citations := w.CitedByCount
		doc := queryplan.Document{
			Title:         w.Title,
			Authors:       authors,
			Year:          w.PublicationYear,
			Venue:         w.PrimaryLocation.Source.DisplayName,
			DOI:           w.DOI,
			URL:           w.PrimaryLocation.LandingPageURL,
			CitationCount: &citations,
			Provider:      p.Name(),
		}
		doc.Fingerprint = queryplan.Fingerprint(doc.Title, doc.Authors, doc.Year)
		docs = append(docs, doc)
	}

	return docs, nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
