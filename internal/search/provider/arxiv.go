package provider

import (
	"context"
	"encoding/xml"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

// Arxiv queries the arXiv Atom export API (https://export.arxiv.org/api/query).
type Arxiv struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      RetryPolicy
	logger     *slog.Logger
}

func NewArxiv(httpClient *http.Client, limiter *rate.Limiter, retry RetryPolicy, logger *slog.Logger) *Arxiv {
	return &Arxiv{httpClient: httpClient, limiter: limiter, retry: retry, logger: logger}
}

func (p *Arxiv) Name() string { return "arxiv" }

type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string         `xml:"id"`
	Title     string         `xml:"title"`
	Summary   string         `xml:"summary"`
	Published string         `xml:"published"`
	Authors   []arxivAuthor  `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

func (p *Arxiv) Search(ctx context.Context, query string, maxResults int) ([]queryplan.Document, error) {
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("max_results", strconv.Itoa(clamp(maxResults, 1, 2000)))
	reqURL := "https://export.arxiv.org/api/query?" + params.Encode()

	var feed arxivFeed
	err := fetchRaw(ctx, p.httpClient, p.limiter, p.retry, p.logger, p.Name(), reqURL, func(body []byte) error {
		return xml.Unmarshal(body, &feed)
	})
	if err != nil {
		return nil, err
	}

	docs := make([]queryplan.Document, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		authors := make([]string, 0, len(e.Authors))
		for _, a := range e.Authors {
			authors = append(authors, a.Name)
		}
		year := 0
		if t, err := time.Parse(time.RFC3339, e.Published); err == nil {
			year = t.Year()
		}
		doc := queryplan.Document{
			Title:    strings.TrimSpace(e.Title),
			Authors:  authors,
			Year:     year,
			Abstract: strings.TrimSpace(e.Summary),
			URL:      e.ID,
			ArxivID:  arxivIDFromURL(e.ID),
			Provider: p.Name(),
		}
		doc.Fingerprint = queryplan.Fingerprint(doc.Title, doc.Authors, doc.Year)
		docs = append(docs, doc)
	}

	return docs, nil
}

// arxivIDFromURL extracts the arXiv identifier from an entry's abs URL,
// e.g. "https://arxiv.org/abs/2301.00001v2" -> "2301.00001v2".
func arxivIDFromURL(absURL string) string {
	idx := strings.LastIndex(absURL, "/abs/")
	if idx == -1 {
		return ""
	}
	return absURL[idx+len("/abs/"):]
}
