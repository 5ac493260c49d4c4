package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/mbsoft31/slr-pipeline/internal/pipelineerr"
)

// RetryPolicy bounds the exponential backoff applied to a provider's HTTP
// calls.
type RetryPolicy struct {
	Attempts    int
	BaseMs      int
	JitterRatio float64
}

// fetchJSON performs an HTTP GET against url, decoding the JSON response
// into out. It acquires a rate-limit token before every attempt and retries
// transient failures (network errors, 5xx, 429) with bounded exponential
// backoff; 4xx-other-than-429 and malformed bodies are treated as
// permanent via backoff.Permanent, so the library stops retrying them
// immediately.
func fetchJSON(ctx context.Context, httpClient *http.Client, limiter *rate.Limiter, retry RetryPolicy, logger *slog.Logger, providerName, url string, out any) error {
	return fetchJSONWithHeaders(ctx, httpClient, limiter, retry, logger, providerName, url, nil, out)
}

// fetchJSONWithHeaders is like fetchJSON but sets additional request headers
// (used by providers that accept an optional API key, e.g. Semantic Scholar).
func fetchJSONWithHeaders(ctx context.Context, httpClient *http.Client, limiter *rate.Limiter, retry RetryPolicy, logger *slog.Logger, providerName, url string, headers map[string]string, out any) error {
	return fetch(ctx, httpClient, limiter, retry, logger, providerName, url, headers, func(body []byte) error {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	})
}

// fetchRaw performs an HTTP GET against url and hands the raw body to
// decode (used by arXiv, whose responses are XML rather than JSON).
func fetchRaw(ctx context.Context, httpClient *http.Client, limiter *rate.Limiter, retry RetryPolicy, logger *slog.Logger, providerName, url string, decode func([]byte) error) error {
	return fetch(ctx, httpClient, limiter, retry, logger, providerName, url, nil, decode)
}

func fetch(ctx context.Context, httpClient *http.Client, limiter *rate.Limiter, retry RetryPolicy, logger *slog.Logger, providerName, url string, headers map[string]string, decode func([]byte) error) error {
	permanent := false

	operation := func() error {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				permanent = true
				return backoff.Permanent(err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			permanent = true
			return backoff.Permanent(err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%s: request failed: %w", providerName, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%s: reading response body: %w", providerName, err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%s: rate limited (429)", providerName)
		case resp.StatusCode >= 500:
			return fmt.Errorf("%s: server error (%d)", providerName, resp.StatusCode)
		case resp.StatusCode >= 400:
			permanent = true
			return backoff.Permanent(fmt.Errorf("%s: client error (%d)", providerName, resp.StatusCode))
		}

		if err := decode(body); err != nil {
			permanent = true
			return backoff.Permanent(err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Duration(retry.BaseMs) * time.Millisecond
	bo.RandomizationFactor = retry.JitterRatio
	bo.Multiplier = 2
	// Attempts counts every call including the first, so the backoff is
	// allowed Attempts-1 retries.
	maxRetries := 0
	if retry.Attempts > 1 {
		maxRetries = retry.Attempts - 1
	}
	bounded := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxRetries)), ctx)

	attempt := 0
	err := backoff.RetryNotify(operation, bounded, func(err error, wait time.Duration) {
		attempt++
		logger.Warn("provider call retrying", "provider", providerName, "attempt", attempt, "wait", wait, "error", err)
	})

	if err != nil {
		return pipelineerr.Provider(providerName, !permanent, err)
	}

	return nil
}
