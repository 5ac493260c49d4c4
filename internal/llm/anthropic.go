package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModelName = "claude-3-5-haiku-latest"
	maxRetries       = 3
	initialBackoff   = 1 * time.Second
)

// Anthropic backs Drafter with the Anthropic Messages API. Draft asks for a
// JSON value matching schema in the prompt itself (schema is rendered as
// JSON in an instruction placed ahead of the prompt in a single user
// message) and parses the first text block of the
// reply as raw JSON; Critique asks the model to judge its own prior output.
type Anthropic struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropic builds a client from apiKey. An empty apiKey is rejected by
// the caller before construction (see Build in factory.go).
func NewAnthropic(apiKey string) *Anthropic {
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(defaultModelName),
	}
}

func (a *Anthropic) Draft(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	system := "Respond with a single JSON value and nothing else."
	if schema != nil {
		schemaJSON, err := json.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("marshaling schema: %w", err)
		}
		system = fmt.Sprintf("Respond with a single JSON value conforming to this schema and nothing else:\n%s", schemaJSON)
	}

	text, err := a.callWithRetry(ctx, system, prompt)
	if err != nil {
		return nil, err
	}

	raw := json.RawMessage(text)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("model response is not valid JSON")
	}
	return raw, nil
}

func (a *Anthropic) Critique(ctx context.Context, value json.RawMessage, schema Schema) (string, bool, error) {
	prompt := fmt.Sprintf("Critique the following JSON value. Reply with exactly \"OK\" if it needs no changes, otherwise explain what to fix:\n%s", string(value))

	text, err := a.callWithRetry(ctx, "You are reviewing a structured draft for a systematic literature review tool.", prompt)
	if err != nil {
		return "", false, err
	}

	if text == "OK" {
		return "", true, nil
	}
	return text, false, nil
}

func (a *Anthropic) callWithRetry(ctx context.Context, system, prompt string) (string, error) {
	combined := fmt.Sprintf("%s\n\n%s", system, prompt)
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(combined)),
		},
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := initialBackoff * time.Duration(math.Pow(2, float64(attempt-1)))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		message, err := a.client.Messages.New(ctx, params)
		if err == nil {
			if len(message.Content) == 0 {
				return "", fmt.Errorf("anthropic: empty response")
			}
			block := message.Content[0]
			if block.Type != "text" {
				return "", fmt.Errorf("anthropic: unexpected content type %q", block.Type)
			}
			return block.Text, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !isRetryable(err) {
			return "", fmt.Errorf("anthropic: non-retryable error: %w", err)
		}
	}

	return "", fmt.Errorf("anthropic: failed after %d attempts: %w", maxRetries+1, lastErr)
}

func isRetryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
