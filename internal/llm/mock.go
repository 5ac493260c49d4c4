package llm

import (
	"context"
	"encoding/json"
)

// Mock returns a fixed value for every Draft/Critique call and never
// makes a network call; used in tests that exercise the stage layer
// without depending on a live backend.
type Mock struct {
	DraftValue   json.RawMessage
	DraftErr     error
	CritiqueOK   bool
	CritiqueFeedback string
	CritiqueErr  error
}

func (m *Mock) Draft(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	return m.DraftValue, m.DraftErr
}

func (m *Mock) Critique(ctx context.Context, value json.RawMessage, schema Schema) (string, bool, error) {
	return m.CritiqueFeedback, m.CritiqueOK, m.CritiqueErr
}
