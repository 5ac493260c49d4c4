// Package llm isolates the pipeline from any particular LLM SDK behind a
// narrow Draft/Critique capability interface, backing the stages that draft
// free text with a bounded draft->critique->refine loop and a deterministic
// fallback that never makes a network call.
package llm

import (
	"context"
	"encoding/json"
)

// Schema describes the shape of the value a Draft call should produce. It
// is passed straight through to the backing model as a JSON-Schema-like
// hint; callers that don't need backend-specific structure can pass nil.
// Declared as an alias (not a defined type) so callers can pass a plain
// map[string]any without a conversion, and so other packages can declare
// Drafter-shaped interfaces without importing this package.
type Schema = map[string]any

// Drafter produces and critiques JSON values conforming to a Schema.
type Drafter interface {
	// Draft asks the backing model to produce a value for prompt,
	// conforming to schema.
	Draft(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error)

	// Critique reviews value against schema and returns feedback plus
	// whether it is acceptable as-is (ok = true short-circuits refinement).
	Critique(ctx context.Context, value json.RawMessage, schema Schema) (feedback string, ok bool, err error)
}
