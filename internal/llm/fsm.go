package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Outcome carries the result of a bounded draft->critique->refine run,
// along with the mode a caller should record in ModelMetadata.
type Outcome struct {
	Value      json.RawMessage
	Mode       string // "llm" or "deterministic"
	Iterations int
	Notes      string
}

// Refine runs prompt through drafter's draft->critique->(refine->critique)*
// loop, bounded to maxIterations refinements. If drafter is nil or the
// first Draft call fails, fallback is invoked instead and the outcome is
// tagged "deterministic" — stages must always supply a fallback that can't
// itself fail. A Critique or refine failure after a successful draft keeps
// the latest draft, tagged "llm", with a note naming the failure.
func Refine(ctx context.Context, drafter Drafter, prompt string, schema Schema, maxIterations int, fallback func() (json.RawMessage, string)) Outcome {
	if drafter == nil {
		value, notes := fallback()
		return Outcome{Value: value, Mode: "deterministic", Notes: notes}
	}

	value, err := drafter.Draft(ctx, prompt, schema)
	if err != nil {
		fbValue, notes := fallback()
		return Outcome{Value: fbValue, Mode: "deterministic", Notes: fmt.Sprintf("draft failed, used fallback: %v. %s", err, notes)}
	}

	iterations := 0
	for i := 0; i < maxIterations; i++ {
		feedback, ok, err := drafter.Critique(ctx, value, schema)
		if err != nil {
			return Outcome{Value: value, Mode: "llm", Iterations: iterations, Notes: fmt.Sprintf("critique failed after draft succeeded: %v", err)}
		}
		if ok {
			return Outcome{Value: value, Mode: "llm", Iterations: iterations}
		}

		refined, err := drafter.Draft(ctx, refinePrompt(prompt, feedback), schema)
		if err != nil {
			return Outcome{Value: value, Mode: "llm", Iterations: iterations, Notes: fmt.Sprintf("refine failed, kept prior draft: %v", err)}
		}
		value = refined
		iterations++
	}

	return Outcome{Value: value, Mode: "llm", Iterations: iterations, Notes: "reached critique_max_iterations without explicit acceptance"}
}

func refinePrompt(original, feedback string) string {
	return fmt.Sprintf("%s\n\nPrevious attempt was critiqued as follows, address it:\n%s", original, feedback)
}
