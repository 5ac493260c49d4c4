package llm

import "fmt"

// Build constructs the configured Drafter. A nil, nil return (provider
// "deterministic") means callers should pass a nil drafter into Refine,
// which always takes the fallback path.
func Build(provider, apiKey string) (Drafter, error) {
	switch provider {
	case "", "deterministic":
		return nil, nil
	case "mock":
		return &Mock{CritiqueOK: true}, nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("llm: api_key is required for provider %q", provider)
		}
		return NewAnthropic(apiKey), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", provider)
	}
}
