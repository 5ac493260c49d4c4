package search

import (
	"sync"

	"golang.org/x/time/rate"
)

// limiterRegistry is the one process-wide singleton the concurrency model
// permits: a token bucket per provider name, shared across concurrent stage
// invocations inside this process.
type limiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLimiterRegistry() *limiterRegistry {
	return &limiterRegistry{limiters: make(map[string]*rate.Limiter)}
}

// Get returns the limiter for providerName, creating one from capacity and
// refillPerSecond the first time it's requested.
func (r *limiterRegistry) Get(providerName string, capacity int, refillPerSecond float64) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.limiters[providerName]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Limit(refillPerSecond), capacity)
	r.limiters[providerName] = l
	return l
}
