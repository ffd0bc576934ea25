package observability

import (
	"context"
	"sort"
	"sync"
	"time"
)

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResult is the result of a single component check.
type HealthCheckResult struct {
	Component string        `json:"component"`
	Status    HealthStatus  `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ns"`
}

// HealthChecker performs one component check.
type HealthChecker func(ctx context.Context) HealthCheckResult

// HealthReport aggregates every registered check.
type HealthReport struct {
	Status    HealthStatus        `json:"status"`
	CheckedAt time.Time           `json:"checked_at"`
	Checks    []HealthCheckResult `json:"checks"`
}

// HealthRegistry runs named component checks concurrently.
type HealthRegistry struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
}

// NewHealthRegistry creates an empty registry.
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{checkers: make(map[string]HealthChecker)}
}

// Register adds or replaces the checker for a component.
func (r *HealthRegistry) Register(name string, checker HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// Check runs every checker and returns results sorted by component name.
func (r *HealthRegistry) Check(ctx context.Context) HealthReport {
	r.mu.RLock()
	checkers := make(map[string]HealthChecker, len(r.checkers))
	for k, v := range r.checkers {
		checkers[k] = v
	}
	r.mu.RUnlock()

	results := make([]HealthCheckResult, 0, len(checkers))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			start := time.Now()
			result := checker(ctx)
			result.Component = name
			result.Duration = time.Since(start)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Component < results[j].Component
	})
	return HealthReport{
		Status:    worstStatus(results),
		CheckedAt: time.Now(),
		Checks:    results,
	}
}

func worstStatus(results []HealthCheckResult) HealthStatus {
	status := HealthStatusHealthy
	for _, r := range results {
		switch r.Status {
		case HealthStatusUnhealthy:
			return HealthStatusUnhealthy
		case HealthStatusDegraded:
			status = HealthStatusDegraded
		}
	}
	return status
}

// PingChecker reports failing as the status when ping returns an error.
// Optional components such as the event broker use HealthStatusDegraded.
func PingChecker(ping func(ctx context.Context) error, failing HealthStatus) HealthChecker {
	return func(ctx context.Context) HealthCheckResult {
		if err := ping(ctx); err != nil {
			return HealthCheckResult{Status: failing, Message: err.Error()}
		}
		return HealthCheckResult{Status: HealthStatusHealthy, Message: "ok"}
	}
}
