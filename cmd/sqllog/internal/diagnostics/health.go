package diagnostics

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// Check reports whether a dependency is usable. It returns nil when healthy.
//
// Example:
//
//	health.AddReadinessCheck("database", db.PingContext)
type Check func(ctx context.Context) error

// Response is the JSON envelope of every diagnostics endpoint.
type Response[T any] struct {
	Data    T       `json:"data,omitempty"`
	Errors  []Error `json:"errors,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Error names the check that failed.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CheckResult is the outcome of one check run.
type CheckResult struct {
	Status              string `json:"status"`
	Latency             string `json:"latency"`
	Message             string `json:"message,omitempty"`
	ConsecutiveSuccess  int    `json:"consecutive_successes,omitempty"`
	ConsecutiveFailures int    `json:"consecutive_failures,omitempty"`
}

// HealthResponse is the payload of /livez and /readyz.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

type checkState struct {
	check               Check
	consecutiveSuccess  int
	consecutiveFailures int
}

// Health serves the liveness and readiness endpoints.
type Health struct {
	service   string
	version   string
	startTime time.Time

	mu              sync.Mutex
	livenessChecks  map[string]*checkState
	readinessChecks map[string]*checkState
}

// NewHealth creates a Health without checks; both endpoints report ok
// until checks are added.
func NewHealth(service, version string) *Health {
	return &Health{
		service:         service,
		version:         version,
		startTime:       time.Now(),
		livenessChecks:  make(map[string]*checkState),
		readinessChecks: make(map[string]*checkState),
	}
}

// AddLivenessCheck registers a check run by /livez.
func (h *Health) AddLivenessCheck(name string, check Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.livenessChecks[name] = &checkState{check: check}
}

// AddReadinessCheck registers a check run by /readyz.
func (h *Health) AddReadinessCheck(name string, check Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readinessChecks[name] = &checkState{check: check}
}

// LiveHandler responds 200 when every liveness check passes, 503 otherwise.
func (h *Health) LiveHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, h.livenessChecks)
	})
}

// ReadyHandler responds 200 when every readiness check passes, 503 otherwise.
func (h *Health) ReadyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, h.readinessChecks)
	})
}

func (h *Health) serve(w http.ResponseWriter, r *http.Request, checks map[string]*checkState) {
	now := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]CheckResult, len(checks))
	var errs []Error
	for _, name := range names {
		state := checks[name]
		start := time.Now()
		err := state.check(r.Context())
		result := CheckResult{Latency: time.Since(start).String()}

		if err != nil {
			state.consecutiveFailures++
			state.consecutiveSuccess = 0
			result.Status = "fail"
			result.Message = err.Error()
			result.ConsecutiveFailures = state.consecutiveFailures
			errs = append(errs, Error{Field: name, Message: err.Error()})
		} else {
			state.consecutiveSuccess++
			state.consecutiveFailures = 0
			result.Status = "ok"
			result.ConsecutiveSuccess = state.consecutiveSuccess
		}
		results[name] = result
	}

	status, code, message := "ok", http.StatusOK, "all checks passed"
	if len(errs) > 0 {
		status, code, message = "fail", http.StatusServiceUnavailable, "one or more checks failed"
	}

	writeJSON(w, code, Response[HealthResponse]{
		Data: HealthResponse{
			Status:    status,
			Service:   h.service,
			Version:   h.version,
			Uptime:    time.Since(h.startTime).Round(time.Second).String(),
			Timestamp: now.Format(time.RFC3339),
			Checks:    results,
		},
		Errors:  errs,
		Message: message,
	})
}

func writeJSON[T any](w http.ResponseWriter, code int, resp Response[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
