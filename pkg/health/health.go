package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// Status of a component or the whole process.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Response is the body of both probe endpoints.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Status  Status `json:"status"`
	Latency string `json:"latency"`
	Error   string `json:"error,omitempty"`
}

// Handler serves liveness and readiness probes.
type Handler struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	timeout  time.Duration
}

// NewHandler creates a handler whose readiness checks share a 5s deadline.
func NewHandler() *Handler {
	return &Handler{
		checkers: make(map[string]Checker),
		timeout:  5 * time.Second,
	}
}

// Register adds a named checker, replacing any previous one with that name.
func (h *Handler) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// Names returns registered checker names in sorted order.
func (h *Handler) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LivenessHandler answers 200 while the process is running.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, Response{Status: StatusUp, Timestamp: time.Now().UTC()})
	}
}

// ReadinessHandler runs all checks concurrently and answers 503 if any fails.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h.Check(r.Context())
		status := http.StatusOK
		if resp.Status == StatusDown {
			status = http.StatusServiceUnavailable
		}
		write(w, status, resp)
	}
}

// Check runs every registered checker and aggregates the results.
func (h *Handler) Check(ctx context.Context) Response {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	h.mu.RLock()
	checkers := make(map[string]Checker, len(h.checkers))
	for k, v := range h.checkers {
		checkers[k] = v
	}
	h.mu.RUnlock()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]CheckResult, len(checkers))
	)
	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()
			start := time.Now()
			err := checker(ctx)
			res := CheckResult{Status: StatusUp, Latency: time.Since(start).String()}
			if err != nil {
				res.Status = StatusDown
				res.Error = err.Error()
			}
			mu.Lock()
			checks[name] = res
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	overall := StatusUp
	for _, c := range checks {
		if c.Status == StatusDown {
			overall = StatusDown
			break
		}
	}
	return Response{Status: overall, Timestamp: time.Now().UTC(), Checks: checks}
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
