package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

// CircuitBreakerConfig configures one named breaker.
type CircuitBreakerConfig struct {
	Name string

	// MaxRequests allowed while half-open.
	MaxRequests uint32

	// Interval clears closed-state counts; 0 never clears.
	Interval time.Duration

	// Timeout is how long the breaker stays open.
	Timeout time.Duration

	// FailureRatio trips the breaker once MinRequests have been seen.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultCircuitBreakerConfig returns defaults for an external API.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// FallbackFunc substitutes a response while the breaker is open.
type FallbackFunc func(ctx context.Context, err error) (*http.Response, error)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = gobreaker.ErrOpenState

var (
	circuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	circuitBreakerFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_fallback_invoked_total",
			Help: "Total number of times the circuit breaker fallback was invoked",
		},
		[]string{"name"},
	)
)

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// CircuitBreakerClient guards a Doer with a gobreaker breaker. 5xx responses
// count as failures and are returned as errors.
type CircuitBreakerClient struct {
	next     Doer
	breaker  *gobreaker.CircuitBreaker[*http.Response]
	logger   *slog.Logger
	fallback FallbackFunc
	name     string
}

// NewCircuitBreakerClient wraps next.
func NewCircuitBreakerClient(next Doer, cfg CircuitBreakerConfig, logger *slog.Logger) *CircuitBreakerClient {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			circuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}
	circuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	return &CircuitBreakerClient{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
		logger:  logger,
		name:    cfg.Name,
	}
}

// WithFallback returns a copy that calls fn instead of failing while open.
func (c *CircuitBreakerClient) WithFallback(fn FallbackFunc) *CircuitBreakerClient {
	cpy := *c
	cpy.fallback = fn
	return &cpy
}

// Do executes req through the breaker.
func (c *CircuitBreakerClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.next.Do(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
			_ = resp.Body.Close()
			return nil, fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
		}
		return resp, nil
	})
	if err != nil && c.fallback != nil && errors.Is(err, ErrCircuitOpen) {
		circuitBreakerFallbackTotal.WithLabelValues(c.name).Inc()
		c.logger.WarnContext(ctx, "circuit breaker open, invoking fallback", slog.String("breaker", c.name))
		return c.fallback(ctx, err)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// State returns the breaker state.
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.breaker.State()
}
