package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects calls
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig holds configuration for a circuit breaker
type CircuitBreakerConfig struct {
	Name                  string
	MaxRequests           uint32        // requests allowed while half-open
	Interval              time.Duration // closed-state count reset period, 0 never resets
	Timeout               time.Duration // open to half-open delay
	FailureThreshold      uint32        // consecutive failures that trip the breaker
	FailureRatioThreshold float64
	MinRequestsToTrip     uint32 // requests needed before the ratio is considered

	// OnStateChange is called after the logger records a transition
	OnStateChange func(name string, to gobreaker.State)
}

// DefaultCircuitBreakerConfig returns the breaker settings for broker writes
func DefaultCircuitBreakerConfig(name string) *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		Name:                  name,
		MaxRequests:           halfOpenProbes,
		Interval:              countWindow,
		Timeout:               openFor,
		FailureThreshold:      consecutiveFailures,
		FailureRatioThreshold: failureRatio,
		MinRequestsToTrip:     minRequestsForRatio,
	}
}

// ModelCircuitBreakerConfig returns the breaker settings for hosted model calls
func ModelCircuitBreakerConfig(name string) *CircuitBreakerConfig {
	config := DefaultCircuitBreakerConfig(name)
	config.MaxRequests = 1
	config.Timeout = modelOpenFor
	config.FailureThreshold = modelConsecutiveFailures
	return config
}

// CircuitBreaker makes outbound calls fail fast while a dependency is down.
type CircuitBreaker struct {
	cb     *gobreaker.CircuitBreaker
	name   string
	logger *slog.Logger
}

func NewCircuitBreaker(config *CircuitBreakerConfig, logger *slog.Logger) *CircuitBreaker {
	if logger == nil {
		logger = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: config.shouldTrip,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			if config.OnStateChange != nil {
				config.OnStateChange(name, to)
			}
		},
	})
	return &CircuitBreaker{cb: breaker, name: config.Name, logger: logger}
}

// shouldTrip opens the breaker on a run of consecutive failures, or once
// enough requests have been seen, on the overall failure ratio.
func (config *CircuitBreakerConfig) shouldTrip(counts gobreaker.Counts) bool {
	if counts.ConsecutiveFailures >= config.FailureThreshold {
		return true
	}
	if config.MinRequestsToTrip == 0 || counts.Requests < config.MinRequestsToTrip {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= config.FailureRatioThreshold
}

// Execute runs fn through the breaker. Rejections by an open or saturated
// breaker surface as ErrCircuitOpen.
func (c *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, fn(ctx)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("Circuit breaker rejected call", "name", c.name, "reason", err.Error())
		return fmt.Errorf("%s: %w", c.name, ErrCircuitOpen)
	}
	return err
}

func (c *CircuitBreaker) State() gobreaker.State {
	return c.cb.State()
}

// StateRecorder receives breaker transitions
type StateRecorder interface {
	SetCircuitBreakerState(name string, state int)
	RecordCircuitBreakerTrip(name string)
}

// ReportState returns an OnStateChange hook that forwards transitions to r
func ReportState(r StateRecorder) func(name string, to gobreaker.State) {
	return func(name string, to gobreaker.State) {
		if r == nil {
			return
		}
		r.SetCircuitBreakerState(name, int(to))
		if to == gobreaker.StateOpen {
			r.RecordCircuitBreakerTrip(name)
		}
	}
}
