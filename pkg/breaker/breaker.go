// Package breaker builds the circuit breakers that guard calls to external providers.
package breaker

import (
	"time"

	"github.com/sony/gobreaker/v2"

	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
)

// Settings tunes a breaker. Zero values fall back to the defaults below.
type Settings struct {
	// MinRequests is the number of requests in a window before the failure ratio is considered.
	MinRequests uint32
	// FailureRatio opens the circuit once reached.
	FailureRatio float64
	// OpenTimeout is how long the circuit stays open before probing again.
	OpenTimeout time.Duration
	// IsSuccessful classifies errors that should not count as failures, like a 404.
	IsSuccessful func(err error) bool
}

const (
	defaultMinRequests  = 5
	defaultFailureRatio = 0.6
	defaultOpenTimeout  = 30 * time.Second
)

// New creates a circuit breaker named name and reports its state on m.CircuitBreakerState.
func New[T any](name string, s Settings, m *metrics.Metrics, log logger.Logger) *gobreaker.CircuitBreaker[T] {
	if s.MinRequests == 0 {
		s.MinRequests = defaultMinRequests
	}
	if s.FailureRatio <= 0 {
		s.FailureRatio = defaultFailureRatio
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = defaultOpenTimeout
	}

	if m != nil {
		m.CircuitBreakerState.WithLabelValues(name).Set(0)
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:         name,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      s.OpenTimeout,
		IsSuccessful: s.IsSuccessful,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			if m != nil {
				m.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			}
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
