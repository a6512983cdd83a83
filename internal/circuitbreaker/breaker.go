// Package circuitbreaker guards calls to the Stripe API. When Stripe is
// failing, further requests trip fast instead of stacking up against a dead
// upstream. Retry policy stays with the caller; this package only decides
// whether a call is allowed through.
package circuitbreaker

import (
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/TheWizler/unusualpills-site/internal/config"
)

// Breaker wraps a single gobreaker circuit around the Stripe collaborator.
// A disabled breaker is a pass-through.
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	enabled bool
}

// New creates a breaker from application config.
func New(cfg config.CircuitBreakerConfig, log zerolog.Logger) *Breaker {
	if !cfg.Enabled {
		return &Breaker{}
	}

	settings := gobreaker.Settings{
		Name:        "stripe_api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval.Duration,
		Timeout:     cfg.Timeout.Duration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if cfg.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= cfg.ConsecutiveFailures {
				return true
			}
			if cfg.FailureRatio > 0 && cfg.MinRequests > 0 && counts.Requests >= cfg.MinRequests {
				failureRate := float64(counts.TotalFailures) / float64(counts.Requests)
				if failureRate >= cfg.FailureRatio {
					return true
				}
			}
			return false
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuitbreaker.state_changed")
		},
	}

	return &Breaker{
		cb:      gobreaker.NewCircuitBreaker(settings),
		enabled: true,
	}
}

// Execute wraps a call with circuit breaker protection. A nil Breaker is a
// pass-through.
func (b *Breaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	if b == nil || !b.enabled {
		return fn()
	}
	return b.cb.Execute(fn)
}

// State returns the current breaker state for health reporting.
func (b *Breaker) State() string {
	if b == nil || !b.enabled {
		return "disabled"
	}
	return b.cb.State().String()
}
