// Package ratelimit applies request rate limits in front of the checkout
// endpoint. Limits are generous: they exist to stop obvious spam, not to
// restrict legitimate shoppers.
package ratelimit

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/TheWizler/unusualpills-site/internal/metrics"
	"github.com/TheWizler/unusualpills-site/pkg/responders"
)

// Config holds rate limiting configuration.
type Config struct {
	// Global rate limiting (across all clients)
	GlobalEnabled bool
	GlobalLimit   int // requests per window
	GlobalWindow  time.Duration

	// Per-IP rate limiting
	PerIPEnabled bool
	PerIPLimit   int
	PerIPWindow  time.Duration

	// Metrics collector (optional)
	Metrics *metrics.Metrics
}

// rateLimitResponse is the JSON body returned on 429.
type rateLimitResponse struct {
	Error             string `json:"error"`
	RetryAfterSeconds int    `json:"retry_after_seconds"`
}

// GlobalLimiter limits total request throughput across all clients.
func GlobalLimiter(cfg Config) func(http.Handler) http.Handler {
	if !cfg.GlobalEnabled || cfg.GlobalLimit <= 0 {
		return passthrough
	}
	return httprate.Limit(
		cfg.GlobalLimit,
		cfg.GlobalWindow,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return "global", nil
		}),
		httprate.WithLimitHandler(limitHandler("global", cfg)),
	)
}

// IPLimiter limits request throughput per client IP.
func IPLimiter(cfg Config) func(http.Handler) http.Handler {
	if !cfg.PerIPEnabled || cfg.PerIPLimit <= 0 {
		return passthrough
	}
	return httprate.Limit(
		cfg.PerIPLimit,
		cfg.PerIPWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(limitHandler("per_ip", cfg)),
	)
}

// limitHandler writes the 429 response and records the hit.
func limitHandler(scope string, cfg Config) http.HandlerFunc {
	window := cfg.GlobalWindow
	if scope == "per_ip" {
		window = cfg.PerIPWindow
	}
	retryAfter := int(window.Seconds())
	if retryAfter <= 0 {
		retryAfter = 60
	}
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Metrics.ObserveRateLimitHit(scope)
		responders.JSON(w, http.StatusTooManyRequests, rateLimitResponse{
			Error:             "rate limit exceeded, slow down",
			RetryAfterSeconds: retryAfter,
		})
	}
}

func passthrough(next http.Handler) http.Handler {
	return next
}
