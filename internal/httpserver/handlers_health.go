package httpserver

import (
	"net/http"

	"github.com/TheWizler/unusualpills-site/pkg/responders"
)

// health reports liveness plus the state of the Stripe circuit breaker. An
// open breaker means checkouts are currently failing fast, so the endpoint
// degrades to 503 to let the load balancer rotate traffic away.
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	breakerState := "disabled"
	if h.breaker != nil {
		breakerState = h.breaker.State()
	}

	status := "ok"
	code := http.StatusOK
	if breakerState == "open" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	responders.JSON(w, code, map[string]any{
		"status":         status,
		"stripe_breaker": breakerState,
		"mode":           h.cfg.Stripe.Mode,
	})
}
