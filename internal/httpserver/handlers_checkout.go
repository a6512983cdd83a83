package httpserver

import (
	"io"
	"net/http"
	"time"

	"github.com/TheWizler/unusualpills-site/internal/checkout"
	apierrors "github.com/TheWizler/unusualpills-site/internal/errors"
	"github.com/TheWizler/unusualpills-site/internal/logger"
	"github.com/TheWizler/unusualpills-site/pkg/responders"
)

// maxBodyBytes caps the checkout payload size. Carts are small; anything
// bigger than this is not a cart.
const maxBodyBytes = 1 << 20

// createCheckoutResponse carries the Stripe-hosted redirect back to the cart page.
type createCheckoutResponse struct {
	URL string `json:"url"`
}

// createCheckout validates the posted cart, computes the shirt promotion, and
// returns the checkout session redirect URL.
func (h *handlers) createCheckout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Warn().Err(err).Msg("checkout.body_unreadable")
		apierrors.WriteError(w, apierrors.ErrCodeMalformedPayload, "could not read request body")
		return
	}

	rc := checkout.RequestContext{
		Method: r.Method,
		Body:   body,
		Header: map[string]string{
			"origin": r.Header.Get("Origin"),
			"host":   r.Host,
		},
	}

	sess, err := h.checkout.CreateSession(r.Context(), rc)
	if err != nil {
		code := apierrors.CodeOf(err)
		h.metrics.ObserveCheckout(string(code), time.Since(start))
		log.Warn().
			Err(err).
			Str("code", string(code)).
			Msg("checkout.failed")
		apierrors.WriteError(w, code, err.Error())
		return
	}

	h.metrics.ObserveCheckout("success", time.Since(start))
	log.Info().
		Str("session_id", sess.ID).
		Dur("elapsed", time.Since(start)).
		Msg("checkout.session_created")

	responders.JSON(w, http.StatusOK, createCheckoutResponse{URL: sess.URL})
}
