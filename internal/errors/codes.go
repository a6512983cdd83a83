package errors

// ErrorCode represents a machine-readable error identifier for frontend error handling.
type ErrorCode string

// Request validation errors (detected before any Stripe call).
const (
	ErrCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrCodeMalformedPayload ErrorCode = "malformed_payload"
	ErrCodeEmptyCart        ErrorCode = "empty_cart"
	ErrCodeInvalidPrice     ErrorCode = "invalid_price"
	ErrCodeInvalidQuantity  ErrorCode = "invalid_quantity"
	ErrCodeInvalidCurrency  ErrorCode = "invalid_currency"
)

// External service errors.
const (
	ErrCodeStripeError ErrorCode = "stripe_error"
)

// Internal/system errors.
const (
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeConfigError   ErrorCode = "config_error"
)

// IsRetryable returns whether an error code represents a retryable error.
// Validation failures are deterministic and never retryable; provider
// errors may be transient.
func (e ErrorCode) IsRetryable() bool {
	return e == ErrCodeStripeError
}

// HTTPStatus returns the appropriate HTTP status code for this error.
// The checkout endpoint keeps the legacy storefront contract: 405 for a
// wrong method, 400 for every cart or provider failure.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrCodeMethodNotAllowed:
		return 405
	case ErrCodeMalformedPayload,
		ErrCodeEmptyCart,
		ErrCodeInvalidPrice,
		ErrCodeInvalidQuantity,
		ErrCodeInvalidCurrency,
		ErrCodeStripeError:
		return 400
	default:
		return 500
	}
}
