package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/TheWizler/unusualpills-site/pkg/responders"
)

// ErrorResponse is the error format returned to the storefront. The cart page
// only surfaces the message string; the code is there for scripted clients.
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code,omitempty"`
}

// WriteError writes a standardized error response with the status implied by
// the code.
func WriteError(w http.ResponseWriter, code ErrorCode, message string) {
	responders.JSON(w, code.HTTPStatus(), ErrorResponse{Error: message, Code: code})
}

// Coded is an error carrying an ErrorCode alongside the message. Pipeline
// stages return it so the HTTP layer can map failures without string matching.
type Coded struct {
	Code    ErrorCode
	Message string
}

// New creates a coded error.
func New(code ErrorCode, message string) *Coded {
	return &Coded{Code: code, Message: message}
}

func (c *Coded) Error() string {
	return c.Message
}

// CodeOf extracts the ErrorCode from err, walking wrapped errors.
// Unknown errors map to internal_error.
func CodeOf(err error) ErrorCode {
	var coded *Coded
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ErrCodeInternalError
}
