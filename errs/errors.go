// Package errs holds the sentinel errors and the status-carrying error type
// that handlers return to the Fiber error handler.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("data service request failed")
	ErrInternal     = errors.New("internal server error")
)

// APIError carries an HTTP status alongside the message shown to the client.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
	Cause      error
	kind       error
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap lets errors.Is match both the sentinel kind and the cause.
func (e *APIError) Unwrap() []error {
	var out []error
	if e.kind != nil {
		out = append(out, e.kind)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

func NewNotFoundError(message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Message: message, kind: ErrNotFound}
}

func NewBadRequestError(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Message: message, kind: ErrBadRequest}
}

func NewBadRequestErrorWithDetails(message, details string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Message: message, Details: details, kind: ErrBadRequest}
}

func NewUnauthorizedError(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Message: message, kind: ErrUnauthorized}
}

// NewUpstreamError wraps a failure reported by the hosted data or auth API.
func NewUpstreamError(message string, cause error) *APIError {
	return &APIError{StatusCode: http.StatusBadGateway, Message: message, Cause: cause, kind: ErrUpstream}
}

func NewInternalError(message string, cause error) *APIError {
	return &APIError{StatusCode: http.StatusInternalServerError, Message: message, Cause: cause, kind: ErrInternal}
}

// StatusCode resolves the HTTP status for any error; unknown errors are 500.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// PublicMessage is the text safe to show a client: the APIError message and
// details without the cause. Unknown server-side errors are masked.
func PublicMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Details != "" {
			return apiErr.Message + ": " + apiErr.Details
		}
		return apiErr.Message
	}
	if StatusCode(err) >= http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
