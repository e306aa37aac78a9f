package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/Ophelia-Chat/ophelia-sub001/internal/utils"
)

// The closed set of failure kinds every adapter maps onto. Callers dispatch
// with errors.Is against these sentinels; adding a provider must never add a
// kind, only map that provider's codes onto this set.
var (
	// ErrInvalidCredential: the credential is empty or the server rejected it (401).
	ErrInvalidCredential = errors.New("invalid or missing credential")
	// ErrBadURL: the request URL could not be constructed.
	ErrBadURL = errors.New("malformed request URL")
	// ErrInvalidRequest: the request body could not be serialized, or the
	// server rejected the request as malformed (400).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidResponse: the server response could not be interpreted.
	ErrInvalidResponse = errors.New("invalid server response")
	// ErrRateLimited: the server throttled the request (429).
	ErrRateLimited = errors.New("rate limited")
	// ErrRejected: the server refused the request with another 4xx status.
	ErrRejected = errors.New("request rejected by server")
	// ErrServer: the server failed (5xx or an unexpected status).
	ErrServer = errors.New("server error")
	// ErrNetwork: the transport failed (connect, read, or timeout).
	ErrNetwork = errors.New("network failure")
	// ErrCancelled: the caller cancelled the call.
	ErrCancelled = errors.New("cancelled")
)

// Error is the uniform failure type surfaced by every adapter operation.
// Kind is always one of the sentinel kinds above, so
// errors.Is(err, ai.ErrRateLimited) works on any adapter error.
type Error struct {
	Kind    error
	Status  int    // HTTP status when the server answered; 0 otherwise
	Message string // provider or transport detail
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Kind.Error(), e.Message, e.Status)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s (status %d)", e.Kind.Error(), e.Status)
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes the kind sentinel to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError builds an Error of the given kind with a detail message.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Cancelled builds the cancellation error for a context whose work was cut
// short by the caller.
func Cancelled(ctx context.Context) *Error {
	message := ""
	if ctxErr := ctx.Err(); ctxErr != nil {
		message = ctxErr.Error()
	}
	return &Error{Kind: ErrCancelled, Message: message}
}

// ErrorFromStatus maps an HTTP status and the (possibly JSON) error body onto
// the taxonomy. Mapping happens before any event frame is read.
func ErrorFromStatus(status int, body string) *Error {
	message := errorMessageFromBody(body)
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: ErrInvalidCredential, Status: status, Message: message}
	case status == http.StatusTooManyRequests:
		return &Error{Kind: ErrRateLimited, Status: status, Message: message}
	case status == http.StatusBadRequest:
		return &Error{Kind: ErrInvalidRequest, Status: status, Message: message}
	case status >= 400 && status < 500:
		return &Error{Kind: ErrRejected, Status: status, Message: message}
	default:
		return &Error{Kind: ErrServer, Status: status, Message: message}
	}
}

// ClassifyRequestError translates a failure from the streaming POST into the
// taxonomy. Local failures (serialization, URL construction) map to their
// pre-network kinds, a non-2xx status maps via [ErrorFromStatus], caller
// cancellation wins over a transport error observed at the same time, and
// everything else is a generic network failure.
func ClassifyRequestError(ctx context.Context, err error) *Error {
	var statusErr *utils.HTTPStatusError
	switch {
	case errors.As(err, &statusErr):
		return ErrorFromStatus(statusErr.StatusCode, statusErr.Body)
	case errors.Is(err, utils.ErrEncodeBody):
		return &Error{Kind: ErrInvalidRequest, Message: err.Error()}
	case errors.Is(err, utils.ErrBuildRequest):
		return &Error{Kind: ErrBadURL, Message: err.Error()}
	case ctx.Err() != nil:
		return Cancelled(ctx)
	default:
		return &Error{Kind: ErrNetwork, Message: err.Error()}
	}
}

// errorMessageFromBody pulls a human-readable message out of a provider error
// body. Providers commonly answer {"error":{"message":...}} or {"error":...};
// anything else is used as-is, truncated for log safety.
func errorMessageFromBody(body string) string {
	if body == "" {
		return ""
	}
	if message := gjson.Get(body, "error.message"); message.Exists() {
		return message.String()
	}
	if errField := gjson.Get(body, "error"); errField.Exists() && errField.Type == gjson.String {
		return errField.String()
	}
	return utils.TruncateString(body, utils.DefaultMaxStringLength)
}
