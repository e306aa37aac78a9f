package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBodySize caps how much of a non-2xx response body is read for the
// error message. Enforced via io.LimitReader so a rogue response cannot
// allocate unbounded memory.
const maxErrorBodySize int64 = 64 * 1024

// Sentinel errors distinguishing local request-construction failures from
// transport failures. Both occur before any bytes reach the network, so
// adapters map them to their pre-network error kinds.
var (
	// ErrEncodeBody indicates the request body could not be serialized to JSON.
	ErrEncodeBody = errors.New("encode request body")
	// ErrBuildRequest indicates the HTTP request could not be constructed,
	// typically because the URL is malformed.
	ErrBuildRequest = errors.New("build request")
)

// HTTPStatusError is returned by [DoPostStream] when the server answers with a
// non-2xx status. It carries the status code and a capped copy of the response
// body so adapters can map the status onto their error taxonomy before any
// event frame is read.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("non-2xx status %d", e.StatusCode)
	}
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, TruncateString(e.Body, DefaultMaxStringLength))
}

// DoPostStream performs an HTTP POST with a JSON body and returns the response
// with its body left open for SSE reading. The caller owns the response body
// and must close it when done.
//
// Error cases, in order of detection:
//   - body serialization failure wraps [ErrEncodeBody] (no network I/O)
//   - request construction failure wraps [ErrBuildRequest] (no network I/O)
//   - transport failure is returned as-is, wrapped
//   - a non-2xx status returns a [*HTTPStatusError]; the body is read (capped)
//     and closed before returning
//
// When apiKey is non-empty it is sent as a Bearer token; providers with a
// different auth scheme pass an empty apiKey and set their own header via a
// [HeaderOption].
func DoPostStream(ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeBody, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildRequest, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	// Custom headers are applied last so they can override the defaults.
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	response, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending stream request: %w", err)
	}

	// Map the status before reading any event frame. The error body is read
	// (capped) only to carry the provider's message.
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		defer CloseWithLog(response.Body)
		errorBody, readErr := io.ReadAll(io.LimitReader(response.Body, maxErrorBodySize))
		if readErr != nil {
			return nil, &HTTPStatusError{StatusCode: response.StatusCode}
		}
		return nil, &HTTPStatusError{StatusCode: response.StatusCode, Body: string(errorBody)}
	}

	return response, nil
}
