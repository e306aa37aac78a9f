package ai

import (
	"context"
	"net/http"
)

// Provider is the contract every chat completion adapter implements. An
// adapter instance is created once, holds an exclusive pooled HTTP client,
// and is reused across many streaming calls; it is safe for concurrent use.
type Provider interface {
	// StreamCompletion builds the provider-specific request from the generic
	// conversation and begins streaming. Pre-network failures (empty
	// credential, bad URL, serialization) and the status-line mapping are
	// returned as a non-nil error before any fragment exists; after that the
	// single terminal signal travels through the returned stream. All errors,
	// either way, are *Error values from the taxonomy.
	StreamCompletion(ctx context.Context, request CompletionRequest) (*CompletionStream, error)

	// UpdateAPIKey atomically replaces the stored credential. Calls already
	// in flight keep the credential they captured at start; the next call
	// uses the new value.
	UpdateAPIKey(apiKey string)

	// WithAPIKey sets the API key and returns the provider for chaining.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHTTPClient replaces the HTTP client used for outbound requests.
	// Useful for injecting custom timeouts or test doubles.
	WithHTTPClient(httpClient *http.Client) Provider
}
