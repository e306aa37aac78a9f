package anthropic

import (
	"net/http"
	"os"
	"sync"

	"github.com/Ophelia-Chat/ophelia-sub001/internal/utils"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai"
)

const (
	// defaultBaseURL is the canonical base URL for Anthropic's Messages API.
	defaultBaseURL = "https://api.anthropic.com/v1"

	// messagesEndpoint is the path for the Messages API endpoint.
	messagesEndpoint = "/messages"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses this to version-lock response formats independently of the URL.
	anthropicVersion = "2023-06-01"

	// defaultMaxTokens is the output ceiling sent on every request; Anthropic
	// requires max_tokens and rejects requests without it.
	defaultMaxTokens = 4096
)

// AnthropicProvider implements [ai.Provider] for Anthropic's Messages API.
// The credential is the only field mutated after construction; it sits behind
// its own lock so concurrent streaming calls never serialize on each other,
// and each call reads it exactly once at start.
type AnthropicProvider struct {
	mu      sync.RWMutex
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns an [AnthropicProvider] initialized from environment variables.
// It reads ANTHROPIC_API_KEY for authentication and ANTHROPIC_API_BASE_URL
// for the endpoint base (defaulting to https://api.anthropic.com/v1 when
// unset). The provider owns its pooled streaming HTTP client exclusively.
func New() *AnthropicProvider {
	baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &AnthropicProvider{
		apiKey:  os.Getenv("ANTHROPIC_API_KEY"),
		baseURL: baseURL,
		client:  utils.NewStreamingClient(),
	}
}

// UpdateAPIKey atomically replaces the stored credential. Streaming calls
// already in flight keep the key they captured at call start.
func (provider *AnthropicProvider) UpdateAPIKey(apiKey string) {
	provider.mu.Lock()
	provider.apiKey = apiKey
	provider.mu.Unlock()
}

// currentAPIKey returns the credential for a new call. Read once per call so
// a concurrent rotation never affects a stream in progress.
func (provider *AnthropicProvider) currentAPIKey() string {
	provider.mu.RLock()
	defer provider.mu.RUnlock()
	return provider.apiKey
}

// WithAPIKey sets the API key and returns the provider so calls can be
// chained. It overrides the value read from ANTHROPIC_API_KEY.
func (provider *AnthropicProvider) WithAPIKey(apiKey string) ai.Provider {
	provider.UpdateAPIKey(apiKey)
	return provider
}

// WithBaseURL overrides the API base URL and returns the provider so calls
// can be chained. Use this when targeting a proxy or local testing endpoint.
func (provider *AnthropicProvider) WithBaseURL(baseURL string) ai.Provider {
	provider.baseURL = baseURL
	return provider
}

// WithHTTPClient replaces the default streaming client and returns the
// provider so calls can be chained. Useful for injecting custom timeouts,
// transport layers, or test doubles.
func (provider *AnthropicProvider) WithHTTPClient(httpClient *http.Client) ai.Provider {
	provider.client = httpClient
	return provider
}

// buildHeaders constructs the headers required for every Anthropic request.
// x-api-key carries the credential (Anthropic does not use Bearer tokens) and
// anthropic-version pins the wire format.
func buildHeaders(apiKey string) []utils.HeaderOption {
	return []utils.HeaderOption{
		{Key: "x-api-key", Value: apiKey},
		{Key: "anthropic-version", Value: anthropicVersion},
	}
}
