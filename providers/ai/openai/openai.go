package openai

import (
	"net/http"
	"os"
	"sync"

	"github.com/Ophelia-Chat/ophelia-sub001/internal/utils"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai"
)

const (
	// defaultBaseURL is the canonical base URL for OpenAI's API.
	defaultBaseURL = "https://api.openai.com/v1"

	// chatCompletionsEndpoint is the path for the chat completions endpoint.
	chatCompletionsEndpoint = "/chat/completions"
)

// OpenAIProvider implements [ai.Provider] for OpenAI's Chat Completions API.
// The credential sits behind its own lock so concurrent streaming calls never
// serialize on each other; each call reads it exactly once at start.
type OpenAIProvider struct {
	mu      sync.RWMutex
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns an [OpenAIProvider] initialized from environment variables.
// It reads OPENAI_API_KEY for authentication and OPENAI_API_BASE_URL for the
// endpoint base (defaulting to https://api.openai.com/v1 when unset).
func New() *OpenAIProvider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OpenAIProvider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		client:  utils.NewStreamingClient(),
	}
}

// UpdateAPIKey atomically replaces the stored credential. Streaming calls
// already in flight keep the key they captured at call start.
func (provider *OpenAIProvider) UpdateAPIKey(apiKey string) {
	provider.mu.Lock()
	provider.apiKey = apiKey
	provider.mu.Unlock()
}

func (provider *OpenAIProvider) currentAPIKey() string {
	provider.mu.RLock()
	defer provider.mu.RUnlock()
	return provider.apiKey
}

// WithAPIKey sets the API key and returns the provider so calls can be
// chained. It overrides the value read from OPENAI_API_KEY.
func (provider *OpenAIProvider) WithAPIKey(apiKey string) ai.Provider {
	provider.UpdateAPIKey(apiKey)
	return provider
}

// WithBaseURL overrides the API base URL and returns the provider so calls
// can be chained. Use this when targeting a proxy or local testing endpoint.
func (provider *OpenAIProvider) WithBaseURL(baseURL string) ai.Provider {
	provider.baseURL = baseURL
	return provider
}

// WithHTTPClient replaces the default streaming client and returns the
// provider so calls can be chained.
func (provider *OpenAIProvider) WithHTTPClient(httpClient *http.Client) ai.Provider {
	provider.client = httpClient
	return provider
}
