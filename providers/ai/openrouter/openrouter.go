package openrouter

import (
	"net/http"
	"os"
	"sync"

	"github.com/Ophelia-Chat/ophelia-sub001/internal/utils"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai"
)

const (
	// defaultBaseURL is the canonical base URL for the OpenRouter gateway.
	defaultBaseURL = "https://openrouter.ai/api/v1"

	// chatCompletionsEndpoint is the OpenAI-compatible completions path.
	chatCompletionsEndpoint = "/chat/completions"
)

// OpenRouterProvider implements [ai.Provider] for the OpenRouter gateway.
// The credential sits behind its own lock; each call reads it exactly once
// at start so a concurrent rotation never affects a stream in progress.
type OpenRouterProvider struct {
	mu      sync.RWMutex
	apiKey  string
	baseURL string
	client  *http.Client

	// Optional attribution headers OpenRouter uses for app rankings.
	referer string
	title   string
}

// New returns an [OpenRouterProvider] initialized from environment
// variables. It reads OPENROUTER_API_KEY for authentication,
// OPENROUTER_API_BASE_URL for the endpoint base (defaulting to
// https://openrouter.ai/api/v1 when unset), and the optional
// OPENROUTER_SITE_URL and OPENROUTER_APP_NAME attribution values.
func New() *OpenRouterProvider {
	baseURL := os.Getenv("OPENROUTER_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OpenRouterProvider{
		apiKey:  os.Getenv("OPENROUTER_API_KEY"),
		baseURL: baseURL,
		client:  utils.NewStreamingClient(),
		referer: os.Getenv("OPENROUTER_SITE_URL"),
		title:   os.Getenv("OPENROUTER_APP_NAME"),
	}
}

// UpdateAPIKey atomically replaces the stored credential. Streaming calls
// already in flight keep the key they captured at call start.
func (provider *OpenRouterProvider) UpdateAPIKey(apiKey string) {
	provider.mu.Lock()
	provider.apiKey = apiKey
	provider.mu.Unlock()
}

func (provider *OpenRouterProvider) currentAPIKey() string {
	provider.mu.RLock()
	defer provider.mu.RUnlock()
	return provider.apiKey
}

// WithAPIKey sets the API key and returns the provider so calls can be
// chained. It overrides the value read from OPENROUTER_API_KEY.
func (provider *OpenRouterProvider) WithAPIKey(apiKey string) ai.Provider {
	provider.UpdateAPIKey(apiKey)
	return provider
}

// WithBaseURL overrides the gateway base URL and returns the provider so
// calls can be chained.
func (provider *OpenRouterProvider) WithBaseURL(baseURL string) ai.Provider {
	provider.baseURL = baseURL
	return provider
}

// WithHTTPClient replaces the default streaming client and returns the
// provider so calls can be chained.
func (provider *OpenRouterProvider) WithHTTPClient(httpClient *http.Client) ai.Provider {
	provider.client = httpClient
	return provider
}

// buildHeaders returns the optional attribution headers. Authentication is
// handled by the Bearer token, not here.
func (provider *OpenRouterProvider) buildHeaders() []utils.HeaderOption {
	var headers []utils.HeaderOption
	if provider.referer != "" {
		headers = append(headers, utils.HeaderOption{Key: "HTTP-Referer", Value: provider.referer})
	}
	if provider.title != "" {
		headers = append(headers, utils.HeaderOption{Key: "X-Title", Value: provider.title})
	}
	return headers
}
