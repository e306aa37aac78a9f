package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai"
)

func writeSSE(writer http.ResponseWriter, data string) {
	fmt.Fprintf(writer, "data: %s\n\n", data)
	if flusher, ok := writer.(http.Flusher); ok {
		flusher.Flush()
	}
}

func contentChunk(text string) string {
	return fmt.Sprintf(`{"id":"gen-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":%q}}]}`, text)
}

func newTestProvider(serverURL string) *OpenRouterProvider {
	provider := New()
	provider.WithBaseURL(serverURL)
	provider.WithAPIKey("test-key")
	return provider
}

func TestStreamCompletion_ContentStreaming_EmitsFragmentsInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/event-stream")
		writer.WriteHeader(http.StatusOK)

		writeSSE(writer, contentChunk("routed"))
		writeSSE(writer, contentChunk(" reply"))
		writeSSE(writer, "[DONE]")
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	stream, err := provider.StreamCompletion(context.Background(), ai.CompletionRequest{
		Model:    "anthropic/claude-sonnet-4",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "Hi"}},
	})
	if err != nil {
		t.Fatalf("StreamCompletion returned unexpected error: %v", err)
	}

	text, collectErr := stream.Collect()
	if collectErr != nil {
		t.Fatalf("unexpected error: %v", collectErr)
	}
	if text != "routed reply" {
		t.Errorf("got %q, want %q", text, "routed reply")
	}
}

// TestStreamCompletion_UpstreamShapeVariations_AreTolerated verifies the
// path-based decoder against frames upstreams actually send: null content,
// missing delta, extra unknown fields, and processing comments.
func TestStreamCompletion_UpstreamShapeVariations_AreTolerated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/event-stream")
		writer.WriteHeader(http.StatusOK)

		fmt.Fprint(writer, ": OPENROUTER PROCESSING\n\n")
		writeSSE(writer, `{"choices":[{"delta":{"role":"assistant","content":null}}]}`)
		writeSSE(writer, `{"choices":[{"delta":{"content":"kept"},"provider_meta":{"upstream":"anthropic"}}]}`)
		writeSSE(writer, `{"choices":[{"finish_reason":"stop"}]}`)
		writeSSE(writer, `not json`)
		writeSSE(writer, contentChunk(" twice"))
		writeSSE(writer, "[DONE]")
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	stream, err := provider.StreamCompletion(context.Background(), ai.CompletionRequest{
		Model:    "openai/gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "Hi"}},
	})
	if err != nil {
		t.Fatalf("StreamCompletion returned unexpected error: %v", err)
	}

	text, collectErr := stream.Collect()
	if collectErr != nil {
		t.Fatalf("unexpected error: %v", collectErr)
	}
	if text != "kept twice" {
		t.Errorf("got %q, want %q", text, "kept twice")
	}
}

// TestStreamCompletion_MidStreamErrorFrame_TerminatesWithServerKind verifies
// that an error object on a 200 stream becomes the terminal failure.
func TestStreamCompletion_MidStreamErrorFrame_TerminatesWithServerKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/event-stream")
		writer.WriteHeader(http.StatusOK)

		writeSSE(writer, contentChunk("partial"))
		writeSSE(writer, `{"error":{"code":502,"message":"upstream provider unavailable"}}`)
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	stream, err := provider.StreamCompletion(context.Background(), ai.CompletionRequest{
		Model:    "openai/gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "Hi"}},
	})
	if err != nil {
		t.Fatalf("StreamCompletion returned unexpected error: %v", err)
	}

	text, collectErr := stream.Collect()
	if !errors.Is(collectErr, ai.ErrServer) {
		t.Fatalf("expected server-failure kind, got %v", collectErr)
	}
	if text != "partial" {
		t.Errorf("partial output must survive the failure: got %q", text)
	}
}

func TestStreamCompletion_RateLimited_YieldsRateLimitKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusTooManyRequests)
		_, _ = writer.Write([]byte(`{"error":{"code":429,"message":"Rate limit exceeded: free tier"}}`))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	_, err := provider.StreamCompletion(context.Background(), ai.CompletionRequest{
		Model:    "openai/gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "Hi"}},
	})
	if !errors.Is(err, ai.ErrRateLimited) {
		t.Fatalf("expected rate-limit kind, got %v", err)
	}
}

func TestStreamCompletion_EmptyAPIKey_FailsBeforeAnyNetworkIO(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
	}))
	defer server.Close()

	provider := New()
	provider.WithBaseURL(server.URL)
	provider.WithAPIKey("")

	_, err := provider.StreamCompletion(context.Background(), ai.CompletionRequest{
		Model:    "openai/gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "Hi"}},
	})
	if !errors.Is(err, ai.ErrInvalidCredential) {
		t.Fatalf("expected invalid-credential kind, got %v", err)
	}
	if requestCount != 0 {
		t.Errorf("expected zero network requests, server saw %d", requestCount)
	}
}

// TestStreamCompletion_AttributionHeaders_SentWhenConfigured verifies the
// optional HTTP-Referer and X-Title headers reach the gateway.
func TestStreamCompletion_AttributionHeaders_SentWhenConfigured(t *testing.T) {
	var referer, title, authorization string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		referer = request.Header.Get("HTTP-Referer")
		title = request.Header.Get("X-Title")
		authorization = request.Header.Get("Authorization")
		writer.Header().Set("Content-Type", "text/event-stream")
		writer.WriteHeader(http.StatusOK)
		writeSSE(writer, "[DONE]")
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	provider.referer = "https://example.com"
	provider.title = "example-app"

	stream, err := provider.StreamCompletion(context.Background(), ai.CompletionRequest{
		Model:    "openai/gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "Hi"}},
	})
	if err != nil {
		t.Fatalf("StreamCompletion returned unexpected error: %v", err)
	}
	_, _ = stream.Collect()

	if referer != "https://example.com" {
		t.Errorf("HTTP-Referer: got %q", referer)
	}
	if title != "example-app" {
		t.Errorf("X-Title: got %q", title)
	}
	if authorization != "Bearer test-key" {
		t.Errorf("Authorization: got %q", authorization)
	}
}
