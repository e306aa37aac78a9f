package utils

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestDoPostStream_Success_LeavesBodyOpen verifies that a 200 response is
// returned with its body still readable for SSE consumption.
func TestDoPostStream_Success_LeavesBodyOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", request.Method)
		}
		if contentType := request.Header.Get("Content-Type"); contentType != "application/json" {
			t.Errorf("expected application/json content type, got %q", contentType)
		}
		if accept := request.Header.Get("Accept"); accept != "text/event-stream" {
			t.Errorf("expected text/event-stream accept header, got %q", accept)
		}
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte("data: hi\n\n"))
	}))
	defer server.Close()

	response, err := DoPostStream(context.Background(), server.Client(), server.URL, "key", map[string]string{"model": "m"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer CloseWithLog(response.Body)

	body, readErr := io.ReadAll(response.Body)
	if readErr != nil {
		t.Fatalf("reading open body: %v", readErr)
	}
	if string(body) != "data: hi\n\n" {
		t.Errorf("unexpected body: %q", string(body))
	}
}

// TestDoPostStream_BearerAuth_SetsAuthorizationHeader verifies the default
// bearer-token credential placement.
func TestDoPostStream_BearerAuth_SetsAuthorizationHeader(t *testing.T) {
	var seenAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenAuthorization = request.Header.Get("Authorization")
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	response, err := DoPostStream(context.Background(), server.Client(), server.URL, "sk-test", nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	CloseWithLog(response.Body)

	if seenAuthorization != "Bearer sk-test" {
		t.Errorf("Authorization: got %q, want %q", seenAuthorization, "Bearer sk-test")
	}
}

// TestDoPostStream_HeaderOptions_OverrideDefaults verifies that custom header
// options are applied after the defaults and can replace them.
func TestDoPostStream_HeaderOptions_OverrideDefaults(t *testing.T) {
	var seenAPIKey, seenAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenAPIKey = request.Header.Get("x-api-key")
		seenAuthorization = request.Header.Get("Authorization")
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	response, err := DoPostStream(context.Background(), server.Client(), server.URL, "", nil,
		HeaderOption{Key: "x-api-key", Value: "vendor-key"},
	)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	CloseWithLog(response.Body)

	if seenAPIKey != "vendor-key" {
		t.Errorf("x-api-key: got %q, want %q", seenAPIKey, "vendor-key")
	}
	if seenAuthorization != "" {
		t.Errorf("expected no Authorization header when apiKey is empty, got %q", seenAuthorization)
	}
}

// TestDoPostStream_NonOKStatus_ReturnsHTTPStatusError verifies that non-2xx
// responses surface as a typed status error carrying the body message, with
// the body already closed.
func TestDoPostStream_NonOKStatus_ReturnsHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusTooManyRequests)
		_, _ = writer.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer server.Close()

	_, err := DoPostStream(context.Background(), server.Client(), server.URL, "key", nil)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}

	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *HTTPStatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode: got %d, want %d", statusErr.StatusCode, http.StatusTooManyRequests)
	}
	if statusErr.Body != `{"error":{"message":"slow down"}}` {
		t.Errorf("unexpected error body: %q", statusErr.Body)
	}
}

// TestDoPostStream_UnserializableBody_WrapsErrEncodeBody verifies that a body
// that cannot be marshaled fails locally before any network I/O.
func TestDoPostStream_UnserializableBody_WrapsErrEncodeBody(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
	}))
	defer server.Close()

	_, err := DoPostStream(context.Background(), server.Client(), server.URL, "key", make(chan int))
	if !errors.Is(err, ErrEncodeBody) {
		t.Fatalf("expected ErrEncodeBody, got %v", err)
	}
	if requestCount != 0 {
		t.Errorf("expected no network request, server saw %d", requestCount)
	}
}

// TestDoPostStream_MalformedURL_WrapsErrBuildRequest verifies that an invalid
// URL fails locally before any network I/O.
func TestDoPostStream_MalformedURL_WrapsErrBuildRequest(t *testing.T) {
	_, err := DoPostStream(context.Background(), http.DefaultClient, "http://bad url\x7f", "key", nil)
	if !errors.Is(err, ErrBuildRequest) {
		t.Fatalf("expected ErrBuildRequest, got %v", err)
	}
}

// TestDoPostStream_CancelledContext_ReturnsTransportError verifies that an
// already-cancelled context aborts the request with a transport error that
// wraps context.Canceled.
func TestDoPostStream_CancelledContext_ReturnsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DoPostStream(ctx, server.Client(), server.URL, "key", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected error wrapping context.Canceled, got %v", err)
	}
}
