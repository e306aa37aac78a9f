package utils

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	// connectTimeout bounds the TCP connect plus TLS handshake. A provider
	// that cannot accept a connection within this window is treated as down.
	connectTimeout = 10 * time.Second

	// headerTimeout bounds the wait for the response status line and headers.
	// This defends against providers that accept the connection and then hang
	// before emitting the first byte.
	headerTimeout = 30 * time.Second

	// totalTimeout bounds the entire call, body included. Streaming
	// completions can legitimately run for minutes, so this ceiling is much
	// larger than the connect and header waits; it exists to cut off runaway
	// generations, not slow ones.
	totalTimeout = 5 * time.Minute
)

// HeaderOption is a key/value pair applied to an outgoing request. Options are
// applied after the default headers, so an option can override the default
// Authorization header when a provider authenticates differently.
type HeaderOption struct {
	Key   string
	Value string
}

// NewStreamingClient returns an [http.Client] configured for long-lived SSE
// connections: pooled keep-alive transport, bounded connect and first-byte
// waits, and a large total-call ceiling. Each provider adapter owns one
// instance exclusively; concurrent calls through the same adapter share the
// underlying connection pool.
func NewStreamingClient() *http.Client {
	return &http.Client{
		Timeout: totalTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   connectTimeout,
			ResponseHeaderTimeout: headerTimeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// CloseWithLog closes the given closer and logs any close error instead of
// returning it. Used in defers where a close failure must not override the
// function's primary error.
func CloseWithLog(closer io.Closer) {
	if err := closer.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}
