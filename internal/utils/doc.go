// Package utils provides shared low-level helpers used throughout the
// internals. It covers the streaming HTTP POST used to open Server-Sent
// Events connections against chat completion APIs, the line-oriented
// [SSEScanner] that decodes the event framing, construction of the pooled
// streaming [net/http.Client], and small string utilities.
//
// Key entry points: [DoPostStream] together with [SSEScanner] for SSE
// streaming, [NewStreamingClient] for the shared transport configuration,
// and [TruncateString] for log-safe payload previews.
package utils
