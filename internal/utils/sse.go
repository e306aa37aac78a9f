package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	// maxSSELineSize is the maximum size of a single SSE line (1 MB). The
	// default bufio.Scanner limit is 64 KiB, which is too small for large
	// events such as long completion deltas. A longer line surfaces as a
	// wrapped bufio.ErrTooLong from Next().
	maxSSELineSize = 1 * 1024 * 1024

	// dataPrefix marks the frames that carry an event payload. Every other
	// line (comments, blank keep-alives, event:/id:/retry: fields) is noise.
	dataPrefix = "data:"

	// doneSentinel is the literal end-of-stream marker used by
	// OpenAI-compatible APIs. It is never valid JSON and must not be parsed.
	doneSentinel = "[DONE]"
)

// SSEScanner reads Server-Sent Events frames from an io.Reader one
// newline-delimited line at a time. Only "data:" frames are surfaced;
// comments, empty keep-alive lines, and other SSE fields are skipped.
// The [DONE] sentinel terminates the scan as a clean end of stream.
type SSEScanner struct {
	scanner *bufio.Scanner
}

// NewSSEScanner creates an SSEScanner over reader. Individual lines up to
// maxSSELineSize are supported.
func NewSSEScanner(reader io.Reader) *SSEScanner {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELineSize)
	return &SSEScanner{scanner: scanner}
}

// Next returns the payload of the next data frame with its "data:" prefix
// stripped. It returns io.EOF both on natural end of input and when the
// [DONE] sentinel is read; in either case no further frames are surfaced.
// Any other error is a transport-level read failure.
func (sseScanner *SSEScanner) Next() (string, error) {
	for sseScanner.scanner.Scan() {
		line := sseScanner.scanner.Text()

		// Blank lines separate events; comment lines start with ':'.
		// Neither carries a payload.
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		if !strings.HasPrefix(line, dataPrefix) {
			// event:, id:, retry: and any unknown field carry no payload here.
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
		if payload == doneSentinel {
			return "", io.EOF
		}
		return payload, nil
	}

	if err := sseScanner.scanner.Err(); err != nil {
		return "", fmt.Errorf("SSE scanner error: %w", err)
	}
	return "", io.EOF
}
