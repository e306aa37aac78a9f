package anthropic

import (
	"encoding/json"
	"fmt"
)

/*
	ANTHROPIC SSE STREAMING - WIRE TYPES

	Anthropic streaming uses SSE with "event:" lines naming the event type,
	followed by "data:" lines containing JSON payloads. Only the "data:"
	frames are decoded; the "type" field inside each payload is the
	discriminator, so the decoder works from the data line alone.

	Event lifecycle:
	  message_start → content_block_start → content_block_delta(s) →
	  content_block_stop → message_delta → message_stop
*/

// anthropicStreamEvent is the top-level envelope for all Anthropic SSE events.
// The Type field discriminates which optional fields are populated. Every
// field access downstream treats absence as valid: providers add event types
// and fields without notice.
type anthropicStreamEvent struct {
	Type  string          `json:"type"`            // Event discriminator
	Delta *streamDelta    `json:"delta,omitempty"` // For content_block_delta and message_delta
	Error *anthropicError `json:"error,omitempty"` // For "error" events
}

// streamDelta carries incremental content within a content_block_delta or
// message_delta event. For content_block_delta the Type field is
// "text_delta" and Text holds the fragment; message_delta events usually
// carry only StopReason, but when a provider puts trailing text there it is
// treated exactly like a primary delta.
type streamDelta struct {
	Type       string `json:"type,omitempty"`
	Text       string `json:"text,omitempty"`
	StopReason string `json:"stop_reason,omitempty"`
}

// anthropicError represents an error event in the Anthropic SSE stream.
type anthropicError struct {
	Type    string `json:"type"`    // e.g. "overloaded_error", "api_error"
	Message string `json:"message"` // Human-readable description
}

// unmarshalStreamEvent parses a JSON payload string into an
// anthropicStreamEvent. A payload that is not valid JSON, or that carries no
// type discriminator, is reported as malformed; the read loop skips such
// frames rather than failing the stream.
func unmarshalStreamEvent(payload string) (*anthropicStreamEvent, error) {
	var event anthropicStreamEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return nil, err
	}
	if event.Type == "" {
		return nil, fmt.Errorf("missing type field in stream event")
	}
	return &event, nil
}
