package observability

import (
	"context"
	"time"
)

// Observer provides structured diagnostic logging for provider adapters.
// Implementations must be safe for concurrent use; a single Observer is
// shared by every in-flight streaming call that carries it in its context.
type Observer interface {
	Trace(ctx context.Context, msg string, attrs ...Attribute)
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// Attribute represents a key-value pair of diagnostic metadata.
type Attribute struct {
	Key   string
	Value interface{}
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an integer attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value}
}

// Error creates an error attribute. A nil error yields an empty value so the
// attribute is always safe to construct.
func Error(err error) Attribute {
	if err == nil {
		return Attribute{Key: "error", Value: ""}
	}
	return Attribute{Key: "error", Value: err.Error()}
}

// Common attribute keys shared by all provider adapters, so diagnostic
// records stay queryable across providers.
const (
	AttrLLMProvider      = "llm.provider"
	AttrLLMEndpoint      = "llm.endpoint"
	AttrLLMModel         = "llm.model"
	AttrMessagesCount    = "llm.request.messages_count"
	AttrFragmentsEmitted = "llm.stream.fragments_emitted"
	AttrCharsEmitted     = "llm.stream.chars_emitted"
	AttrFramePayload     = "llm.stream.frame_payload"
	AttrHTTPStatusCode   = "http.status_code"
)
