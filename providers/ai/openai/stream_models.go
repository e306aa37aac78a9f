package openai

import "encoding/json"

// chatCompletionStreamChunk represents a single SSE chunk from the streaming
// chat completions endpoint. Each chunk carries incremental deltas; the
// stream itself is terminated by the [DONE] sentinel, not by a chunk field.
type chatCompletionStreamChunk struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"` // "chat.completion.chunk"
	Model   string         `json:"model"`
	Choices []streamChoice `json:"choices"`
}

// streamChoice is a single choice in a streaming chunk. Unlike a full
// completion choice it carries a Delta instead of a Message.
type streamChoice struct {
	Index        int         `json:"index"`
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"` // Nullable; nil until the final chunk for this choice
}

// streamDelta carries the incremental content of a chunk. Content is a
// pointer to distinguish an empty string from an absent field; role-only and
// empty deltas are both common.
type streamDelta struct {
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content,omitempty"`
}

// unmarshalStreamChunk parses a raw SSE data payload into a chunk. Callers
// skip the frame on error instead of aborting the stream.
func unmarshalStreamChunk(data string) (*chatCompletionStreamChunk, error) {
	var chunk chatCompletionStreamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return nil, err
	}
	return &chunk, nil
}
