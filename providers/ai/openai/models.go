package openai

// chatCompletionRequest is the request body for the chat completions
// endpoint. Only the fields this client sends are modeled.
type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// chatMessage is a single conversation turn in the chat completions format.
// The system prompt travels as a leading message with role "system".
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
