package anthropic

/*
	ANTHROPIC MESSAGES API - REQUEST TYPES
*/

// anthropicRequest represents the request body for Anthropic's Messages API.
// System text lives here at the top level; Anthropic does not accept a
// system-role message inside the messages list.
type anthropicRequest struct {
	Model     string             `json:"model"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"` // Required by Anthropic on every request
	Stream    bool               `json:"stream"`
	System    string             `json:"system,omitempty"`
}

// anthropicMessage represents a single message in the conversation.
// Role is "user" or "assistant"; Anthropic rejects anything else.
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
