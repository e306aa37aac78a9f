package ai

// MessageRole identifies the author of a conversation turn.
type MessageRole string

const (
	// RoleUser marks an end-user turn.
	RoleUser MessageRole = "user"
	// RoleAssistant marks a model response turn.
	RoleAssistant MessageRole = "assistant"
	// RoleSystem marks system instructions. Adapters place system text where
	// their provider expects it (top-level field or leading message), so a
	// system turn inside the conversation is unusual but tolerated.
	RoleSystem MessageRole = "system"
)

// Message is a single conversation turn. Order is significant: a conversation
// is the displayed history, oldest first.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// CompletionRequest carries everything an adapter needs to start one
// streaming completion. The model identifier is passed through to the
// provider verbatim; the provider is the authority on whether it exists.
type CompletionRequest struct {
	Model        string    `json:"model,omitempty"`
	Messages     []Message `json:"messages"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
}

// NormalizeRole maps a generic role onto the binary user/assistant vocabulary
// the wire formats use for conversation turns: RoleUser stays user, anything
// else (including an empty role) collapses to assistant.
func NormalizeRole(role MessageRole) MessageRole {
	if role == RoleUser {
		return RoleUser
	}
	return RoleAssistant
}
