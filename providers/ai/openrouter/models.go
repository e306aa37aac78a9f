package openrouter

import "github.com/Ophelia-Chat/ophelia-sub001/providers/ai"

// chatCompletionRequest is the OpenAI-compatible request body OpenRouter
// accepts. Only the fields this client sends are modeled.
type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// requestToChatCompletion converts an ai.CompletionRequest into the
// OpenAI-compatible envelope with streaming enabled. The system prompt is
// inlined as a leading system message, the same convention the openai
// package follows.
func requestToChatCompletion(request ai.CompletionRequest) chatCompletionRequest {
	messages := make([]chatMessage, 0, len(request.Messages)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, chatMessage{
			Role:    string(ai.RoleSystem),
			Content: request.SystemPrompt,
		})
	}
	for _, msg := range request.Messages {
		messages = append(messages, chatMessage{
			Role:    string(ai.NormalizeRole(msg.Role)),
			Content: msg.Content,
		})
	}

	return chatCompletionRequest{
		Model:    request.Model,
		Messages: messages,
		Stream:   true,
	}
}
