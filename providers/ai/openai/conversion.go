package openai

import "github.com/Ophelia-Chat/ophelia-sub001/providers/ai"

// requestToChatCompletion converts an ai.CompletionRequest into a
// chatCompletionRequest ready to POST with streaming enabled. A non-empty
// system prompt becomes the first message with role "system"; the chat
// completions format has no out-of-band system field.
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
