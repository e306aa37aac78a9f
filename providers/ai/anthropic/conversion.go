package anthropic

import "github.com/Ophelia-Chat/ophelia-sub001/providers/ai"

// requestToAnthropic converts an ai.CompletionRequest into an
// anthropicRequest ready to POST to the Messages API with streaming enabled.
// The system prompt, when present, becomes the top-level system field;
// Anthropic keeps system text outside the message list, unlike the
// OpenAI-style providers which inline it as a leading message.
func requestToAnthropic(request ai.CompletionRequest) anthropicRequest {
	return anthropicRequest{
		Model:     request.Model,
		Messages:  buildMessages(request.Messages),
		MaxTokens: defaultMaxTokens,
		Stream:    true,
		System:    request.SystemPrompt,
	}
}

// buildMessages converts the generic conversation into Anthropic message
// objects, preserving order. Anthropic only accepts user and assistant roles,
// so every non-user role collapses to assistant.
func buildMessages(messages []ai.Message) []anthropicMessage {
	result := make([]anthropicMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, anthropicMessage{
			Role:    string(ai.NormalizeRole(msg.Role)),
			Content: msg.Content,
		})
	}
	return result
}
