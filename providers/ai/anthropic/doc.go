// Package anthropic implements [ai.Provider] for Anthropic's Messages API.
//
// It converts the generic conversation into the Messages wire format (system
// text travels in the top-level system field, not the message list),
// authenticates with the x-api-key header, and decodes the event-typed SSE
// stream into plain text fragments. The primary entry point is [New], which
// reads ANTHROPIC_API_KEY and ANTHROPIC_API_BASE_URL from the environment;
// use the With* builders to configure the provider programmatically and
// [AnthropicProvider.UpdateAPIKey] to rotate the credential at runtime.
package anthropic
