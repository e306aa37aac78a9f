// Package openai implements [ai.Provider] for OpenAI's Chat Completions API.
//
// It converts the generic conversation into the chat completions wire format
// (the system prompt is inlined as a leading system message), authenticates
// with a Bearer token, and decodes the chunked SSE stream terminated by the
// [DONE] sentinel into plain text fragments. The primary entry point is
// [New], which reads OPENAI_API_KEY and OPENAI_API_BASE_URL from the
// environment; use the With* builders to configure the provider
// programmatically and [OpenAIProvider.UpdateAPIKey] to rotate the
// credential at runtime.
package openai
