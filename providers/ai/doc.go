// Package ai defines the provider-agnostic contract shared by every chat
// completion adapter: the conversation message model, the closed error
// taxonomy, the [CompletionStream] of incremental text fragments, and the
// [Provider] interface that each vendor package implements.
//
// Concrete adapters live in the subpackages anthropic, openai, and
// openrouter. Callers that want to stay provider-blind should go through
// the core/client façade instead of using an adapter directly.
package ai
