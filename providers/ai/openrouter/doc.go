// Package openrouter implements [ai.Provider] for the OpenRouter gateway.
//
// OpenRouter exposes an OpenAI-compatible chat completions surface that
// fronts many upstream model vendors, so the request envelope matches the
// openai package. The chunks coming back are whatever the routed upstream
// produced, lightly normalized; rather than binding them to a rigid struct,
// the decoder pulls delta text out with gjson path queries and tolerates
// unknown shapes. The primary entry point is [New], which reads
// OPENROUTER_API_KEY and OPENROUTER_API_BASE_URL from the environment.
package openrouter
