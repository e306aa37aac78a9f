// Package observability defines the diagnostic logging surface used by the
// provider adapters. An [Observer] travels through the [context.Context] of a
// streaming call; adapters emit structured trace and warning records through
// it without depending on a concrete logging backend. The slogobs subpackage
// provides a [log/slog] backed implementation.
//
// Diagnostic text that may contain credentials or system prompts must pass
// through [Redact] before it reaches an Observer.
package observability
