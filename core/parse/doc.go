// Package parse extracts typed values from accumulated completion text.
//
// Streamed completions arrive as plain text even when the model was asked
// for JSON, and models routinely wrap the payload in markdown fences, add
// prose around it, or emit almost-JSON (single quotes, trailing commas,
// unquoted keys). The generic [ExtractAs] peels those layers off: it strips
// fences and surrounding prose, tries strict unmarshaling, and falls back
// to automatic JSON repair before giving up with a clear error.
package parse
