package observability

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MaskToken is the fixed replacement for redacted values.
const MaskToken = "[REDACTED]"

// secretKeys are the JSON object keys whose values are always masked:
// the system-prompt field and every credential-bearing header or field name
// the adapters use. Matching is case-insensitive.
var secretKeys = map[string]struct{}{
	"system":        {},
	"x-api-key":     {},
	"api_key":       {},
	"api-key":       {},
	"apikey":        {},
	"authorization": {},
}

var (
	// headerValuePattern matches "x-api-key: sk-abc" style header text in
	// non-JSON diagnostics. The key and separator are kept, the value is masked.
	headerValuePattern = regexp.MustCompile(`(?i)(x-api-key|api[-_]?key|authorization)(\s*[:=]\s*)(\S+)`)

	// bearerPattern matches bare bearer tokens outside a header line.
	bearerPattern = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._~+/=-]+`)
)

// Redact returns text with secret values replaced by [MaskToken], leaving
// everything else intact. Well-formed JSON objects keep their structure: only
// the values of the system-prompt field and credential-bearing keys are
// replaced. Plain text is scrubbed of header-shaped credential values and
// bearer tokens via pattern matching.
//
// Redact is idempotent and never fails: malformed input, or input containing
// no secrets, is returned unchanged.
func Redact(text string) string {
	if json := gjson.Parse(text); json.IsObject() {
		return redactJSON(text, json)
	}

	redacted := headerValuePattern.ReplaceAllString(text, "${1}${2}"+MaskToken)
	redacted = bearerPattern.ReplaceAllString(redacted, "Bearer "+MaskToken)
	return redacted
}

// redactJSON masks the values of secret top-level keys in a JSON object.
// Replacement goes through sjson so the rest of the document is preserved
// byte-for-byte apart from the masked values. A key that cannot be rewritten
// is left as-is rather than failing the whole redaction.
func redactJSON(text string, json gjson.Result) string {
	redacted := text
	json.ForEach(func(key, value gjson.Result) bool {
		if _, secret := secretKeys[strings.ToLower(key.String())]; !secret {
			return true
		}
		if updated, err := sjson.Set(redacted, escapePathKey(key.String()), MaskToken); err == nil {
			redacted = updated
		}
		return true
	})
	return redacted
}

// escapePathKey escapes sjson path metacharacters in a literal object key.
func escapePathKey(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`)
	return replacer.Replace(key)
}
