package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ExtractAs extracts a value of type T from accumulated completion text.
//
// For string targets the text is returned as-is (minus markdown fences).
// Other primitive targets (bool, int, uint, float) are converted with
// strconv. Complex targets (structs, maps, slices) go through JSON
// unmarshaling; when strict unmarshaling fails, the candidate is repaired
// with jsonrepair and retried once.
//
// Example:
//
//	type Verdict struct {
//	    Safe   bool   `json:"safe"`
//	    Reason string `json:"reason"`
//	}
//
//	verdict, err := parse.ExtractAs[Verdict]("```json\n{safe: true, reason: 'ok'}\n```")
func ExtractAs[T any](completion string) (T, error) {
	var result T
	candidate := stripFences(completion)

	switch reflect.TypeFor[T]().Kind() {
	case reflect.String:
		reflect.ValueOf(&result).Elem().SetString(candidate)
		return result, nil

	case reflect.Bool:
		val, err := strconv.ParseBool(strings.TrimSpace(candidate))
		if err != nil {
			return result, fmt.Errorf("completion is not a bool: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetBool(val)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(strings.TrimSpace(candidate), 10, 64)
		if err != nil {
			return result, fmt.Errorf("completion is not an int: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetInt(val)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(strings.TrimSpace(candidate), 10, 64)
		if err != nil {
			return result, fmt.Errorf("completion is not a uint: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetUint(val)
		return result, nil

	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(strings.TrimSpace(candidate), 64)
		if err != nil {
			return result, fmt.Errorf("completion is not a float: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetFloat(val)
		return result, nil

	default:
		if err := json.Unmarshal([]byte(candidate), &result); err != nil {
			repaired, repairErr := jsonrepair.JSONRepair(candidate)
			if repairErr != nil {
				return result, fmt.Errorf("completion is not valid JSON for %T and could not be repaired: %w (repair: %v)", result, err, repairErr)
			}
			if err := json.Unmarshal([]byte(repaired), &result); err != nil {
				return result, fmt.Errorf("repaired completion still does not match %T: %w", result, err)
			}
		}
		return result, nil
	}
}

// stripFences removes a markdown code fence wrapping the payload, with or
// without a language tag, plus any prose before the opening fence and after
// the closing one. Text without fences is returned trimmed.
func stripFences(completion string) string {
	trimmed := strings.TrimSpace(completion)

	start := strings.Index(trimmed, "```")
	if start < 0 {
		return trimmed
	}

	inner := trimmed[start+3:]
	// Drop the language tag line, e.g. "json".
	if newline := strings.IndexByte(inner, '\n'); newline >= 0 {
		firstLine := strings.TrimSpace(inner[:newline])
		if firstLine == "" || isLanguageTag(firstLine) {
			inner = inner[newline+1:]
		}
	}

	if end := strings.Index(inner, "```"); end >= 0 {
		inner = inner[:end]
	}
	return strings.TrimSpace(inner)
}

// isLanguageTag reports whether a fence header line is a language tag rather
// than payload. Payload lines start with a JSON token; tags are short words.
func isLanguageTag(line string) bool {
	if strings.ContainsAny(line, "{}[]\":,") {
		return false
	}
	return len(line) <= 16
}
