package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Records written by the previous DynamoDB-backed deployment were imported
// as-is, so a job document can still carry attribute-typed envelopes like
// {"N": "3"} or {"M": {...}}, and payloads decoded from JSON carry
// json.Number for numerics. NormalizeRecord unwraps all of that at the
// repository boundary; nothing above the store ever sees the wrapped form.

// NormalizeRecord normalizes every value of a raw record.
func NormalizeRecord(rec map[string]any) map[string]any {
	if rec == nil {
		return nil
	}
	out := make(map[string]any, len(rec))
	for key, value := range rec {
		out[key] = NormalizeValue(value)
	}
	return out
}

// NormalizeValue normalizes a single value, recursing into maps and lists.
func NormalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if unwrapped, ok := unwrapEnvelope(v); ok {
			return unwrapped
		}
		return NormalizeRecord(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = NormalizeValue(elem)
		}
		return out
	case json.Number:
		return parseNumber(v.String())
	case int64:
		return int(v)
	default:
		return v
	}
}

// unwrapEnvelope handles the attribute-typed forms: Map, List, String,
// Number, Bool and Null.
func unwrapEnvelope(m map[string]any) (any, bool) {
	if inner, ok := m["M"].(map[string]any); ok {
		return NormalizeRecord(inner), true
	}
	if inner, ok := m["L"].([]any); ok {
		out := make([]any, len(inner))
		for i, elem := range inner {
			out[i] = NormalizeValue(elem)
		}
		return out, true
	}
	if s, ok := m["S"].(string); ok {
		return s, true
	}
	if n, ok := m["N"].(string); ok {
		return parseNumber(n), true
	}
	if b, ok := m["BOOL"].(bool); ok {
		return b, true
	}
	if _, ok := m["NULL"]; ok {
		return nil, true
	}
	return nil, false
}

// parseNumber converts an exact-decimal string to int when whole, float64
// otherwise. Unparseable input is passed through unchanged.
func parseNumber(s string) any {
	if !strings.Contains(s, ".") {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
