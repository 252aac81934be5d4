package logger

import (
	"encoding/json"
	"regexp"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	maxStringLen = 500
	maxArrayLen  = 20
	maxDepth     = 3

	redacted  = "[REDACTED]"
	truncated = "[TRUNCATED]"
)

var piiKeys = regexp.MustCompile(`(?i)(cpf|cnpj|rg|endereco|address|email|telefone|phone|nome|name)`)

// Redacted returns a zap field holding a sanitized copy of v.
func Redacted(key string, v any) zap.Field {
	return zap.Any(key, Sanitize(v))
}

// Sanitize converts v into a JSON-shaped value safe to log: values under
// personal-data keys are masked, long strings and arrays are cut and
// nesting deeper than maxDepth is replaced by a marker.
func Sanitize(v any) any {
	var generic any
	switch v.(type) {
	case nil, string, bool, float64, int, int64, map[string]any, []any:
		generic = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "[UNSERIALIZABLE]"
		}
		if err := json.Unmarshal(b, &generic); err != nil {
			return "[UNSERIALIZABLE]"
		}
	}
	return sanitize(generic, 0)
}

func sanitize(v any, depth int) any {
	if depth > maxDepth {
		return truncated
	}

	switch val := v.(type) {
	case string:
		if utf8.RuneCountInString(val) > maxStringLen {
			return string([]rune(val)[:maxStringLen]) + "..."
		}
		return val
	case []any:
		n := min(len(val), maxArrayLen)
		out := make([]any, 0, n)
		for _, item := range val[:n] {
			out = append(out, sanitize(item, depth+1))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if piiKeys.MatchString(k) {
				out[k] = redacted
				continue
			}
			out[k] = sanitize(item, depth+1)
		}
		return out
	default:
		return val
	}
}
