package falconbridge

const (
	redacted = "REDACTED"

	// DefaultRecordMax is how many body.resources entries a debug trace keeps.
	DefaultRecordMax = 100
	maxRecordMax     = 5000
)

var sensitiveKeys = []string{"access_token", "client_id", "client_secret", "member_cid", "token"}

// Sanitize returns a copy of v that is safe to log. Sensitive keys are
// replaced at the top level and inside a "body" mapping, an Authorization
// value becomes "Bearer REDACTED", and body.resources is cut to recordMax
// entries (clamped to 1..5000). v itself is never modified.
func Sanitize(v any, recordMax int) any {
	switch t := v.(type) {
	case map[string]any:
		return sanitizeMap(t, recordMax)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return sanitizeMap(m, recordMax)
	case *Result:
		if t == nil {
			return nil
		}
		headers := make(map[string]any, len(t.Headers))
		for k, s := range t.Headers {
			headers[k] = s
		}
		return sanitizeMap(map[string]any{
			"status_code": t.StatusCode,
			"headers":     headers,
			"body":        t.Body,
		}, recordMax)
	default:
		return v
	}
}

func sanitizeMap(in map[string]any, recordMax int) map[string]any {
	out := redactKeys(in)
	if body, ok := out["body"].(map[string]any); ok {
		body = redactKeys(body)
		if res, ok := body["resources"].([]any); ok {
			limit := clampRecordMax(recordMax)
			if len(res) > limit {
				body["resources"] = res[:limit]
			}
		}
		out["body"] = body
	}
	if headers, ok := out["headers"].(map[string]any); ok {
		out["headers"] = redactKeys(headers)
	}
	return out
}

func redactKeys(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	for _, key := range sensitiveKeys {
		if _, ok := out[key]; ok {
			out[key] = redacted
		}
	}
	if _, ok := out["Authorization"]; ok {
		out["Authorization"] = "Bearer " + redacted
	}
	return out
}

func clampRecordMax(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxRecordMax {
		return maxRecordMax
	}
	return n
}
