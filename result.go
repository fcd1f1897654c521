package falconbridge

import "encoding/json"

// Result is the uniform envelope returned for every API call.
type Result struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       any               `json:"body"`
}

// ErrorResult builds the envelope used for failures that never reached the
// API or that could not be decoded. A zero code becomes 500.
func ErrorResult(message string, code int, headers map[string]string) *Result {
	if code == 0 {
		code = 500
	}
	if headers == nil {
		headers = map[string]string{}
	}
	return &Result{
		StatusCode: code,
		Headers:    headers,
		Body: map[string]any{
			"errors":    []any{map[string]any{"message": message}},
			"resources": []any{},
		},
	}
}

// OKResult builds a successful envelope that carries only a message.
func OKResult(message string, code int, headers map[string]string) *Result {
	if code == 0 {
		code = 200
	}
	if headers == nil {
		headers = map[string]string{}
	}
	return &Result{
		StatusCode: code,
		Headers:    headers,
		Body: map[string]any{
			"message":   message,
			"resources": []any{},
		},
	}
}

// Resources returns body.resources when the body is a JSON object.
func (r *Result) Resources() []any {
	body, ok := r.Body.(map[string]any)
	if !ok {
		return nil
	}
	res, _ := body["resources"].([]any)
	return res
}

// Errors returns the message of every entry in body.errors.
func (r *Result) Errors() []string {
	body, ok := r.Body.(map[string]any)
	if !ok {
		return nil
	}
	list, _ := body["errors"].([]any)
	var out []string
	for _, e := range list {
		if m, ok := e.(map[string]any); ok {
			if msg, ok := m["message"].(string); ok {
				out = append(out, msg)
			}
		}
	}
	return out
}

// OK reports a 2xx status.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode re-marshals the body into v.
func (r *Result) Decode(v any) error {
	data, err := json.Marshal(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
