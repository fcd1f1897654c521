package falconbridge

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/opengovern/falcon-bridge/endpoint"
)

// ManualOperation bypasses parameter mapping; the caller's payload is sent
// exactly as given.
const ManualOperation = "Manual"

// Keywords are named arguments supplied for a single call.
type Keywords map[string]any

// ArgsToParams builds the query mapping for operationID. It starts from the
// caller's full payload and adds every keyword the operation declares.
// Keywords the operation does not declare are dropped without error. A single
// string given for an array parameter is split on commas.
func ArgsToParams(payload map[string]any, keywords Keywords, endpoints []endpoint.Descriptor, operationID string) map[string]any {
	out := make(map[string]any, len(payload)+len(keywords))
	for k, v := range payload {
		out[k] = v
	}
	if operationID == ManualOperation {
		return out
	}

	desc, err := endpoint.Find(endpoints, operationID)
	if err != nil {
		return out
	}

	for _, p := range desc.Parameters {
		if p.Type == endpoint.TypeNone || p.In != endpoint.InQuery {
			continue
		}
		val, ok := lookupKeyword(keywords, p.Name)
		if !ok || val == nil {
			continue
		}
		if p.Type == endpoint.TypeArray {
			if s, isStr := val.(string); isStr {
				val = strings.Split(s, ",")
			}
		}
		out[p.Name] = val
	}
	return out
}

// lookupKeyword finds name among the keywords, accepting the underscore
// spelling for dashed parameter names (scan_type for scan-type).
func lookupKeyword(keywords Keywords, name string) (any, bool) {
	if v, ok := keywords[name]; ok {
		return v, true
	}
	if strings.Contains(name, "-") {
		v, ok := keywords[strings.ReplaceAll(name, "-", "_")]
		return v, ok
	}
	return nil, false
}

// PathValues returns the values for the operation's path placeholders, in
// declaration order. Missing values are reported as ErrMissingArgument.
func PathValues(desc endpoint.Descriptor, keywords Keywords) ([]string, error) {
	var out []string
	for _, p := range desc.Parameters {
		if p.In != endpoint.InPath {
			continue
		}
		val, ok := lookupKeyword(keywords, p.Name)
		if !ok || val == nil {
			return nil, &ValidationError{Kind: MissingArgument, Key: p.Name}
		}
		out = append(out, formatScalar(val))
	}
	return out, nil
}

// FormValues picks the formData parameters declared by desc out of keywords.
func FormValues(desc endpoint.Descriptor, keywords Keywords) map[string]any {
	out := map[string]any{}
	for _, p := range desc.Parameters {
		if p.In != endpoint.InFormData {
			continue
		}
		if val, ok := lookupKeyword(keywords, p.Name); ok && val != nil {
			out[p.Name] = val
		}
	}
	return out
}

// EncodeQuery renders params as a query string. Sequences become repeated
// keys.
func EncodeQuery(params map[string]any) url.Values {
	values := url.Values{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := params[k].(type) {
		case nil:
		case []string:
			for _, s := range v {
				values.Add(k, s)
			}
		case []any:
			for _, s := range v {
				values.Add(k, formatScalar(s))
			}
		case []int:
			for _, n := range v {
				values.Add(k, strconv.Itoa(n))
			}
		default:
			values.Add(k, formatScalar(v))
		}
	}
	return values
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
