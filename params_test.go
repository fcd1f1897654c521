package falconbridge

import (
	"errors"
	"reflect"
	"testing"

	"github.com/opengovern/falcon-bridge/endpoint"
)

var testEndpoints = []endpoint.Descriptor{
	{
		OperationID: "queryThings",
		Method:      "GET",
		Path:        "/things/queries/v1",
		Parameters: []endpoint.ParameterSpec{
			{Name: "ids", In: endpoint.InQuery, Type: endpoint.TypeArray},
			{Name: "limit", In: endpoint.InQuery, Type: endpoint.TypeInteger},
			{Name: "scan-type", In: endpoint.InQuery, Type: endpoint.TypeString},
			{Name: "body", In: endpoint.InBody},
			{Name: "client_id", In: endpoint.InFormData, Type: endpoint.TypeString},
		},
	},
	{
		OperationID: "getThing",
		Method:      "GET",
		Path:        "/things/{}/entities/{}/v1",
		Parameters: []endpoint.ParameterSpec{
			{Name: "kind", In: endpoint.InPath, Type: endpoint.TypeString, Required: true},
			{Name: "thing-id", In: endpoint.InPath, Type: endpoint.TypeInteger, Required: true},
		},
	},
}

func TestArgsToParams(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]any
		keywords Keywords
		opID     string
		want     map[string]any
	}{
		{
			name:     "split comma string for array",
			keywords: Keywords{"ids": "a,b,c"},
			opID:     "queryThings",
			want:     map[string]any{"ids": []string{"a", "b", "c"}},
		},
		{
			name:     "sequence kept as is",
			keywords: Keywords{"ids": []string{"x"}, "limit": 5},
			opID:     "queryThings",
			want:     map[string]any{"ids": []string{"x"}, "limit": 5},
		},
		{
			name:     "payload preserved and extended",
			payload:  map[string]any{"filter": "name:'x'"},
			keywords: Keywords{"limit": 10},
			opID:     "queryThings",
			want:     map[string]any{"filter": "name:'x'", "limit": 10},
		},
		{
			name:     "undeclared and non-query keywords dropped",
			keywords: Keywords{"bogus": 1, "body": map[string]any{}, "client_id": "c"},
			opID:     "queryThings",
			want:     map[string]any{},
		},
		{
			name:     "underscore alias for dashed name",
			keywords: Keywords{"scan_type": "dry"},
			opID:     "queryThings",
			want:     map[string]any{"scan-type": "dry"},
		},
		{
			name:     "manual passes payload through",
			payload:  map[string]any{"anything": "goes"},
			keywords: Keywords{"ids": "a,b"},
			opID:     ManualOperation,
			want:     map[string]any{"anything": "goes"},
		},
		{
			name:     "unknown operation keeps payload",
			payload:  map[string]any{"a": 1},
			keywords: Keywords{"ids": "x"},
			opID:     "nope",
			want:     map[string]any{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArgsToParams(tt.payload, tt.keywords, testEndpoints, tt.opID)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ArgsToParams() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArgsToParamsDoesNotMutatePayload(t *testing.T) {
	payload := map[string]any{"filter": "x"}
	_ = ArgsToParams(payload, Keywords{"limit": 1}, testEndpoints, "queryThings")
	if len(payload) != 1 {
		t.Errorf("payload mutated: %v", payload)
	}
}

func TestPathValues(t *testing.T) {
	desc := testEndpoints[1]

	got, err := PathValues(desc, Keywords{"kind": "host", "thing_id": 42})
	if err != nil {
		t.Fatalf("PathValues() error = %v", err)
	}
	if want := []string{"host", "42"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PathValues() = %v, want %v", got, want)
	}

	_, err = PathValues(desc, Keywords{"kind": "host"})
	if !errors.Is(err, ErrMissingArgument) {
		t.Errorf("PathValues() error = %v, want %v", err, ErrMissingArgument)
	}
}

func TestFormValues(t *testing.T) {
	got := FormValues(testEndpoints[0], Keywords{"client_id": "abc", "limit": 3})
	if want := map[string]any{"client_id": "abc"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FormValues() = %v, want %v", got, want)
	}
}

func TestEncodeQuery(t *testing.T) {
	q := EncodeQuery(map[string]any{
		"ids":     []string{"a", "b"},
		"any":     []any{"x", 2},
		"nums":    []int{1, 2},
		"limit":   100,
		"enabled": true,
		"ratio":   0.5,
		"skip":    nil,
	})

	tests := []struct {
		key  string
		want []string
	}{
		{"ids", []string{"a", "b"}},
		{"any", []string{"x", "2"}},
		{"nums", []string{"1", "2"}},
		{"limit", []string{"100"}},
		{"enabled", []string{"true"}},
		{"ratio", []string{"0.5"}},
	}
	for _, tt := range tests {
		if got := q[tt.key]; !reflect.DeepEqual(got, tt.want) {
			t.Errorf("EncodeQuery()[%s] = %v, want %v", tt.key, got, tt.want)
		}
	}
	if _, ok := q["skip"]; ok {
		t.Error("nil value encoded")
	}
}
