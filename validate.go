package falconbridge

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Kind is the expected runtime type of a body value.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindList
	KindDict
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Schema maps each allowed body key to its kind.
type Schema map[string]Kind

// ValidatePayload checks body against schema. Required keys are checked
// first, in the order given; every body key is then checked for membership
// and type in sorted order. The body is never modified.
func ValidatePayload(schema Schema, body map[string]any, required []string) error {
	for _, key := range required {
		if _, ok := body[key]; !ok {
			return &ValidationError{Kind: MissingArgument, Key: key}
		}
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		want, ok := schema[key]
		if !ok {
			return &ValidationError{Kind: UnknownArgument, Key: key}
		}
		if val := body[key]; !want.matches(val) {
			return &ValidationError{Kind: TypeMismatch, Key: key, Expected: want, Actual: describe(val)}
		}
	}
	return nil
}

func (k Kind) matches(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch k {
	case KindString:
		return rv.Kind() == reflect.String
	case KindInteger:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		case reflect.Float32, reflect.Float64:
			// decoded JSON numbers
			f := rv.Float()
			return f == math.Trunc(f)
		}
		return false
	case KindNumber:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
		return false
	case KindBoolean:
		return rv.Kind() == reflect.Bool
	case KindList:
		return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
	case KindDict:
		return rv.Kind() == reflect.Map
	}
	return false
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	for _, k := range []Kind{KindBoolean, KindString, KindInteger, KindNumber, KindList, KindDict} {
		if k.matches(v) {
			return k.String()
		}
	}
	return fmt.Sprintf("%T", v)
}
