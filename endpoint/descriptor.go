// Package endpoint holds the static operation tables of the Falcon API and the
// registry used to resolve an operation id to its HTTP method, path and
// parameters.
package endpoint

import "strings"

// Location is where a parameter travels in the request.
type Location string

const (
	InQuery    Location = "query"
	InPath     Location = "path"
	InBody     Location = "body"
	InFormData Location = "formData"
	InHeader   Location = "header"
)

// ParamType is the declared wire type of a parameter. Body parameters carry no type.
type ParamType string

const (
	TypeNone    ParamType = ""
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeFile    ParamType = "file"
)

// ParameterSpec describes one parameter accepted by an operation.
type ParameterSpec struct {
	Name        string
	In          Location
	Type        ParamType
	Required    bool
	Default     any
	Enum        []string
	Maximum     *int
	Description string
}

// Descriptor is an immutable record describing one API operation.
type Descriptor struct {
	OperationID string
	Method      string
	Path        string
	Description string
	Tag         string
	Parameters  []ParameterSpec
}

// Param returns the named parameter spec.
func (d Descriptor) Param(name string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// QueryNames lists the names of all query parameters in declaration order.
func (d Descriptor) QueryNames() []string {
	var names []string
	for _, p := range d.Parameters {
		if p.In == InQuery {
			names = append(names, p.Name)
		}
	}
	return names
}

// Placeholders counts the positional "{}" segments in the path template.
func (d Descriptor) Placeholders() int {
	return strings.Count(d.Path, "{}")
}

func intPtr(i int) *int {
	return &i
}
