package endpoint

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadDocument loads an OpenAPI document from a local file path or an HTTP(S) URL.
func LoadDocument(input string) (*openapi3.T, error) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return loader.LoadFromURI(u)
	}
	return loader.LoadFromFile(input)
}

// LoadDocumentData parses an OpenAPI document held in memory.
func LoadDocumentData(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	return loader.LoadFromData(data)
}

var pathParamPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// FromOpenAPI converts every operation in doc into a descriptor. Named path
// segments become positional "{}" placeholders and path parameters are
// ordered to match them.
func FromOpenAPI(doc *openapi3.T) ([]Descriptor, error) {
	if doc == nil || doc.Paths == nil {
		return nil, fmt.Errorf("openapi document has no paths")
	}

	paths := doc.Paths.InMatchingOrder()
	sort.Strings(paths)

	var out []Descriptor
	for _, path := range paths {
		item := doc.Paths.Value(path)
		if item == nil {
			continue
		}
		ops := []struct {
			method string
			op     *openapi3.Operation
		}{
			{"GET", item.Get}, {"POST", item.Post}, {"PATCH", item.Patch}, {"PUT", item.Put}, {"DELETE", item.Delete},
		}
		for _, o := range ops {
			if o.op == nil {
				continue
			}
			d, err := describeOperation(path, o.method, item.Parameters, o.op)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
	}
	return out, nil
}

func describeOperation(path, method string, shared openapi3.Parameters, op *openapi3.Operation) (Descriptor, error) {
	d := Descriptor{
		OperationID: op.OperationID,
		Method:      method,
		Description: op.Summary,
	}
	if d.OperationID == "" {
		return Descriptor{}, fmt.Errorf("%s %s has no operationId", method, path)
	}
	if d.Description == "" {
		d.Description = op.Description
	}
	if len(op.Tags) > 0 {
		d.Tag = op.Tags[0]
	}

	var order []string
	for _, m := range pathParamPattern.FindAllStringSubmatch(path, -1) {
		order = append(order, m[1])
	}
	d.Path = pathParamPattern.ReplaceAllString(path, "{}")

	pathParams := map[string]ParameterSpec{}
	for _, pr := range append(append(openapi3.Parameters{}, shared...), op.Parameters...) {
		if pr == nil || pr.Value == nil {
			continue
		}
		spec := parameterSpec(pr.Value)
		if spec.In == InPath {
			pathParams[spec.Name] = spec
			continue
		}
		d.Parameters = append(d.Parameters, spec)
	}
	for _, name := range order {
		spec, ok := pathParams[name]
		if !ok {
			spec = ParameterSpec{Name: name, In: InPath, Type: TypeString, Required: true}
		}
		d.Parameters = append(d.Parameters, spec)
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		d.Parameters = append(d.Parameters, ParameterSpec{
			Name:     "body",
			In:       InBody,
			Required: op.RequestBody.Value.Required,
		})
	}
	return d, nil
}

func parameterSpec(p *openapi3.Parameter) ParameterSpec {
	spec := ParameterSpec{
		Name:        p.Name,
		Required:    p.Required,
		Description: p.Description,
	}
	switch p.In {
	case openapi3.ParameterInPath:
		spec.In = InPath
		spec.Required = true
	case openapi3.ParameterInHeader:
		spec.In = InHeader
	default:
		spec.In = InQuery
	}

	if p.Schema == nil || p.Schema.Value == nil {
		spec.Type = TypeString
		return spec
	}
	s := p.Schema.Value
	switch {
	case s.Type == nil:
		spec.Type = TypeString
	case s.Type.Is(openapi3.TypeArray):
		spec.Type = TypeArray
	case s.Type.Is(openapi3.TypeInteger):
		spec.Type = TypeInteger
	case s.Type.Is(openapi3.TypeNumber):
		spec.Type = TypeNumber
	case s.Type.Is(openapi3.TypeBoolean):
		spec.Type = TypeBoolean
	default:
		spec.Type = TypeString
	}
	spec.Default = s.Default
	for _, e := range s.Enum {
		spec.Enum = append(spec.Enum, fmt.Sprint(e))
	}
	if s.Max != nil {
		spec.Maximum = intPtr(int(*s.Max))
	}
	if spec.Description == "" {
		spec.Description = strings.TrimSpace(s.Description)
	}
	return spec
}
