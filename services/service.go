// Package services exposes one client type per Falcon API collection. Each
// method maps to a single operation id and is dispatched through a
// falconbridge.Bridge.
package services

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/endpoint"
)

var (
	validate      = validator.New()
	schemaEncoder = schema.NewEncoder()
)

// Option adjusts a single call.
type Option func(*callOptions)

type callOptions struct {
	parameters map[string]any
	headers    map[string]string
	keywords   falconbridge.Keywords
	body       any
	expand     bool
}

// WithParameters supplies a full query payload. Typed parameters are added on
// top of it.
func WithParameters(params map[string]any) Option {
	return func(o *callOptions) { o.parameters = params }
}

// WithHeaders adds headers to the call.
func WithHeaders(headers map[string]string) Option {
	return func(o *callOptions) { o.headers = headers }
}

// WithKeyword sets one named argument, for parameters the typed structs do
// not cover.
func WithKeyword(name string, value any) Option {
	return func(o *callOptions) {
		if o.keywords == nil {
			o.keywords = falconbridge.Keywords{}
		}
		o.keywords[name] = value
	}
}

// WithBody sends body as given instead of the payload built from typed
// arguments.
func WithBody(body any) Option {
	return func(o *callOptions) { o.body = body }
}

// WithExpandResult wraps binary responses in an envelope as well.
func WithExpandResult() Option {
	return func(o *callOptions) { o.expand = true }
}

// service is embedded by every client.
type service struct {
	bridge    *falconbridge.Bridge
	endpoints []endpoint.Descriptor
}

// call encodes params, applies options and performs operationID.
func (s service) call(ctx context.Context, operationID string, params any, body any, opts []Option) *falconbridge.Response {
	o := &callOptions{}
	for _, opt := range opts {
		opt(o)
	}

	kw, err := keywords(params)
	if err != nil {
		return &falconbridge.Response{Envelope: falconbridge.ErrorResult(err.Error(), 500, nil)}
	}
	for k, v := range o.keywords {
		kw[k] = v
	}
	if o.body != nil {
		body = o.body
	}

	req := falconbridge.ServiceRequest{
		Endpoints:    s.endpoints,
		OperationID:  operationID,
		Keywords:     kw,
		Params:       o.parameters,
		Headers:      o.headers,
		Body:         body,
		ExpandResult: o.expand,
	}
	if m, ok := body.(map[string]any); ok {
		if _, wrapped := m["resources"]; wrapped {
			req.BodyValidator = resourcesSchema
			req.BodyRequired = []string{"resources"}
		}
	}
	return s.bridge.ProcessServiceRequest(ctx, req)
}

// keywords flattens a typed parameter struct into named arguments.
func keywords(params any) (falconbridge.Keywords, error) {
	kw := falconbridge.Keywords{}
	if params == nil {
		return kw, nil
	}
	if rv := reflect.ValueOf(params); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return kw, nil
	}
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	values := map[string][]string{}
	if err := schemaEncoder.Encode(params, values); err != nil {
		return nil, fmt.Errorf("encoding parameters: %w", err)
	}
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			kw[k] = vs[0]
		default:
			kw[k] = vs
		}
	}
	return kw, nil
}

var resourcesSchema = falconbridge.Schema{"resources": falconbridge.KindList}

// resources wraps items in the {"resources": [...]} body the API expects,
// after validating each one.
func resources[T any](items ...T) (map[string]any, error) {
	list := make([]any, 0, len(items))
	for _, item := range items {
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		m, err := toMap(item)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return map[string]any{"resources": list}, nil
}
