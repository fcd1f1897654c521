package services

import (
	"context"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/endpoint"
)

// ThreatGraph queries the ThreatGraph vertex and edge store.
type ThreatGraph struct {
	service
}

// NewThreatGraph returns a ThreatGraph client.
func NewThreatGraph(b *falconbridge.Bridge) *ThreatGraph {
	return &ThreatGraph{service{bridge: b, endpoints: endpoint.ThreatGraphEndpoints}}
}

// EdgesParams selects edges of one type for a vertex.
type EdgesParams struct {
	IDs       string `schema:"ids" validate:"required"`
	EdgeType  string `schema:"edge_type" validate:"required"`
	Limit     int    `schema:"limit,omitempty" validate:"gte=0,lte=100"`
	Offset    string `schema:"offset,omitempty"`
	Direction string `schema:"direction,omitempty" validate:"omitempty,oneof=primary secondary"`
	Scope     string `schema:"scope,omitempty"`
	Nano      bool   `schema:"nano,omitempty"`
}

// GetEdges retrieves edges for a given vertex id.
func (s *ThreatGraph) GetEdges(ctx context.Context, p *EdgesParams, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "combined_edges_get", p, nil, opts)
}

// RanOnParams locates an indicator.
type RanOnParams struct {
	Value  string `schema:"value" validate:"required"`
	Type   string `schema:"type" validate:"required"`
	Limit  int    `schema:"limit,omitempty" validate:"gte=0,lte=100"`
	Offset string `schema:"offset,omitempty"`
	Nano   bool   `schema:"nano,omitempty"`
}

// GetRanOn looks up instances of an indicator.
func (s *ThreatGraph) GetRanOn(ctx context.Context, p *RanOnParams, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "combined_ran_on_get", p, nil, opts)
}

// VertexParams selects vertices of one type.
type VertexParams struct {
	VertexType string   `schema:"vertex-type" validate:"required"`
	IDs        []string `schema:"ids" validate:"required,min=1"`
	Scope      string   `schema:"scope,omitempty"`
	Nano       bool     `schema:"nano,omitempty"`
}

// GetSummary retrieves summary for a given vertex id.
func (s *ThreatGraph) GetSummary(ctx context.Context, p *VertexParams, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "combined_summary_get", p, nil, opts)
}

// GetVertices retrieves metadata for a list of vertex ids.
func (s *ThreatGraph) GetVertices(ctx context.Context, p *VertexParams, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "entities_vertices_get", p, nil, opts)
}

// GetVerticesV2 is the v2 form of GetVertices.
func (s *ThreatGraph) GetVerticesV2(ctx context.Context, p *VertexParams, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "entities_vertices_getv2", p, nil, opts)
}

// GetEdgeTypes lists the edge types that can be queried.
func (s *ThreatGraph) GetEdgeTypes(ctx context.Context, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "queries_edgetypes_get", nil, nil, opts)
}
