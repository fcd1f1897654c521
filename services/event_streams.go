package services

import (
	"context"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/endpoint"
)

// EventStreams discovers and refreshes streaming API sessions.
type EventStreams struct {
	service
}

// NewEventStreams returns the event streams service of b.
func NewEventStreams(b *falconbridge.Bridge) *EventStreams {
	return &EventStreams{service{bridge: b, endpoints: endpoint.EventStreamsEndpoints}}
}

// StreamsQuery names the consuming application.
type StreamsQuery struct {
	AppID  string `schema:"appId" validate:"required"`
	Format string `schema:"format,omitempty" validate:"omitempty,oneof=json flatjson"`
}

// ListAvailableStreams lists the event streams open to appId.
func (s *EventStreams) ListAvailableStreams(ctx context.Context, p *StreamsQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "listAvailableStreamsOAuth2", p, nil, opts)
}

// RefreshStream identifies the stream session to refresh.
type RefreshStream struct {
	AppID      string `schema:"appId" validate:"required"`
	Partition  int    `schema:"partition" validate:"gte=0"`
	ActionName string `schema:"action_name,omitempty"`
}

// RefreshActiveStream keeps the session on one partition alive.
func (s *EventStreams) RefreshActiveStream(ctx context.Context, p RefreshStream, opts ...Option) *falconbridge.Response {
	if p.ActionName == "" {
		p.ActionName = "refresh_active_stream_session"
	}
	return s.call(ctx, "refreshActiveStreamSession", &p, nil, opts)
}
