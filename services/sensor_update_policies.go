package services

import (
	"context"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/endpoint"
)

// SensorUpdatePolicies reads kernel compatibility for sensor builds.
type SensorUpdatePolicies struct {
	service
}

// NewSensorUpdatePolicies returns the sensor update policy service of b.
func NewSensorUpdatePolicies(b *falconbridge.Bridge) *SensorUpdatePolicies {
	return &SensorUpdatePolicies{service{bridge: b, endpoints: endpoint.SensorUpdatePoliciesEndpoints}}
}

// KernelQuery filters and pages kernel records.
type KernelQuery struct {
	Filter string `schema:"filter,omitempty"`
	Offset int    `schema:"offset,omitempty" validate:"gte=0"`
	Limit  int    `schema:"limit,omitempty" validate:"gte=0,lte=500"`
}

// QueryCombinedKernels lists kernels compatible with sensor builds.
func (s *SensorUpdatePolicies) QueryCombinedKernels(ctx context.Context, p *KernelQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "queryCombinedSensorUpdateKernels", p, nil, opts)
}

// DistinctKernelQuery asks for the distinct values of one kernel field.
type DistinctKernelQuery struct {
	DistinctField string `schema:"distinct-field" validate:"required"`
	KernelQuery
}

// QueryKernelsDistinct returns the distinct values of one kernel field.
func (s *SensorUpdatePolicies) QueryKernelsDistinct(ctx context.Context, p *DistinctKernelQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "querySensorUpdateKernelsDistinct", p, nil, opts)
}
