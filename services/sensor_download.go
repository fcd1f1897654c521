package services

import (
	"context"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/endpoint"
)

// SensorDownload finds and downloads sensor installers.
type SensorDownload struct {
	service
}

// NewSensorDownload returns the sensor download service of b.
func NewSensorDownload(b *falconbridge.Bridge) *SensorDownload {
	return &SensorDownload{service{bridge: b, endpoints: endpoint.SensorDownloadEndpoints}}
}

// GetCCID returns the customer checksum id used by installers.
func (s *SensorDownload) GetCCID(ctx context.Context, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetSensorInstallersCCIDByQuery", nil, nil, opts)
}

// GetInstallers lists installers matching an FQL filter.
func (s *SensorDownload) GetInstallers(ctx context.Context, p *FQLQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCombinedSensorInstallersByQuery", p, nil, opts)
}

// DownloadSensorInstaller fetches the installer with the given SHA256. The
// body comes back raw unless WithExpandResult is set.
func (s *SensorDownload) DownloadSensorInstaller(ctx context.Context, sha256 string, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "DownloadSensorInstallerById", nil, nil, append([]Option{WithKeyword("id", sha256)}, opts...))
}
