package services

import (
	"context"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/endpoint"
)

// FalconContainer talks to the image assessment service. Assessment and
// deletion go to the container upload host of the current cloud.
type FalconContainer struct {
	service
}

// NewFalconContainer returns the Falcon container service of b.
func NewFalconContainer(b *falconbridge.Bridge) *FalconContainer {
	return &FalconContainer{service{bridge: b, endpoints: endpoint.FalconContainerEndpoints}}
}

// GetCredentials returns the pull credentials for the sensor image registry.
func (s *FalconContainer) GetCredentials(ctx context.Context, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCredentials", nil, nil, opts)
}

// AssessmentQuery selects the image to report on.
type AssessmentQuery struct {
	Repository string `schema:"repository,omitempty"`
	Tag        string `schema:"tag,omitempty"`
	ImageID    string `schema:"image_id,omitempty"`
	Digest     string `schema:"digest,omitempty"`
}

// GetAssessment returns the assessment report of an image.
func (s *FalconContainer) GetAssessment(ctx context.Context, p *AssessmentQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetImageAssessmentReport", p, nil, opts)
}

// DeleteImage removes an image and its assessment.
func (s *FalconContainer) DeleteImage(ctx context.Context, imageID string, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "DeleteImageDetails", nil, nil, append([]Option{WithKeyword("image_id", imageID)}, opts...))
}
