package service

import (
	"context"

	"github.com/mwinzi/freshmart-api/pkg/apperror"
	"github.com/mwinzi/freshmart-api/pkg/scale"
)

// ScaleService exposes the weighing scale for status checks and
// standalone reads outside any draft session.
type ScaleService struct {
	scale     scale.Scale
	scaleType string
}

// NewScaleService creates a new scale service
func NewScaleService(sc scale.Scale, scaleType string) *ScaleService {
	return &ScaleService{scale: sc, scaleType: scaleType}
}

// ScaleStatus describes the configured scale and whether it is
// currently reachable.
type ScaleStatus struct {
	Type       string `json:"type"`
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
}

// Status reports whether the scale is configured and reachable
func (s *ScaleService) Status() *ScaleStatus {
	return &ScaleStatus{
		Type:       s.scaleType,
		Configured: s.scaleType != "" && s.scaleType != "none",
		Connected:  s.scale.IsConnected(),
	}
}

// ReadWeight takes a single sample from the scale. A nil reading means
// the device produced no usable value.
func (s *ScaleService) ReadWeight(ctx context.Context) (*scale.Reading, error) {
	reading, err := s.scale.Read(ctx)
	if err != nil {
		return nil, apperror.NewAppError(502, "Failed to read weighing scale: "+err.Error())
	}
	return reading, nil
}
