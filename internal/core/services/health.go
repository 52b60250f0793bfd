package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// HealthService probes the backend.
type HealthService struct {
	backend driven.Backend
}

// NewHealthService creates a new health service.
func NewHealthService(backend driven.Backend) *HealthService {
	return &HealthService{backend: backend}
}

// Check probes the backend once.
func (s *HealthService) Check(ctx context.Context) (*domain.BackendHealth, error) {
	if s.backend == nil {
		return nil, domain.ErrBackendUnavailable
	}

	health, err := s.backend.Health(ctx)
	if err != nil {
		logger.Warn("Health check against %s failed: %v", s.backend.BaseURL(), err)
		return nil, fmt.Errorf("health: %w", err)
	}

	logger.Debug("Backend health: status=%s model_ready=%t", health.Status, health.ModelReady)
	return health, nil
}

// BaseURL returns the backend address being probed.
func (s *HealthService) BaseURL() string {
	if s.backend == nil {
		return ""
	}
	return s.backend.BaseURL()
}
