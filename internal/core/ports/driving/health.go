package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// HealthService reports on the backend.
type HealthService interface {
	// Check probes the backend once.
	Check(ctx context.Context) (*domain.BackendHealth, error)

	// BaseURL returns the backend address being probed.
	BaseURL() string
}
