package ports

import (
	"context"

	"fleetroute/internal/core/domain/model/depot"
	"fleetroute/internal/core/domain/model/kernel"
)

// DepotRepository defines the persistence contract for depot aggregates.
type DepotRepository interface {
	// Add persists a new depot aggregate to storage.
	Add(ctx context.Context, aggregate *depot.Depot) error

	// Get retrieves a depot aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*depot.Depot, error)

	// GetAll retrieves every registered depot.
	GetAll(ctx context.Context) ([]*depot.Depot, error)

	// GetPrimary retrieves the default depot used for stops without an
	// explicit depot binding. Returns errs.ObjectNotFoundError when no
	// depot is marked primary.
	GetPrimary(ctx context.Context) (*depot.Depot, error)
}
