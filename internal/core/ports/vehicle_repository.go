package ports

import (
	"context"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/vehicle"
)

// VehicleRepository defines the persistence contract for vehicle aggregates.
type VehicleRepository interface {
	// Add persists a new vehicle aggregate to storage.
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Update persists changes to an existing vehicle aggregate.
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Get retrieves a vehicle aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetAllOnDuty retrieves every vehicle available for planning.
	GetAllOnDuty(ctx context.Context) ([]*vehicle.Vehicle, error)

	// Delete removes a vehicle aggregate from storage.
	Delete(ctx context.Context, id kernel.UUID) error
}
