// Package ports defines the contracts between the domain layer and
// infrastructure: repository interfaces, the unit of work, the solver
// backend abstraction, and the live position tracker.
package ports

import (
	"context"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/stop"
)

// StopRepository defines the persistence contract for stop aggregates.
type StopRepository interface {
	// Add persists a new stop aggregate to storage.
	Add(ctx context.Context, aggregate *stop.Stop) error

	// Update persists changes to an existing stop aggregate.
	Update(ctx context.Context, aggregate *stop.Stop) error

	// Get retrieves a stop aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*stop.Stop, error)

	// GetAllPlannedUnassignedByDate retrieves the planning backlog for a
	// service date: stops in Planned status not linked to any route.
	GetAllPlannedUnassignedByDate(ctx context.Context, serviceDate time.Time) ([]*stop.Stop, error)

	// GetAllByRouteID retrieves a route's stops ordered by position.
	GetAllByRouteID(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error)
}
