package ports

import (
	"context"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates.
type RouteRepository interface {
	// Add persists a new route aggregate to storage.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route aggregate.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// GetAllByDate retrieves every route planned for a service date.
	GetAllByDate(ctx context.Context, serviceDate time.Time) ([]*route.Route, error)

	// GetActiveByVehicle retrieves the vehicle's active route for a service
	// date, if one exists. Returns errs.ObjectNotFoundError otherwise.
	GetActiveByVehicle(ctx context.Context, vehicleID kernel.UUID, serviceDate time.Time) (*route.Route, error)

	// GetAllActiveByVehicle retrieves every active route owned by the
	// vehicle, across all service dates.
	GetAllActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*route.Route, error)

	// Delete removes a route aggregate from storage.
	Delete(ctx context.Context, id kernel.UUID) error
}
