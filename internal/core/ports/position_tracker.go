package ports

import (
	"context"
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
)

// ErrPositionNotTracked is returned when no live position has been recorded
// for a vehicle.
var ErrPositionNotTracked = errors.New("no live position recorded for vehicle")

// PositionTracker stores the last reported live coordinate per vehicle.
// Positions are display-only telemetry: planning never reads them.
type PositionTracker interface {
	// SetPosition records the vehicle's latest coordinate.
	SetPosition(ctx context.Context, vehicleID kernel.UUID, position kernel.GeoPoint) error

	// GetPosition returns the vehicle's latest coordinate.
	// Returns ErrPositionNotTracked when nothing has been recorded.
	GetPosition(ctx context.Context, vehicleID kernel.UUID) (kernel.GeoPoint, error)
}
