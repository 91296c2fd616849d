package queries

import (
	"context"

	"fleetroute/internal/core/ports"
)

// GetVehiclePositionQueryHandler reads from the live position tracker, not
// the database: positions are TTL'd telemetry and never persisted.
type GetVehiclePositionQueryHandler struct {
	tracker ports.PositionTracker
}

// NewGetVehiclePositionQueryHandler creates a handler over the given
// position tracker.
func NewGetVehiclePositionQueryHandler(tracker ports.PositionTracker) GetVehiclePositionQueryHandler {
	return GetVehiclePositionQueryHandler{tracker: tracker}
}

// Handle executes the query. Returns ports.ErrPositionNotTracked when the
// vehicle has never reported or its last report expired.
func (h GetVehiclePositionQueryHandler) Handle(
	ctx context.Context,
	query GetVehiclePositionQuery,
) (GetVehiclePositionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetVehiclePositionQueryResponse{}, err
	}

	position, err := h.tracker.GetPosition(ctx, query.VehicleID())
	if err != nil {
		return GetVehiclePositionQueryResponse{}, err
	}

	return GetVehiclePositionQueryResponse{
		VehicleID: query.VehicleID(),
		Position:  position,
	}, nil
}
