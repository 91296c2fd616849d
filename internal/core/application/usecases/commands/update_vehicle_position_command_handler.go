package commands

import (
	"context"

	"fleetroute/internal/core/ports"
)

// UpdateVehiclePositionCommandHandler verifies the vehicle exists and writes
// its live coordinate to the position tracker. The tracker write happens
// outside any transaction; a lost position is harmless, the next report
// replaces it.
type UpdateVehiclePositionCommandHandler struct {
	uowFactory VehicleUoWFactory
	tracker    ports.PositionTracker
}

// NewUpdateVehiclePositionCommandHandler creates a handler for live position
// updates.
func NewUpdateVehiclePositionCommandHandler(
	uowFactory VehicleUoWFactory,
	tracker ports.PositionTracker,
) UpdateVehiclePositionCommandHandler {
	return UpdateVehiclePositionCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
	}
}

// Handle records the position for an existing vehicle.
func (h *UpdateVehiclePositionCommandHandler) Handle(ctx context.Context, cmd UpdateVehiclePositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	v, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	return h.tracker.SetPosition(ctx, v.ID(), cmd.Position())
}
