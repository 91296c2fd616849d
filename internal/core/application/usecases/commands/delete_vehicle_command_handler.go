package commands

import (
	"context"
)

// DeleteVehicleCommandHandler removes a vehicle, refusing outright when the
// vehicle still owns an active route.
type DeleteVehicleCommandHandler struct {
	uowFactory VehicleUoWFactory
}

// NewDeleteVehicleCommandHandler creates a handler for vehicle deletion.
func NewDeleteVehicleCommandHandler(uowFactory VehicleUoWFactory) DeleteVehicleCommandHandler {
	return DeleteVehicleCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the vehicle after the active-route precondition check.
// Returns ErrVehicleHasActiveRoute when any active route still names it.
func (h *DeleteVehicleCommandHandler) Handle(ctx context.Context, cmd DeleteVehicleCommand) error {
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

	vehicleRepo := uow.VehicleRepository()

	v, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	active, err := uow.RouteRepository().GetAllActiveByVehicle(ctx, v.ID())
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return ErrVehicleHasActiveRoute
	}

	if err = vehicleRepo.Delete(ctx, v.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
