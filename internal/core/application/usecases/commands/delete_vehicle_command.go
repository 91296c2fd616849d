package commands

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
)

var (
	ErrDeleteVehicleCommandIsNotConstructed = errors.New(
		"DeleteVehicleCommand must be created via NewDeleteVehicleCommand constructor",
	)

	// ErrVehicleHasActiveRoute rejects deleting a vehicle that still owns
	// an active route. The route must be deleted or completed first; the
	// deletion never cascades.
	ErrVehicleHasActiveRoute = errors.New("vehicle owns an active route")
)

// DeleteVehicleCommand removes a vehicle from the fleet.
type DeleteVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewDeleteVehicleCommand creates a command to delete the given vehicle.
func NewDeleteVehicleCommand(vehicleID kernel.UUID) (DeleteVehicleCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return DeleteVehicleCommand{}, err
	}

	return DeleteVehicleCommand{
		vehicleID: vehicleID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteVehicleCommand) Validate() error {
	return c.guard.Validate(ErrDeleteVehicleCommandIsNotConstructed)
}

// VehicleID returns the vehicle being deleted.
func (c DeleteVehicleCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}
