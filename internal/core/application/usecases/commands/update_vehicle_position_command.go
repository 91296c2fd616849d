package commands

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
)

var ErrUpdateVehiclePositionCommandIsNotConstructed = errors.New(
	"UpdateVehiclePositionCommand must be created via NewUpdateVehiclePositionCommand constructor",
)

// UpdateVehiclePositionCommand records a vehicle's live coordinate.
// Positions are display-only telemetry and never feed back into planning.
type UpdateVehiclePositionCommand struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID
	position  kernel.GeoPoint

	guard kernel.ConstructorGuard
}

// NewUpdateVehiclePositionCommand creates a command carrying the vehicle's
// latest coordinate.
func NewUpdateVehiclePositionCommand(vehicleID kernel.UUID, position kernel.GeoPoint) (UpdateVehiclePositionCommand, error) {
	if err := errors.Join(
		vehicleID.Validate(),
		position.Validate(),
	); err != nil {
		return UpdateVehiclePositionCommand{}, err
	}

	return UpdateVehiclePositionCommand{
		vehicleID: vehicleID,
		position:  position,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateVehiclePositionCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVehiclePositionCommandIsNotConstructed)
}

// VehicleID returns the vehicle being tracked.
func (c UpdateVehiclePositionCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// Position returns the reported coordinate.
func (c UpdateVehiclePositionCommand) Position() kernel.GeoPoint {
	return c.position
}
