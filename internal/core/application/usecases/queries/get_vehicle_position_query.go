package queries

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
)

var ErrGetVehiclePositionQueryIsNotConstructed = errors.New(
	"GetVehiclePositionQuery must be created via NewGetVehiclePositionQuery constructor",
)

// GetVehiclePositionQuery retrieves a vehicle's last reported live
// coordinate for map display.
type GetVehiclePositionQuery struct {
	vehicleID kernel.UUID
	guard     kernel.ConstructorGuard
}

// NewGetVehiclePositionQuery creates a query for the given vehicle.
func NewGetVehiclePositionQuery(vehicleID kernel.UUID) (GetVehiclePositionQuery, error) {
	if err := vehicleID.Validate(); err != nil {
		return GetVehiclePositionQuery{}, err
	}

	return GetVehiclePositionQuery{
		vehicleID: vehicleID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// VehicleID returns the vehicle the query covers.
func (q GetVehiclePositionQuery) VehicleID() kernel.UUID {
	return q.vehicleID
}

// Validate ensures the query was created through the constructor.
func (q GetVehiclePositionQuery) Validate() error {
	return q.guard.Validate(ErrGetVehiclePositionQueryIsNotConstructed)
}

// GetVehiclePositionQueryResponse is the vehicle's last known coordinate.
type GetVehiclePositionQueryResponse struct {
	VehicleID kernel.UUID
	Position  kernel.GeoPoint
}
