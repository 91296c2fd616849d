// Package vehiclerepo persists vehicle aggregates with GORM, converting
// between the domain model and its relational representation.
package vehiclerepo

import (
	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO is the database row for a vehicle aggregate. The start
// coordinate is optional: a vehicle without one departs from its depot.
type VehicleDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Transport string
	Capacity  int
	StartLat  *float64
	StartLng  *float64
	OnDuty    bool `gorm:"index"`
}

// TableName overrides GORM's default naming convention.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// fromDomain converts a vehicle aggregate to its database representation.
func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	dto := VehicleDTO{
		ID:        v.ID().Bytes(),
		Name:      v.Name(),
		Transport: string(v.Transport()),
		Capacity:  v.Capacity(),
		OnDuty:    v.OnDuty(),
	}

	if start := v.Start(); start != nil {
		lat, lng := start.Lat(), start.Lng()
		dto.StartLat, dto.StartLng = &lat, &lng
	}

	return dto
}

// toDomain reconstructs a vehicle aggregate from its database row.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var start *kernel.GeoPoint
	if dto.StartLat != nil && dto.StartLng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.StartLat, *dto.StartLng)
		if pointErr != nil {
			return nil, pointErr
		}
		start = &point
	}

	return vehicle.RestoreVehicle(
		id,
		dto.Name,
		vehicle.TransportType(dto.Transport),
		dto.Capacity,
		start,
		dto.OnDuty,
	)
}
