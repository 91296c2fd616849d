// Package routerepo persists route aggregates with GORM, converting between
// the domain model and its relational representation.
package routerepo

import (
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO is the database row for a route aggregate.
type RouteDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleID   uuid.UUID `gorm:"type:uuid;index"`
	ServiceDate time.Time `gorm:"index"`
	Status      int       `gorm:"index"`
	Geometry    string    `gorm:"type:text"`
}

// TableName overrides GORM's default naming convention.
func (RouteDTO) TableName() string {
	return "routes"
}

// fromDomain converts a route aggregate to its database representation.
func fromDomain(r *route.Route) RouteDTO {
	return RouteDTO{
		ID:          r.ID().Bytes(),
		VehicleID:   r.Vehicle().Bytes(),
		ServiceDate: r.ServiceDate(),
		Status:      int(r.Status()),
		Geometry:    r.Geometry(),
	}
}

// toDomain reconstructs a route aggregate from its database row.
func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(id, vehicleID, dto.ServiceDate, route.Status(dto.Status), dto.Geometry)
}
