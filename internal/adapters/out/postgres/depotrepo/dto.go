// Package depotrepo persists depot aggregates with GORM, converting between
// the domain model and its relational representation.
package depotrepo

import (
	"fleetroute/internal/core/domain/model/depot"
	"fleetroute/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DepotDTO is the database row for a depot aggregate.
type DepotDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Address   string
	Lat       float64
	Lng       float64
	IsPrimary bool `gorm:"index"`
}

// TableName overrides GORM's default naming convention.
func (DepotDTO) TableName() string {
	return "depots"
}

// fromDomain converts a depot aggregate to its database representation.
func fromDomain(d *depot.Depot) DepotDTO {
	return DepotDTO{
		ID:        d.ID().Bytes(),
		Address:   d.Address(),
		Lat:       d.Location().Lat(),
		Lng:       d.Location().Lng(),
		IsPrimary: d.IsPrimary(),
	}
}

// toDomain reconstructs a depot aggregate from its database row.
func toDomain(dto DepotDTO) (*depot.Depot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return depot.RestoreDepot(id, dto.Address, location, dto.IsPrimary)
}
