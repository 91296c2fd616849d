// Package stoprepo persists stop aggregates with GORM, converting between
// the domain model and its relational representation.
package stoprepo

import (
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/stop"

	"github.com/google/uuid"
)

// StopDTO is the database row for a stop aggregate. Nullable columns map to
// pointers: a stop may lack a coordinate, a window, vehicle constraints, a
// depot binding, or a route linkage.
type StopDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Address        string
	RecipientName  string
	RecipientPhone string
	Comment        string

	Lat *float64
	Lng *float64

	Kind           int
	ServiceSeconds int64
	WindowStart    string
	WindowEnd      string

	RequiredVehicleID *uuid.UUID `gorm:"type:uuid"`
	AssignedVehicleID *uuid.UUID `gorm:"type:uuid;index"`
	DepotID           *uuid.UUID `gorm:"type:uuid;index"`

	ServiceDate time.Time `gorm:"index"`
	Status      int       `gorm:"index"`

	RouteID  *uuid.UUID `gorm:"type:uuid;index"`
	Position *int

	ProofRef      string
	FailureReason string
}

// TableName overrides GORM's default naming convention.
func (StopDTO) TableName() string {
	return "stops"
}

func uuidColumn(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func uuidFromColumn(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil //absent optional reference
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// fromDomain converts a stop aggregate to its database representation.
func fromDomain(s *stop.Stop) StopDTO {
	dto := StopDTO{
		ID:                s.ID().Bytes(),
		Name:              s.Name(),
		Address:           s.Address(),
		RecipientName:     s.RecipientName(),
		RecipientPhone:    s.RecipientPhone(),
		Comment:           s.Comment(),
		Kind:              int(s.Kind()),
		ServiceSeconds:    int64(s.ServiceDuration() / time.Second),
		RequiredVehicleID: uuidColumn(s.RequiredVehicle()),
		AssignedVehicleID: uuidColumn(s.AssignedVehicle()),
		DepotID:           uuidColumn(s.Depot()),
		ServiceDate:       s.ServiceDate(),
		Status:            int(s.Status()),
		RouteID:           uuidColumn(s.Route()),
		Position:          s.Position(),
		ProofRef:          s.ProofRef(),
		FailureReason:     s.FailureReason(),
	}

	if loc := s.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}

	if w := s.Window(); w != nil {
		dto.WindowStart = w.Start()
		dto.WindowEnd = w.End()
	}

	return dto
}

// toDomain reconstructs a stop aggregate from its database row.
func toDomain(dto StopDTO) (*stop.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requiredVehicleID, err := uuidFromColumn(dto.RequiredVehicleID)
	if err != nil {
		return nil, err
	}
	assignedVehicleID, err := uuidFromColumn(dto.AssignedVehicleID)
	if err != nil {
		return nil, err
	}
	depotID, err := uuidFromColumn(dto.DepotID)
	if err != nil {
		return nil, err
	}
	routeID, err := uuidFromColumn(dto.RouteID)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	var window *kernel.TimeWindow
	if dto.WindowStart != "" && dto.WindowEnd != "" {
		w, windowErr := kernel.NewTimeWindow(dto.WindowStart, dto.WindowEnd)
		if windowErr != nil {
			return nil, windowErr
		}
		window = &w
	}

	return stop.RestoreStop(stop.RestoreStopParams{
		ID:                id,
		Name:              dto.Name,
		Address:           dto.Address,
		RecipientName:     dto.RecipientName,
		RecipientPhone:    dto.RecipientPhone,
		Comment:           dto.Comment,
		Location:          location,
		Kind:              stop.Kind(dto.Kind),
		ServiceDuration:   time.Duration(dto.ServiceSeconds) * time.Second,
		Window:            window,
		RequiredVehicleID: requiredVehicleID,
		AssignedVehicleID: assignedVehicleID,
		DepotID:           depotID,
		ServiceDate:       dto.ServiceDate,
		Status:            stop.Status(dto.Status),
		RouteID:           routeID,
		Position:          dto.Position,
		ProofRef:          dto.ProofRef,
		FailureReason:     dto.FailureReason,
	})
}
