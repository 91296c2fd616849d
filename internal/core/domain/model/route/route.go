package route

import (
	"errors"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
)

// ErrRouteIsNotConstructed is returned when a Route instance was not created
// through NewRoute or RestoreRoute.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute")

// Route is the aggregate root for one vehicle's ordered stop sequence on one
// service date. The stop order itself is encoded on the stops (their route
// linkage and position); the route owns the vehicle binding, the lifecycle
// status, and the encoded path geometry returned by the solver.
//
// Invariants:
//   - exactly one owning vehicle, fixed at creation
//   - status moves Active -> Completed, never back
type Route struct {
	id          kernel.UUID
	vehicleID   kernel.UUID
	serviceDate time.Time
	status      Status

	// geometry holds the encoded polyline covering depot -> stops -> depot,
	// or "" when the backend did not return one.
	geometry string

	isConstructed bool
}

// NewRoute creates an Active route owned by the given vehicle.
func NewRoute(id kernel.UUID, vehicleID kernel.UUID, serviceDate time.Time) (*Route, error) {
	r := &Route{
		status:        Active,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setVehicleID(vehicleID),
	); err != nil {
		return nil, err
	}

	u := serviceDate.UTC()
	r.serviceDate = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return r, nil
}

// RestoreRoute reconstructs a route from persistence.
func RestoreRoute(
	id kernel.UUID,
	vehicleID kernel.UUID,
	serviceDate time.Time,
	status Status,
	geometry string,
) (*Route, error) {
	r, err := NewRoute(id, vehicleID, serviceDate)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	r.status = status
	r.geometry = geometry
	return r, nil
}

// Validate ensures the Route was created through a constructor.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// IsEqual compares two routes by identifier.
func (r *Route) IsEqual(other *Route) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID { return r.id }

// Vehicle returns the owning vehicle's identifier.
func (r *Route) Vehicle() kernel.UUID { return r.vehicleID }

// ServiceDate returns the calendar day the route covers (midnight UTC).
func (r *Route) ServiceDate() time.Time { return r.serviceDate }

// Status returns the route's lifecycle status.
func (r *Route) Status() Status { return r.status }

// Geometry returns the encoded path polyline, or "" when unavailable.
func (r *Route) Geometry() string { return r.geometry }

// IsActive reports whether the route is still being driven.
func (r *Route) IsActive() bool { return r.status == Active }

// SetGeometry stores the encoded path polyline.
func (r *Route) SetGeometry(geometry string) {
	r.geometry = geometry
}

// Complete closes the route. Only an Active route can be completed.
func (r *Route) Complete() error {
	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}
	r.status = newStatus
	return nil
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	r.vehicleID = vehicleID
	return nil
}
