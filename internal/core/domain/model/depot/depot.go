// Package depot contains the Depot aggregate: a warehouse stops are grouped
// under for planning. Every planned tour starts and ends at its depot.
package depot

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/pkg/errs"
)

// ErrDepotIsNotConstructed is returned when a Depot instance was not created
// through NewDepot or RestoreDepot.
var ErrDepotIsNotConstructed = errors.New("Depot must be created via NewDepot or RestoreDepot")

// Depot is a warehouse with a fixed coordinate. Exactly one depot is marked
// primary; stops without an explicit depot are planned from it.
type Depot struct {
	id        kernel.UUID
	address   string
	location  kernel.GeoPoint
	isPrimary bool

	isConstructed bool
}

// NewDepot creates a depot at the given coordinate.
func NewDepot(id kernel.UUID, address string, location kernel.GeoPoint) (*Depot, error) {
	d := &Depot{isConstructed: true}

	if err := errors.Join(
		d.setID(id),
		d.setAddress(address),
		d.setLocation(location),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDepot reconstructs a depot from persistence.
func RestoreDepot(id kernel.UUID, address string, location kernel.GeoPoint, isPrimary bool) (*Depot, error) {
	d, err := NewDepot(id, address, location)
	if err != nil {
		return nil, err
	}

	d.isPrimary = isPrimary
	return d, nil
}

// Validate ensures the Depot was created through a constructor.
func (d *Depot) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDepotIsNotConstructed
	}
	return nil
}

// IsEqual compares two depots by identifier.
func (d *Depot) IsEqual(other *Depot) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the depot's unique identifier.
func (d *Depot) ID() kernel.UUID { return d.id }

// Address returns the depot's display address.
func (d *Depot) Address() string { return d.address }

// Location returns the depot's coordinate.
func (d *Depot) Location() kernel.GeoPoint { return d.location }

// IsPrimary reports whether this is the default depot for unscoped stops.
func (d *Depot) IsPrimary() bool { return d.isPrimary }

// MarkPrimary flags this depot as the default one. The caller is responsible
// for clearing the flag on the previous primary.
func (d *Depot) MarkPrimary() {
	d.isPrimary = true
}

// ClearPrimary removes the default flag.
func (d *Depot) ClearPrimary() {
	d.isPrimary = false
}

func (d *Depot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Depot) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	d.address = address
	return nil
}

func (d *Depot) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}
