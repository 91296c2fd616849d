package vehicle

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/pkg/errs"
)

// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not
// created through NewVehicle or RestoreVehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle")

// DefaultCapacity is the stop capacity assumed when a courier is registered
// without one.
const DefaultCapacity = 100

// Vehicle is a courier as the planner sees them: capacity, movement profile,
// start coordinate, and duty status. The live tracked position is held
// out-of-band (position tracker adapter) and never used for planning.
type Vehicle struct {
	id        kernel.UUID
	name      string
	transport TransportType
	capacity  int
	start     *kernel.GeoPoint
	onDuty    bool

	isConstructed bool
}

// NewVehicle creates a vehicle. A non-positive capacity is replaced with
// DefaultCapacity. The start coordinate is optional; planning falls back to
// the group's depot when it is absent.
func NewVehicle(id kernel.UUID, name string, transport TransportType, capacity int) (*Vehicle, error) {
	v := &Vehicle{isConstructed: true}

	if err := errors.Join(
		v.setID(id),
		v.setName(name),
	); err != nil {
		return nil, err
	}

	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	v.capacity = capacity
	v.transport = transport
	return v, nil
}

// RestoreVehicle reconstructs a vehicle from persistence.
func RestoreVehicle(
	id kernel.UUID,
	name string,
	transport TransportType,
	capacity int,
	start *kernel.GeoPoint,
	onDuty bool,
) (*Vehicle, error) {
	v, err := NewVehicle(id, name, transport, capacity)
	if err != nil {
		return nil, err
	}

	v.start = start
	v.onDuty = onDuty
	return v, nil
}

// Validate ensures the Vehicle was created through a constructor.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

// IsEqual compares two vehicles by identifier.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID { return v.id }

// Name returns the courier's display name.
func (v *Vehicle) Name() string { return v.name }

// Transport returns the registered transport type.
func (v *Vehicle) Transport() TransportType { return v.transport }

// Profile returns the movement profile derived from the transport type.
func (v *Vehicle) Profile() Profile { return ProfileForTransport(v.transport) }

// Capacity returns how many stops the vehicle can carry.
func (v *Vehicle) Capacity() int { return v.capacity }

// Start returns the vehicle's home/start coordinate, or nil.
func (v *Vehicle) Start() *kernel.GeoPoint { return v.start }

// OnDuty reports whether the courier is available for planning.
func (v *Vehicle) OnDuty() bool { return v.onDuty }

// SetStart attaches a validated start coordinate.
func (v *Vehicle) SetStart(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	v.start = &point
	return nil
}

// SetOnDuty toggles the courier's availability for planning.
func (v *Vehicle) SetOnDuty(onDuty bool) {
	v.onDuty = onDuty
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	v.name = name
	return nil
}
