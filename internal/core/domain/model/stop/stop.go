package stop

import (
	"errors"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/pkg/errs"
)

// ErrStopIsNotConstructed is returned when a Stop instance was not created
// through NewStop or RestoreStop.
var ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop or RestoreStop")

// ErrFailureReasonIsRequired is returned when a stop is failed without a reason.
var ErrFailureReasonIsRequired = errors.New("failure reason is required")

// Stop is the aggregate root for a single order visit (pickup or delivery).
//
// Invariants:
//   - has a valid unique identifier and a non-empty display name
//   - route linkage and position are set together and cleared together
//   - a terminal stop (Completed/Failed) changes only through re-marking
//     (overwrite, permitted) or explicit unassignment (reset to Planned)
//
// A Stop exists independently of any Route; planning or manual assignment
// links it to one. The coordinate is optional; a stop without one cannot be
// routed and is excluded (and reported) by the problem builder.
type Stop struct {
	id   kernel.UUID
	name string

	// display fields, not used for planning
	address        string
	recipientName  string
	recipientPhone string
	comment        string

	location        *kernel.GeoPoint
	kind            Kind
	serviceDuration time.Duration
	window          *kernel.TimeWindow

	// requiredVehicleID is a hard constraint; assignedVehicleID is the
	// current (soft) assignment, whose constraint strength is a problem
	// builder policy.
	requiredVehicleID *kernel.UUID
	assignedVehicleID *kernel.UUID

	depotID     *kernel.UUID
	serviceDate time.Time

	status        Status
	routeID       *kernel.UUID
	position      *int
	proofRef      string
	failureReason string

	isConstructed bool
}

// NewStop creates a Planned stop for the given service date. Optional
// attributes (coordinate, window, constraints, depot) are set afterwards via
// the Set… methods.
func NewStop(id kernel.UUID, name string, serviceDate time.Time, kind Kind) (*Stop, error) {
	s := &Stop{
		status:        Planned,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setKind(kind),
	); err != nil {
		return nil, err
	}

	s.serviceDate = normalizeDate(serviceDate)
	return s, nil
}

// RestoreStopParams carries the full persisted state of a stop.
type RestoreStopParams struct {
	ID                kernel.UUID
	Name              string
	Address           string
	RecipientName     string
	RecipientPhone    string
	Comment           string
	Location          *kernel.GeoPoint
	Kind              Kind
	ServiceDuration   time.Duration
	Window            *kernel.TimeWindow
	RequiredVehicleID *kernel.UUID
	AssignedVehicleID *kernel.UUID
	DepotID           *kernel.UUID
	ServiceDate       time.Time
	Status            Status
	RouteID           *kernel.UUID
	Position          *int
	ProofRef          string
	FailureReason     string
}

// RestoreStop reconstructs a stop from persistence, validating invariants.
func RestoreStop(p RestoreStopParams) (*Stop, error) {
	s, err := NewStop(p.ID, p.Name, p.ServiceDate, p.Kind)
	if err != nil {
		return nil, err
	}

	if err = p.Status.Validate(); err != nil {
		return nil, err
	}

	if (p.RouteID == nil) != (p.Position == nil) {
		return nil, errs.NewValueIsInvalidError("route linkage and position must be set together")
	}

	s.address = p.Address
	s.recipientName = p.RecipientName
	s.recipientPhone = p.RecipientPhone
	s.comment = p.Comment
	s.location = p.Location
	s.serviceDuration = p.ServiceDuration
	s.window = p.Window
	s.requiredVehicleID = p.RequiredVehicleID
	s.assignedVehicleID = p.AssignedVehicleID
	s.depotID = p.DepotID
	s.status = p.Status
	s.routeID = p.RouteID
	s.position = p.Position
	s.proofRef = p.ProofRef
	s.failureReason = p.FailureReason
	return s, nil
}

// Validate ensures the Stop was created through a constructor.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}
	return nil
}

// IsEqual compares two stops by identifier.
func (s *Stop) IsEqual(other *Stop) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the stop's unique identifier.
func (s *Stop) ID() kernel.UUID { return s.id }

// Name returns the stop's display name.
func (s *Stop) Name() string { return s.name }

// Address returns the stop's display address.
func (s *Stop) Address() string { return s.address }

// RecipientName returns the recipient's display name.
func (s *Stop) RecipientName() string { return s.recipientName }

// RecipientPhone returns the recipient's contact phone.
func (s *Stop) RecipientPhone() string { return s.recipientPhone }

// Comment returns the dispatcher comment.
func (s *Stop) Comment() string { return s.comment }

// Location returns the stop's coordinate, or nil for an unrouteable stop.
func (s *Stop) Location() *kernel.GeoPoint { return s.location }

// Kind returns whether this is a pickup or delivery visit.
func (s *Stop) Kind() Kind { return s.kind }

// ServiceDuration returns the declared time occupied at the stop.
// Zero means "unset"; the problem builder substitutes its default.
func (s *Stop) ServiceDuration() time.Duration { return s.serviceDuration }

// Window returns the declared time window, or nil when none was given.
func (s *Stop) Window() *kernel.TimeWindow { return s.window }

// RequiredVehicle returns the hard-assigned vehicle id, or nil.
func (s *Stop) RequiredVehicle() *kernel.UUID { return s.requiredVehicleID }

// AssignedVehicle returns the currently assigned vehicle id, or nil.
func (s *Stop) AssignedVehicle() *kernel.UUID { return s.assignedVehicleID }

// Depot returns the origin depot id, or nil when the stop follows the
// primary depot fallback.
func (s *Stop) Depot() *kernel.UUID { return s.depotID }

// ServiceDate returns the calendar day the stop is planned for (midnight UTC).
func (s *Stop) ServiceDate() time.Time { return s.serviceDate }

// Status returns the current lifecycle status.
func (s *Stop) Status() Status { return s.status }

// Route returns the linked route id, or nil when unrouted.
func (s *Stop) Route() *kernel.UUID { return s.routeID }

// Position returns the stop's index within its route, or nil when unrouted.
func (s *Stop) Position() *int { return s.position }

// ProofRef returns the proof-of-completion reference.
func (s *Stop) ProofRef() string { return s.proofRef }

// FailureReason returns the recorded failure reason.
func (s *Stop) FailureReason() string { return s.failureReason }

// IsTerminal reports whether the stop reached a terminal status.
func (s *Stop) IsTerminal() bool { return s.status.IsTerminal() }

// HasCoordinate reports whether the stop can be routed.
func (s *Stop) HasCoordinate() bool { return s.location != nil }

// SetLocation attaches a validated coordinate.
func (s *Stop) SetLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	s.location = &point
	return nil
}

// SetDisplayDetails updates the non-planning display fields.
func (s *Stop) SetDisplayDetails(address, recipientName, recipientPhone, comment string) {
	s.address = address
	s.recipientName = recipientName
	s.recipientPhone = recipientPhone
	s.comment = comment
}

// SetServiceDuration declares the time occupied at the stop.
func (s *Stop) SetServiceDuration(d time.Duration) error {
	if d < 0 {
		return errs.NewValueIsInvalidError("service duration must not be negative")
	}
	s.serviceDuration = d
	return nil
}

// SetWindow attaches a validated time window.
func (s *Stop) SetWindow(w kernel.TimeWindow) error {
	if err := w.Validate(); err != nil {
		return err
	}
	s.window = &w
	return nil
}

// RequireVehicle hard-constrains the stop to one specific vehicle.
func (s *Stop) RequireVehicle(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	s.requiredVehicleID = &vehicleID
	return nil
}

// AssignVehicle records the current (soft) vehicle assignment.
func (s *Stop) AssignVehicle(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	s.assignedVehicleID = &vehicleID
	return nil
}

// SetDepot records the origin depot reference.
func (s *Stop) SetDepot(depotID kernel.UUID) error {
	if err := depotID.Validate(); err != nil {
		return err
	}
	s.depotID = &depotID
	return nil
}

// Start moves a Planned stop to InProgress.
func (s *Stop) Start() error {
	newStatus, err := s.status.Start()
	if err != nil {
		return err
	}
	s.status = newStatus
	return nil
}

// AssignToRoute links the stop to a route at the given position. Linking is
// allowed regardless of status: planning links Planned stops, and manual
// reordering may re-link stops that are already terminal.
func (s *Stop) AssignToRoute(routeID kernel.UUID, position int) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	if position < 0 {
		return errs.NewValueIsInvalidError("position must not be negative")
	}

	s.routeID = &routeID
	s.position = &position
	return nil
}

// Unlink clears the route linkage and position without touching the status.
// Used by bulk reordering, where omitted stops leave the route but keep
// their own lifecycle state.
func (s *Stop) Unlink() {
	s.routeID = nil
	s.position = nil
}

// Unassign pulls the stop out of its route and resets it to Planned.
// This is the only way back out of a terminal status. Idempotent: calling it
// on an unrouted Planned stop is a no-op.
func (s *Stop) Unassign() {
	s.Unlink()
	s.status = Planned
}

// Complete marks the stop fulfilled, attaching a proof reference.
// Re-marking an already-terminal stop is permitted and overwrites the
// previous outcome.
func (s *Stop) Complete(proofRef string) {
	s.status = Completed
	s.proofRef = proofRef
	s.failureReason = ""
}

// Fail marks the stop unfulfillable with the given reason.
// Re-marking an already-terminal stop is permitted and overwrites the
// previous outcome.
func (s *Stop) Fail(reason string) error {
	if reason == "" {
		return ErrFailureReasonIsRequired
	}

	s.status = Failed
	s.failureReason = reason
	s.proofRef = ""
	return nil
}

func (s *Stop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stop) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Stop) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	s.kind = kind
	return nil
}

// normalizeDate truncates a timestamp to its calendar day in UTC so that
// stops and routes compare service dates exactly.
func normalizeDate(t time.Time) time.Time {
	return kernel.DateOnly(t)
}
