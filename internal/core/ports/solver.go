package ports

import (
	"context"
	"errors"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/stop"
	"fleetroute/internal/core/domain/model/vehicle"
)

// ErrSolveFailed is returned when a routing backend errors out, times out,
// or comes back with an unusable result. It is not retried within one
// planning run; the caller decides whether to resubmit.
var ErrSolveFailed = errors.New("routing backend failed to produce a solution")

// Problem is a solver-neutral routing problem: one depot, the stops to
// serve, and the vehicles available to serve them. Backends translate it
// into their own wire format.
//
// Each stop carries two solver-local numeric identifiers. CustomerLegID
// names the leg where the courier meets the recipient; DepotLegID names the
// matching depot leg that pair-style formulations require. Legs maps both
// back to domain stops so a solution can be translated without guessing.
type Problem struct {
	Depot       kernel.GeoPoint
	ServiceDate time.Time
	Stops       []ProblemStop
	Vehicles    []ProblemVehicle

	// Legs is the side-table from solver-local leg id to domain stop.
	// It lives only for the duration of one Solve call.
	Legs map[int64]StopLeg
}

// ProblemStop is one stop as the solver sees it.
type ProblemStop struct {
	StopID          kernel.UUID
	Location        kernel.GeoPoint
	Kind            stop.Kind
	ServiceSeconds  int
	WindowStart     time.Time
	WindowEnd       time.Time
	CustomerLegID   int64
	DepotLegID      int64

	// AllowedVehicle, when set, restricts the stop to exactly that
	// vehicle. Best effort: the ors backend enforces it as a matching
	// skill/constraint pair; the twogis wire format has no equivalent
	// and ignores it.
	AllowedVehicle *kernel.UUID
}

// ProblemVehicle is one vehicle as the solver sees it.
type ProblemVehicle struct {
	VehicleID   kernel.UUID
	SolverID    int64
	Profile     vehicle.Profile
	Capacity    int
	Start       kernel.GeoPoint
	WindowStart time.Time
	WindowEnd   time.Time
}

// StopLeg resolves a solver-local leg id back to a domain stop.
// CustomerFacing marks the leg where the courier interacts with the
// recipient; the synthetic depot leg of a pair is not customer-facing.
type StopLeg struct {
	StopID         kernel.UUID
	CustomerFacing bool
}

// Solution is the normalized result of one Solve call.
type Solution struct {
	Assignments []Assignment
}

// Assignment is one vehicle's planned tour: the customer-facing stops in
// visiting order plus the path summary the backend returned.
type Assignment struct {
	VehicleID kernel.UUID
	StopIDs   []kernel.UUID

	// Geometry is the encoded polyline depot -> stops -> depot, or ""
	// when the backend did not return one.
	Geometry        string
	DistanceMeters  float64
	DurationSeconds float64
}

// Solver is the contract both routing backends implement. Solve blocks
// until a solution is available or the backend's bounded wait expires;
// an asynchronous backend polls internally but never outlives the call.
type Solver interface {
	Solve(ctx context.Context, problem Problem) (Solution, error)
}
