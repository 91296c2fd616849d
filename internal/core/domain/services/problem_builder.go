package services

import (
	"errors"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/stop"
	"fleetroute/internal/core/domain/model/vehicle"
	"fleetroute/internal/core/ports"
)

// ErrEmptyProblem is returned when, after filtering, there is nothing to
// plan: zero routeable stops or zero vehicles. Empty problems must never be
// submitted to a routing backend.
var ErrEmptyProblem = errors.New("no routeable stops or no vehicles to plan")

// AssignmentPolicy decides how a stop's current (soft) vehicle assignment is
// propagated into the problem. A required vehicle is always a hard
// constraint regardless of policy.
type AssignmentPolicy int

const (
	// PinCurrentAssignment treats the current assignment as a hard
	// constraint, same as a required vehicle. This keeps replanning stable
	// but can make the problem infeasible when the assigned courier goes
	// off duty.
	PinCurrentAssignment AssignmentPolicy = iota

	// IgnoreCurrentAssignment lets the backend move stops freely between
	// vehicles; only the required vehicle remains a constraint.
	IgnoreCurrentAssignment
)

// DefaultServiceDuration is assumed when a stop declares no service time.
const DefaultServiceDuration = 15 * time.Minute

// Default working window substituted when a stop declares none.
const (
	defaultWindowStart = "09:00"
	defaultWindowEnd   = "18:00"
)

// ProblemBuilder is a domain service that produces a solver-neutral routing
// problem from one depot coordinate, the stops to serve and the vehicles
// available to serve them.
//
// Business rules:
//   - stops without a coordinate are excluded and reported, never dropped
//     silently
//   - every stop carries a time window: its own, or the default working
//     window anchored to the service date
//   - a required vehicle is always a hard constraint; the current soft
//     assignment follows the configured AssignmentPolicy
type ProblemBuilder struct {
	policy        AssignmentPolicy
	defaultWindow kernel.TimeWindow
}

// NewProblemBuilder creates a ProblemBuilder with the given assignment policy.
func NewProblemBuilder(policy AssignmentPolicy) (ProblemBuilder, error) {
	window, err := kernel.NewTimeWindow(defaultWindowStart, defaultWindowEnd)
	if err != nil {
		return ProblemBuilder{}, err
	}

	return ProblemBuilder{
		policy:        policy,
		defaultWindow: window,
	}, nil
}

// SkippedStop reports one stop excluded from the problem and why.
type SkippedStop struct {
	StopID kernel.UUID
	Reason string
}

// BuildResult is a built problem plus the stops that could not take part.
type BuildResult struct {
	Problem ports.Problem
	Skipped []SkippedStop
}

// Build constructs the routing problem. Stops lacking a coordinate are
// collected into Skipped. Returns ErrEmptyProblem when no routeable stop or
// no vehicle remains.
func (b ProblemBuilder) Build(
	depotLocation kernel.GeoPoint,
	serviceDate time.Time,
	stops []*stop.Stop,
	vehicles []*vehicle.Vehicle,
) (BuildResult, error) {
	if err := depotLocation.Validate(); err != nil {
		return BuildResult{}, err
	}

	result := BuildResult{
		Problem: ports.Problem{
			Depot:       depotLocation,
			ServiceDate: serviceDate,
			Legs:        make(map[int64]ports.StopLeg),
		},
	}

	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return BuildResult{}, err
		}

		if !s.HasCoordinate() {
			result.Skipped = append(result.Skipped, SkippedStop{
				StopID: s.ID(),
				Reason: "no coordinate",
			})
			continue
		}

		ps := b.buildStop(s, serviceDate, int64(len(result.Problem.Stops)))
		result.Problem.Stops = append(result.Problem.Stops, ps)
		result.Problem.Legs[ps.CustomerLegID] = ports.StopLeg{StopID: s.ID(), CustomerFacing: true}
		result.Problem.Legs[ps.DepotLegID] = ports.StopLeg{StopID: s.ID(), CustomerFacing: false}
	}

	if len(result.Problem.Stops) == 0 || len(vehicles) == 0 {
		return BuildResult{}, ErrEmptyProblem
	}

	windowStart, windowEnd := b.defaultWindow.Anchor(serviceDate)

	for i, v := range vehicles {
		if err := v.Validate(); err != nil {
			return BuildResult{}, err
		}

		start := depotLocation
		if v.Start() != nil {
			start = *v.Start()
		}

		result.Problem.Vehicles = append(result.Problem.Vehicles, ports.ProblemVehicle{
			VehicleID:   v.ID(),
			SolverID:    int64(i + 1),
			Profile:     v.Profile(),
			Capacity:    v.Capacity(),
			Start:       start,
			WindowStart: windowStart,
			WindowEnd:   windowEnd,
		})
	}

	return result, nil
}

// buildStop translates one domain stop. The solver-local leg ids are derived
// from the stop's index: odd for the customer leg, even for the depot leg,
// so the two never collide.
func (b ProblemBuilder) buildStop(s *stop.Stop, serviceDate time.Time, index int64) ports.ProblemStop {
	window := b.defaultWindow
	if s.Window() != nil {
		window = *s.Window()
	}

	windowStart, windowEnd := window.Anchor(serviceDate)

	service := s.ServiceDuration()
	if service <= 0 {
		service = DefaultServiceDuration
	}

	ps := ports.ProblemStop{
		StopID:         s.ID(),
		Location:       *s.Location(),
		Kind:           s.Kind(),
		ServiceSeconds: int(service.Seconds()),
		WindowStart:    windowStart,
		WindowEnd:      windowEnd,
		CustomerLegID:  index*2 + 1,
		DepotLegID:     index*2 + 2,
	}

	switch {
	case s.RequiredVehicle() != nil:
		ps.AllowedVehicle = s.RequiredVehicle()
	case b.policy == PinCurrentAssignment && s.AssignedVehicle() != nil:
		ps.AllowedVehicle = s.AssignedVehicle()
	}

	return ps
}
