package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fleetroute/internal/core/domain/model/depot"
	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/route"
	"fleetroute/internal/core/domain/model/stop"
	"fleetroute/internal/core/domain/model/vehicle"
	"fleetroute/internal/core/ports"
)

// ErrNothingPlanned is returned when no group produced a single route.
// The per-group reasons are attached to the error message.
var ErrNothingPlanned = errors.New("no routes could be planned")

// RoutePlanner is a domain service that turns a service date's backlog of
// planned, unassigned stops into routes.
//
// Stops are partitioned by depot; stops without a depot reference fall back
// to the primary depot (or the first registered one). Groups are planned one
// at a time against a shared "used vehicle" set so no vehicle is booked
// twice within one invocation. A failed group is recorded as a warning and
// never aborts the other groups.
//
// The used-vehicle set is scoped to one Plan call. Two concurrent Plan calls
// for the same date are not mutually exclusive; the calling layer serializes
// planning runs if that guarantee is needed.
type RoutePlanner struct {
	builder ProblemBuilder
	solver  ports.Solver
}

// NewRoutePlanner creates a RoutePlanner using the given problem builder and
// routing backend.
func NewRoutePlanner(builder ProblemBuilder, solver ports.Solver) RoutePlanner {
	return RoutePlanner{
		builder: builder,
		solver:  solver,
	}
}

// PlanInput is the pre-loaded state one planning run works on.
type PlanInput struct {
	ServiceDate time.Time
	Stops       []*stop.Stop
	Vehicles    []*vehicle.Vehicle
	Depots      []*depot.Depot
}

// PlannedRoute is one materialized route with its linked stops in visiting
// order. The stops are the same instances passed in via PlanInput, already
// mutated (route linkage, position, soft assignment).
type PlannedRoute struct {
	Route *route.Route
	Stops []*stop.Stop
}

// PlanResult aggregates the run's outcome. Warnings carries per-group and
// per-stop reasons for everything that could not be planned; it is non-empty
// even on success when some groups failed.
type PlanResult struct {
	Routes   []PlannedRoute
	Warnings []string
}

// Plan partitions the stops by depot and plans each group.
// Returns ErrNothingPlanned when zero routes were created.
func (p RoutePlanner) Plan(ctx context.Context, input PlanInput) (PlanResult, error) {
	groups, warnings := p.partition(input.Stops, input.Depots)
	result := PlanResult{Warnings: warnings}

	// Sorted depot ids keep group order stable across runs.
	depotIDs := make([]string, 0, len(groups))
	for id := range groups {
		depotIDs = append(depotIDs, id)
	}
	sort.Strings(depotIDs)

	used := make(map[string]bool)

	for _, depotID := range depotIDs {
		group := groups[depotID]

		available := make([]*vehicle.Vehicle, 0, len(input.Vehicles))
		for _, v := range input.Vehicles {
			if !used[v.ID().String()] {
				available = append(available, v)
			}
		}

		if len(available) == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("depot %s: no vehicles left to assign", depotID))
			continue
		}

		routes, groupWarnings := p.planGroup(ctx, input.ServiceDate, group, available, used)
		result.Routes = append(result.Routes, routes...)
		result.Warnings = append(result.Warnings, groupWarnings...)
	}

	if len(result.Routes) == 0 {
		return result, fmt.Errorf("%w: %v", ErrNothingPlanned, result.Warnings)
	}

	return result, nil
}

type depotGroup struct {
	depot *depot.Depot
	stops []*stop.Stop
}

// partition groups stops by their depot reference. Stops without one join
// the primary depot's group (or the first registered depot). Stops whose
// group cannot be resolved are reported, not planned.
func (p RoutePlanner) partition(stops []*stop.Stop, depots []*depot.Depot) (map[string]*depotGroup, []string) {
	byID := make(map[string]*depot.Depot, len(depots))
	var fallback *depot.Depot
	for _, d := range depots {
		byID[d.ID().String()] = d
		if d.IsPrimary() && fallback == nil {
			fallback = d
		}
	}
	if fallback == nil && len(depots) > 0 {
		fallback = depots[0]
	}

	groups := make(map[string]*depotGroup)
	var warnings []string

	for _, s := range stops {
		d := fallback
		if s.Depot() != nil {
			d = byID[s.Depot().String()]
		}

		if d == nil {
			warnings = append(warnings,
				fmt.Sprintf("stop %s: no depot available for planning", s.ID()))
			continue
		}

		id := d.ID().String()
		if groups[id] == nil {
			groups[id] = &depotGroup{depot: d}
		}
		groups[id].stops = append(groups[id].stops, s)
	}

	return groups, warnings
}

// planGroup builds and solves one depot's problem, materializing a route per
// non-empty assignment and marking its vehicle used.
func (p RoutePlanner) planGroup(
	ctx context.Context,
	serviceDate time.Time,
	group *depotGroup,
	available []*vehicle.Vehicle,
	used map[string]bool,
) ([]PlannedRoute, []string) {
	var warnings []string

	built, err := p.builder.Build(group.depot.Location(), serviceDate, group.stops, available)
	if err != nil {
		return nil, []string{fmt.Sprintf("depot %s: %v", group.depot.ID(), err)}
	}

	for _, skipped := range built.Skipped {
		warnings = append(warnings,
			fmt.Sprintf("stop %s: %s", skipped.StopID, skipped.Reason))
	}

	solution, err := p.solver.Solve(ctx, built.Problem)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("depot %s: %v", group.depot.ID(), err))
		return nil, warnings
	}

	stopsByID := make(map[string]*stop.Stop, len(group.stops))
	for _, s := range group.stops {
		stopsByID[s.ID().String()] = s
	}

	var routes []PlannedRoute

	for _, assignment := range solution.Assignments {
		if len(assignment.StopIDs) == 0 {
			continue
		}

		r, err := route.NewRoute(kernel.NewUUID(), assignment.VehicleID, serviceDate)
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("depot %s: %v", group.depot.ID(), err))
			continue
		}
		r.SetGeometry(assignment.Geometry)

		planned := PlannedRoute{Route: r}
		linkFailed := false

		for position, stopID := range assignment.StopIDs {
			s := stopsByID[stopID.String()]
			if s == nil {
				warnings = append(warnings,
					fmt.Sprintf("route for vehicle %s: backend returned unknown stop %s",
						assignment.VehicleID, stopID))
				linkFailed = true
				break
			}

			if err := s.AssignToRoute(r.ID(), position); err != nil {
				warnings = append(warnings,
					fmt.Sprintf("stop %s: %v", s.ID(), err))
				linkFailed = true
				break
			}
			if err := s.AssignVehicle(assignment.VehicleID); err != nil {
				warnings = append(warnings,
					fmt.Sprintf("stop %s: %v", s.ID(), err))
				linkFailed = true
				break
			}

			planned.Stops = append(planned.Stops, s)
		}

		if linkFailed {
			for _, s := range planned.Stops {
				s.Unlink()
			}
			continue
		}

		used[assignment.VehicleID.String()] = true
		routes = append(routes, planned)
	}

	return routes, warnings
}
