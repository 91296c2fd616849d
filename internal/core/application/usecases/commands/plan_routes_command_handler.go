package commands

import (
	"context"

	"fleetroute/internal/core/domain/services"
)

// PlanRoutesResult summarizes one planning run.
type PlanRoutesResult struct {
	RoutesCreated int
	StopsAssigned int
	Warnings      []string
}

// PlanRoutesCommandHandler runs the full planning flow: load the date's
// backlog, partition and solve it, then persist the created routes and the
// re-linked stops in one transaction.
//
// Concurrent planning runs for the same date are not serialized here; the
// used-vehicle bookkeeping is scoped to a single run.
type PlanRoutesCommandHandler struct {
	uowFactory PlanningUoWFactory
	planner    services.RoutePlanner
}

// NewPlanRoutesCommandHandler creates a handler wiring the planning unit of
// work to the route planner.
func NewPlanRoutesCommandHandler(uowFactory PlanningUoWFactory, planner services.RoutePlanner) PlanRoutesCommandHandler {
	return PlanRoutesCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
	}
}

// Handle executes the planning run. An empty backlog is a successful no-op;
// a run where no group could be planned returns the planner's error with
// the per-group reasons attached.
func (h *PlanRoutesCommandHandler) Handle(ctx context.Context, cmd PlanRoutesCommand) (PlanRoutesResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlanRoutesResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlanRoutesResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stopRepo := uow.StopRepository()

	stops, err := stopRepo.GetAllPlannedUnassignedByDate(ctx, cmd.ServiceDate())
	if err != nil {
		return PlanRoutesResult{}, err
	}
	if len(stops) == 0 {
		return PlanRoutesResult{}, nil
	}

	vehicles, err := uow.VehicleRepository().GetAllOnDuty(ctx)
	if err != nil {
		return PlanRoutesResult{}, err
	}

	depots, err := uow.DepotRepository().GetAll(ctx)
	if err != nil {
		return PlanRoutesResult{}, err
	}

	planned, err := h.planner.Plan(ctx, services.PlanInput{
		ServiceDate: cmd.ServiceDate(),
		Stops:       stops,
		Vehicles:    vehicles,
		Depots:      depots,
	})
	if err != nil {
		return PlanRoutesResult{Warnings: planned.Warnings}, err
	}

	result := PlanRoutesResult{Warnings: planned.Warnings}
	routeRepo := uow.RouteRepository()

	for _, pr := range planned.Routes {
		if err = routeRepo.Add(ctx, pr.Route); err != nil {
			return PlanRoutesResult{}, err
		}

		for _, s := range pr.Stops {
			if err = stopRepo.Update(ctx, s); err != nil {
				return PlanRoutesResult{}, err
			}
			result.StopsAssigned++
		}

		result.RoutesCreated++
	}

	if err = uow.Commit(ctx); err != nil {
		return PlanRoutesResult{}, err
	}

	return result, nil
}
