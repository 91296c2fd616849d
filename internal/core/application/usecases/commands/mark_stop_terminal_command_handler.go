package commands

import (
	"context"

	"fleetroute/internal/core/domain/model/stop"
)

// MarkStopTerminalResult reports what the terminal marking did beyond the
// stop itself.
type MarkStopTerminalResult struct {
	// RouteCompleted is true when this marking was the one that finished
	// the owning route. Callers can rely on the route's final status being
	// visible the moment Handle returns.
	RouteCompleted bool
}

// MarkStopTerminalCommandHandler records a stop's outcome and synchronously
// re-evaluates the owning route: an active route whose linked stops are all
// terminal (and which has at least one) is completed in the same
// transaction. The check runs under a per-route lock so concurrent markings
// of the same route cannot both miss the final state.
type MarkStopTerminalCommandHandler struct {
	uowFactory StopRouteUoWFactory
	locks      *routeLocks
}

// NewMarkStopTerminalCommandHandler creates a handler for terminal marking.
func NewMarkStopTerminalCommandHandler(uowFactory StopRouteUoWFactory) MarkStopTerminalCommandHandler {
	return MarkStopTerminalCommandHandler{
		uowFactory: uowFactory,
		locks:      newRouteLocks(),
	}
}

// Handle marks the stop and runs the route auto-completion check.
func (h *MarkStopTerminalCommandHandler) Handle(ctx context.Context, cmd MarkStopTerminalCommand) (MarkStopTerminalResult, error) {
	if err := cmd.Validate(); err != nil {
		return MarkStopTerminalResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MarkStopTerminalResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stopRepo := uow.StopRepository()

	s, err := stopRepo.Get(ctx, cmd.StopID())
	if err != nil {
		return MarkStopTerminalResult{}, err
	}

	if s.Route() != nil {
		m := h.locks.lock(s.Route().String())
		defer m.Unlock()
	}

	switch cmd.Outcome() {
	case OutcomeFailed:
		if err = s.Fail(cmd.Reason()); err != nil {
			return MarkStopTerminalResult{}, err
		}
	default:
		s.Complete(cmd.ProofRef())
	}

	if err = stopRepo.Update(ctx, s); err != nil {
		return MarkStopTerminalResult{}, err
	}

	result := MarkStopTerminalResult{}
	if s.Route() != nil {
		if result.RouteCompleted, err = h.completeRouteIfDone(ctx, uow, s); err != nil {
			return MarkStopTerminalResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return MarkStopTerminalResult{}, err
	}

	return result, nil
}

// completeRouteIfDone transitions the owning route to Completed when it is
// still active, has at least one linked stop, and every linked stop is
// terminal. An empty route is never auto-completed.
func (h *MarkStopTerminalCommandHandler) completeRouteIfDone(
	ctx context.Context,
	uow StopRouteUoW,
	s *stop.Stop,
) (bool, error) {
	routeRepo := uow.RouteRepository()

	r, err := routeRepo.Get(ctx, *s.Route())
	if err != nil {
		return false, err
	}
	if !r.IsActive() {
		return false, nil
	}

	linked, err := uow.StopRepository().GetAllByRouteID(ctx, r.ID())
	if err != nil {
		return false, err
	}
	if len(linked) == 0 {
		return false, nil
	}

	for _, ls := range linked {
		if !ls.IsTerminal() {
			return false, nil
		}
	}

	if err = r.Complete(); err != nil {
		return false, err
	}
	if err = routeRepo.Update(ctx, r); err != nil {
		return false, err
	}

	return true, nil
}
