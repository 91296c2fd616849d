package commands

import (
	"context"

	"fleetroute/internal/core/domain/model/stop"
)

// ReorderRouteCommandHandler performs the bulk stop-sequence replacement.
// Every stop currently on the route is unlinked first, then every stop in
// the supplied list is linked at its index. This is a replace, not a diff.
type ReorderRouteCommandHandler struct {
	uowFactory StopRouteUoWFactory
}

// NewReorderRouteCommandHandler creates a handler for route reordering.
func NewReorderRouteCommandHandler(uowFactory StopRouteUoWFactory) ReorderRouteCommandHandler {
	return ReorderRouteCommandHandler{uowFactory: uowFactory}
}

// Handle replaces the route's stop order in one transaction.
func (h *ReorderRouteCommandHandler) Handle(ctx context.Context, cmd ReorderRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RouteRepository().Get(ctx, cmd.RouteID())
	if err != nil {
		return err
	}

	stopRepo := uow.StopRepository()

	current, err := stopRepo.GetAllByRouteID(ctx, r.ID())
	if err != nil {
		return err
	}

	touched := make(map[string]*stop.Stop, len(current))
	for _, s := range current {
		s.Unlink()
		touched[s.ID().String()] = s
	}

	for position, stopID := range cmd.StopIDs() {
		s, ok := touched[stopID.String()]
		if !ok {
			if s, err = stopRepo.Get(ctx, stopID); err != nil {
				return err
			}
			touched[s.ID().String()] = s
		}

		if err = s.AssignToRoute(r.ID(), position); err != nil {
			return err
		}
	}

	for _, s := range touched {
		if err = stopRepo.Update(ctx, s); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
