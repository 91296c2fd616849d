package commands

import (
	"context"
)

// DeleteRouteCommandHandler unlinks a route's stops and removes the route,
// all in one transaction.
type DeleteRouteCommandHandler struct {
	uowFactory StopRouteUoWFactory
}

// NewDeleteRouteCommandHandler creates a handler for route deletion.
func NewDeleteRouteCommandHandler(uowFactory StopRouteUoWFactory) DeleteRouteCommandHandler {
	return DeleteRouteCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the route after resetting every linked stop to Planned.
func (h *DeleteRouteCommandHandler) Handle(ctx context.Context, cmd DeleteRouteCommand) error {
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

	routeRepo := uow.RouteRepository()

	r, err := routeRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return err
	}

	stopRepo := uow.StopRepository()

	stops, err := stopRepo.GetAllByRouteID(ctx, r.ID())
	if err != nil {
		return err
	}

	for _, s := range stops {
		s.Unassign()
		if err = stopRepo.Update(ctx, s); err != nil {
			return err
		}
	}

	if err = routeRepo.Delete(ctx, r.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
