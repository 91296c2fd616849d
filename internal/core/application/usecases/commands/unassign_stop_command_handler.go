package commands

import (
	"context"
)

// UnassignStopCommandHandler resets one stop to the unrouted Planned state.
type UnassignStopCommandHandler struct {
	uowFactory StopUoWFactory
}

// NewUnassignStopCommandHandler creates a handler for stop unassignment.
func NewUnassignStopCommandHandler(uowFactory StopUoWFactory) UnassignStopCommandHandler {
	return UnassignStopCommandHandler{uowFactory: uowFactory}
}

// Handle unassigns the stop. Unassigning an already unrouted Planned stop
// is a no-op that still succeeds.
func (h *UnassignStopCommandHandler) Handle(ctx context.Context, cmd UnassignStopCommand) error {
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

	stopRepo := uow.StopRepository()

	s, err := stopRepo.Get(ctx, cmd.StopID())
	if err != nil {
		return err
	}

	s.Unassign()

	if err = stopRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
