package commands

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
)

var (
	ErrReorderRouteCommandIsNotConstructed = errors.New(
		"ReorderRouteCommand must be created via NewReorderRouteCommand constructor",
	)
	ErrStopListIsEmpty = errors.New("stop list must contain at least one stop")
)

// ReorderRouteCommand replaces a route's stop sequence wholesale: the
// supplied list becomes the new order, and stops omitted from it leave the
// route while keeping their own status.
type ReorderRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	stopIDs []kernel.UUID

	guard kernel.ConstructorGuard
}

// NewReorderRouteCommand creates a command carrying the route and its full
// new stop order.
func NewReorderRouteCommand(routeID kernel.UUID, stopIDs []kernel.UUID) (ReorderRouteCommand, error) {
	cmd := ReorderRouteCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setStopIDs(stopIDs),
	); err != nil {
		return ReorderRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReorderRouteCommand) Validate() error {
	return c.guard.Validate(ErrReorderRouteCommandIsNotConstructed)
}

// RouteID returns the route being reordered.
func (c ReorderRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

// StopIDs returns the new stop order.
func (c ReorderRouteCommand) StopIDs() []kernel.UUID {
	return c.stopIDs
}

func (c *ReorderRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *ReorderRouteCommand) setStopIDs(stopIDs []kernel.UUID) error {
	if len(stopIDs) == 0 {
		return ErrStopListIsEmpty
	}

	for _, id := range stopIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.stopIDs = stopIDs
	return nil
}
