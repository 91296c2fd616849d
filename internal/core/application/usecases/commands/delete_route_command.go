package commands

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
)

var ErrDeleteRouteCommandIsNotConstructed = errors.New(
	"DeleteRouteCommand must be created via NewDeleteRouteCommand constructor",
)

// DeleteRouteCommand removes a route. Its stops are unassigned first (back
// to Planned, linkage cleared) so no stop is left pointing at a deleted
// route.
type DeleteRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewDeleteRouteCommand creates a command to delete the given route.
func NewDeleteRouteCommand(routeID kernel.UUID) (DeleteRouteCommand, error) {
	if err := routeID.Validate(); err != nil {
		return DeleteRouteCommand{}, err
	}

	return DeleteRouteCommand{
		routeID: routeID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteRouteCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRouteCommandIsNotConstructed)
}

// RouteID returns the route being deleted.
func (c DeleteRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}
