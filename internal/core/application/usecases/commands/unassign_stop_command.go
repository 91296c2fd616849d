package commands

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
)

var ErrUnassignStopCommandIsNotConstructed = errors.New(
	"UnassignStopCommand must be created via NewUnassignStopCommand constructor",
)

// UnassignStopCommand pulls one stop out of its route: linkage and position
// are cleared and the status is forced back to Planned. This is also the
// only way back out of a terminal status.
type UnassignStopCommand struct { //nolint:recvcheck //using for validation
	stopID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewUnassignStopCommand creates a command to unassign the given stop.
func NewUnassignStopCommand(stopID kernel.UUID) (UnassignStopCommand, error) {
	if err := stopID.Validate(); err != nil {
		return UnassignStopCommand{}, err
	}

	return UnassignStopCommand{
		stopID: stopID,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignStopCommand) Validate() error {
	return c.guard.Validate(ErrUnassignStopCommandIsNotConstructed)
}

// StopID returns the stop being unassigned.
func (c UnassignStopCommand) StopID() kernel.UUID {
	return c.stopID
}
