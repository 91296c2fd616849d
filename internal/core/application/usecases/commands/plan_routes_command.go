package commands

import (
	"errors"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
)

var ErrPlanRoutesCommandIsNotConstructed = errors.New(
	"PlanRoutesCommand must be created via NewPlanRoutesCommand constructor",
)

// PlanRoutesCommand requests a planning run for one service date: every
// planned, unassigned stop of that date is partitioned by depot and routed.
type PlanRoutesCommand struct { //nolint:recvcheck //using for validation
	serviceDate time.Time

	guard kernel.ConstructorGuard
}

// NewPlanRoutesCommand creates a command to plan the given service date.
// The date is truncated to its calendar day: stored stop dates are
// midnight-UTC instants and the backlog query matches them exactly.
func NewPlanRoutesCommand(serviceDate time.Time) (PlanRoutesCommand, error) {
	if serviceDate.IsZero() {
		return PlanRoutesCommand{}, errors.New("service date is required")
	}

	return PlanRoutesCommand{
		serviceDate: kernel.DateOnly(serviceDate),
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanRoutesCommand) Validate() error {
	return c.guard.Validate(ErrPlanRoutesCommandIsNotConstructed)
}

// ServiceDate returns the calendar day to plan.
func (c PlanRoutesCommand) ServiceDate() time.Time {
	return c.serviceDate
}
