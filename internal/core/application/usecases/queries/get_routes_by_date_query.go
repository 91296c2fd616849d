// Package queries contains the read side of the application: thin handlers
// that bypass the domain model and read directly from the database.
package queries

import (
	"errors"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/route"
	"fleetroute/internal/pkg/errs"
)

var ErrGetRoutesByDateQueryIsNotConstructed = errors.New(
	"GetRoutesByDateQuery must be created via NewGetRoutesByDateQuery constructor",
)

// GetRoutesByDateQuery retrieves the dispatcher's board for one service date:
// every route planned for that day with its stop progress counters.
//
// Example:
//
//	query, err := NewGetRoutesByDateQuery(serviceDate)
//	if err != nil {
//	    return err
//	}
//
//	routes, err := handler.Handle(ctx, query)
//	for _, r := range routes {
//	    fmt.Printf("route %s: %d/%d stops done\n", r.ID, r.StopsCompleted, r.StopsTotal)
//	}
type GetRoutesByDateQuery struct {
	serviceDate time.Time
	guard       kernel.ConstructorGuard
}

// NewGetRoutesByDateQuery creates a query for the given service date. The
// date is truncated to its calendar day to match stored midnight-UTC dates.
func NewGetRoutesByDateQuery(serviceDate time.Time) (GetRoutesByDateQuery, error) {
	if serviceDate.IsZero() {
		return GetRoutesByDateQuery{}, errs.NewValueIsRequiredError("serviceDate")
	}

	return GetRoutesByDateQuery{
		serviceDate: kernel.DateOnly(serviceDate),
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// ServiceDate returns the day the query covers.
func (q GetRoutesByDateQuery) ServiceDate() time.Time {
	return q.serviceDate
}

// Validate ensures the query was created through the constructor.
func (q GetRoutesByDateQuery) Validate() error {
	return q.guard.Validate(ErrGetRoutesByDateQueryIsNotConstructed)
}

// GetRoutesByDateQueryResponse is one row of the dispatcher's board.
// StopIDs follow the route's visiting order.
type GetRoutesByDateQueryResponse struct {
	ID             kernel.UUID
	VehicleID      kernel.UUID
	Status         route.Status
	StopIDs        []kernel.UUID
	StopsTotal     int
	StopsCompleted int
	StopsFailed    int
}
