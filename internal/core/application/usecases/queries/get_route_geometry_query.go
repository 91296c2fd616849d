package queries

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/pkg/polyline"
)

var ErrGetRouteGeometryQueryIsNotConstructed = errors.New(
	"GetRouteGeometryQuery must be created via NewGetRouteGeometryQuery constructor",
)

// GetRouteGeometryQuery retrieves a route's path for map display: the stored
// encoded polyline plus its decoded coordinate sequence.
//
// Example:
//
//	query, err := NewGetRouteGeometryQuery(routeID)
//	if err != nil {
//	    return err
//	}
//
//	geometry, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	drawOnMap(geometry.Points)
type GetRouteGeometryQuery struct {
	routeID kernel.UUID
	guard   kernel.ConstructorGuard
}

// NewGetRouteGeometryQuery creates a query for the given route.
func NewGetRouteGeometryQuery(routeID kernel.UUID) (GetRouteGeometryQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetRouteGeometryQuery{}, err
	}

	return GetRouteGeometryQuery{
		routeID: routeID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// RouteID returns the route the query covers.
func (q GetRouteGeometryQuery) RouteID() kernel.UUID {
	return q.routeID
}

// Validate ensures the query was created through the constructor.
func (q GetRouteGeometryQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteGeometryQueryIsNotConstructed)
}

// GetRouteGeometryQueryResponse carries both the raw encoded polyline (for
// clients that decode themselves) and the decoded points. Points is empty
// when the solver backend returned no geometry for the route.
type GetRouteGeometryQueryResponse struct {
	RouteID  kernel.UUID
	Geometry string
	Points   []polyline.LatLng
}
