package queries

import (
	"context"
	"database/sql"
	"errors"

	"fleetroute/internal/pkg/errs"
	"fleetroute/internal/pkg/polyline"

	"gorm.io/gorm"
)

// GetRouteGeometryQueryHandler reads a route's stored polyline and decodes it
// into a coordinate sequence.
type GetRouteGeometryQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteGeometryQueryHandler creates a handler bound to the given
// database connection.
func NewGetRouteGeometryQueryHandler(db *gorm.DB) GetRouteGeometryQueryHandler {
	return GetRouteGeometryQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the route
// does not exist; a route without geometry yields an empty point list.
func (h GetRouteGeometryQueryHandler) Handle(
	ctx context.Context,
	query GetRouteGeometryQuery,
) (GetRouteGeometryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRouteGeometryQueryResponse{}, err
	}

	var geometry string
	row := h.db.WithContext(ctx).Raw(`
		SELECT geometry
		FROM routes
		WHERE id = ?
	`, query.RouteID().Bytes()).Row()

	if err := row.Scan(&geometry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetRouteGeometryQueryResponse{},
				errs.NewObjectNotFoundError("route", query.RouteID().String())
		}
		return GetRouteGeometryQueryResponse{}, err
	}

	resp := GetRouteGeometryQueryResponse{
		RouteID:  query.RouteID(),
		Geometry: geometry,
		Points:   []polyline.LatLng{},
	}

	if geometry == "" {
		return resp, nil
	}

	points, err := polyline.Decode(geometry)
	if err != nil {
		return GetRouteGeometryQueryResponse{}, err
	}

	resp.Points = points
	return resp, nil
}
