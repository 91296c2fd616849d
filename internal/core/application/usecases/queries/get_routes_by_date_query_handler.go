package queries

import (
	"context"
	"database/sql"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/route"
	"fleetroute/internal/core/domain/model/stop"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRoutesByDateQueryHandler reads the day's routes with per-route stop
// progress straight from the database, skipping aggregate reconstruction.
type GetRoutesByDateQueryHandler struct {
	db *gorm.DB
}

// NewGetRoutesByDateQueryHandler creates a handler bound to the given
// database connection.
func NewGetRoutesByDateQueryHandler(db *gorm.DB) GetRoutesByDateQueryHandler {
	return GetRoutesByDateQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by route ID for consistent
// output; stop ids follow route position. Routes without stops still appear
// with zero counters.
func (h GetRoutesByDateQueryHandler) Handle(
	ctx context.Context,
	query GetRoutesByDateQuery,
) ([]GetRoutesByDateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	routes := make([]GetRoutesByDateQueryResponse, 0)

	// One row per (route, stop); the LEFT JOIN keeps stopless routes.
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.vehicle_id,
			r.status,
			s.id,
			s.status
		FROM routes r
		LEFT JOIN stops s ON s.route_id = r.id
		WHERE r.service_date = ?
		ORDER BY r.id, s.position
	`, query.ServiceDate()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var routeID, vehicleID uuid.UUID
		var routeStatus route.Status
		var stopID uuid.NullUUID
		var stopStatus sql.NullInt64

		err = rows.Scan(&routeID, &vehicleID, &routeStatus, &stopID, &stopStatus)
		if err != nil {
			return nil, err
		}

		if len(routes) == 0 || routes[len(routes)-1].ID.Bytes() != routeID {
			resp := GetRoutesByDateQueryResponse{Status: routeStatus}

			resp.ID, err = kernel.UUIDFromBytes(routeID[:])
			if err != nil {
				return nil, err
			}

			resp.VehicleID, err = kernel.UUIDFromBytes(vehicleID[:])
			if err != nil {
				return nil, err
			}

			routes = append(routes, resp)
		}

		if !stopID.Valid {
			continue
		}

		resp := &routes[len(routes)-1]

		id, err := kernel.UUIDFromBytes(stopID.UUID[:])
		if err != nil {
			return nil, err
		}
		resp.StopIDs = append(resp.StopIDs, id)
		resp.StopsTotal++

		switch stop.Status(stopStatus.Int64) {
		case stop.Completed:
			resp.StopsCompleted++
		case stop.Failed:
			resp.StopsFailed++
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}
