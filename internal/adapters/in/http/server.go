// Package http is the inbound echo adapter: thin handlers that parse
// requests, call command/query handlers, and map errors to status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"fleetroute/internal/core/application/usecases/commands"
	"fleetroute/internal/core/application/usecases/queries"
	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/services"
	"fleetroute/internal/core/ports"
	"fleetroute/internal/pkg/errs"
	"fleetroute/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// dateLayout is the wire format for service dates.
const dateLayout = "2006-01-02"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	planRoutesHandler      commands.PlanRoutesCommandHandler
	reorderRouteHandler    commands.ReorderRouteCommandHandler
	deleteRouteHandler     commands.DeleteRouteCommandHandler
	unassignStopHandler    commands.UnassignStopCommandHandler
	markStopHandler        commands.MarkStopTerminalCommandHandler
	deleteVehicleHandler   commands.DeleteVehicleCommandHandler
	updatePositionHandler  commands.UpdateVehiclePositionCommandHandler
	getRoutesByDateHandler queries.GetRoutesByDateQueryHandler
	getGeometryHandler     queries.GetRouteGeometryQueryHandler
	getPositionHandler     queries.GetVehiclePositionQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	planRoutesHandler commands.PlanRoutesCommandHandler,
	reorderRouteHandler commands.ReorderRouteCommandHandler,
	deleteRouteHandler commands.DeleteRouteCommandHandler,
	unassignStopHandler commands.UnassignStopCommandHandler,
	markStopHandler commands.MarkStopTerminalCommandHandler,
	deleteVehicleHandler commands.DeleteVehicleCommandHandler,
	updatePositionHandler commands.UpdateVehiclePositionCommandHandler,
	getRoutesByDateHandler queries.GetRoutesByDateQueryHandler,
	getGeometryHandler queries.GetRouteGeometryQueryHandler,
	getPositionHandler queries.GetVehiclePositionQueryHandler,
) *Server {
	return &Server{
		planRoutesHandler:      planRoutesHandler,
		reorderRouteHandler:    reorderRouteHandler,
		deleteRouteHandler:     deleteRouteHandler,
		unassignStopHandler:    unassignStopHandler,
		markStopHandler:        markStopHandler,
		deleteVehicleHandler:   deleteVehicleHandler,
		updatePositionHandler:  updatePositionHandler,
		getRoutesByDateHandler: getRoutesByDateHandler,
		getGeometryHandler:     getGeometryHandler,
		getPositionHandler:     getPositionHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(MetricsMiddleware())

	api := e.Group("/api/v1")
	api.POST("/routes/plan", s.PlanRoutes)
	api.GET("/routes", s.GetRoutes)
	api.POST("/routes/:id/reorder", s.ReorderRoute)
	api.DELETE("/routes/:id", s.DeleteRoute)
	api.GET("/routes/:id/geometry", s.GetRouteGeometry)
	api.POST("/stops/:id/unassign", s.UnassignStop)
	api.POST("/stops/:id/complete", s.CompleteStop)
	api.POST("/stops/:id/fail", s.FailStop)
	api.DELETE("/vehicles/:id", s.DeleteVehicle)
	api.PUT("/vehicles/:id/position", s.UpdateVehiclePosition)
	api.GET("/vehicles/:id/position", s.GetVehiclePosition)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}

// PlanRoutes handles POST /api/v1/routes/plan.
func (s *Server) PlanRoutes(ctx echo.Context) error {
	var req PlanRoutesRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	serviceDate, err := time.Parse(dateLayout, req.ServiceDate)
	if err != nil {
		return badRequest(ctx, "service_date must be YYYY-MM-DD")
	}

	cmd, err := commands.NewPlanRoutesCommand(serviceDate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.planRoutesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	metrics.RoutesPlanned.Add(float64(result.RoutesCreated))
	metrics.StopsAssigned.Add(float64(result.StopsAssigned))

	return ctx.JSON(http.StatusOK, PlanRoutesResponse{
		RoutesCreated: result.RoutesCreated,
		StopsAssigned: result.StopsAssigned,
		Warnings:      result.Warnings,
	})
}

// GetRoutes handles GET /api/v1/routes?date=YYYY-MM-DD.
func (s *Server) GetRoutes(ctx echo.Context) error {
	serviceDate, err := time.Parse(dateLayout, ctx.QueryParam("date"))
	if err != nil {
		return badRequest(ctx, "date must be YYYY-MM-DD")
	}

	query, err := queries.NewGetRoutesByDateQuery(serviceDate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	routes, err := s.getRoutesByDateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]RouteSummary, len(routes))
	for i, r := range routes {
		stopIDs := make([]string, len(r.StopIDs))
		for j, stopID := range r.StopIDs {
			stopIDs[j] = stopID.String()
		}

		response[i] = RouteSummary{
			ID:             r.ID.String(),
			VehicleID:      r.VehicleID.String(),
			Status:         r.Status.String(),
			StopIDs:        stopIDs,
			StopsTotal:     r.StopsTotal,
			StopsCompleted: r.StopsCompleted,
			StopsFailed:    r.StopsFailed,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReorderRoute handles POST /api/v1/routes/:id/reorder.
func (s *Server) ReorderRoute(ctx echo.Context) error {
	routeID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid route id")
	}

	var req ReorderRouteRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	stopIDs := make([]kernel.UUID, 0, len(req.StopIDs))
	for _, raw := range req.StopIDs {
		stopID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "invalid stop id: "+raw)
		}
		stopIDs = append(stopIDs, stopID)
	}

	cmd, err := commands.NewReorderRouteCommand(routeID, stopIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.reorderRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteRoute handles DELETE /api/v1/routes/:id.
func (s *Server) DeleteRoute(ctx echo.Context) error {
	routeID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid route id")
	}

	cmd, err := commands.NewDeleteRouteCommand(routeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetRouteGeometry handles GET /api/v1/routes/:id/geometry.
func (s *Server) GetRouteGeometry(ctx echo.Context) error {
	routeID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid route id")
	}

	query, err := queries.NewGetRouteGeometryQuery(routeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	geometry, err := s.getGeometryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	points := make([]Point, len(geometry.Points))
	for i, p := range geometry.Points {
		points[i] = Point{Lat: p.Lat, Lng: p.Lng}
	}

	return ctx.JSON(http.StatusOK, RouteGeometryResponse{
		RouteID:  geometry.RouteID.String(),
		Geometry: geometry.Geometry,
		Points:   points,
	})
}

// UnassignStop handles POST /api/v1/stops/:id/unassign.
func (s *Server) UnassignStop(ctx echo.Context) error {
	stopID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid stop id")
	}

	cmd, err := commands.NewUnassignStopCommand(stopID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.unassignStopHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteStop handles POST /api/v1/stops/:id/complete.
func (s *Server) CompleteStop(ctx echo.Context) error {
	stopID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid stop id")
	}

	var req CompleteStopRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCompleteStopCommand(stopID, req.ProofRef)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	return s.markStop(ctx, cmd)
}

// FailStop handles POST /api/v1/stops/:id/fail.
func (s *Server) FailStop(ctx echo.Context) error {
	stopID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid stop id")
	}

	var req FailStopRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewFailStopCommand(stopID, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	return s.markStop(ctx, cmd)
}

func (s *Server) markStop(ctx echo.Context, cmd commands.MarkStopTerminalCommand) error {
	result, err := s.markStopHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MarkStopResponse{RouteCompleted: result.RouteCompleted})
}

// DeleteVehicle handles DELETE /api/v1/vehicles/:id.
func (s *Server) DeleteVehicle(ctx echo.Context) error {
	vehicleID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid vehicle id")
	}

	cmd, err := commands.NewDeleteVehicleCommand(vehicleID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteVehicleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateVehiclePosition handles PUT /api/v1/vehicles/:id/position.
func (s *Server) UpdateVehiclePosition(ctx echo.Context) error {
	vehicleID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid vehicle id")
	}

	var req VehiclePositionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	position, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateVehiclePositionCommand(vehicleID, position)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updatePositionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetVehiclePosition handles GET /api/v1/vehicles/:id/position.
func (s *Server) GetVehiclePosition(ctx echo.Context) error {
	vehicleID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid vehicle id")
	}

	query, err := queries.NewGetVehiclePositionQuery(vehicleID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	position, err := s.getPositionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, VehiclePositionResponse{
		VehicleID: position.VehicleID.String(),
		Lat:       position.Position.Lat(),
		Lng:       position.Position.Lng(),
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func pathUUID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrPositionNotTracked):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrVehicleHasActiveRoute):
		status = http.StatusPreconditionFailed
	case errors.Is(err, services.ErrNothingPlanned):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
