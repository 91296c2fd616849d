package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	fleethttp "fleetroute/internal/adapters/in/http"
	"fleetroute/internal/adapters/out/redistracker"
	"fleetroute/internal/core/application/usecases/commands"
	"fleetroute/internal/core/application/usecases/queries"
	"fleetroute/internal/core/domain/model/kernel"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires a server with zero-value handlers. Only request
// parsing and validation paths are exercised here; handler behavior is
// covered in the commands and queries packages.
func newTestServer() (*echo.Echo, *fleethttp.Server) {
	e := echo.New()
	s := fleethttp.NewServer(
		commands.PlanRoutesCommandHandler{},
		commands.ReorderRouteCommandHandler{},
		commands.DeleteRouteCommandHandler{},
		commands.UnassignStopCommandHandler{},
		commands.MarkStopTerminalCommandHandler{},
		commands.DeleteVehicleCommandHandler{},
		commands.UpdateVehiclePositionCommandHandler{},
		queries.GetRoutesByDateQueryHandler{},
		queries.GetRouteGeometryQueryHandler{},
		queries.GetVehiclePositionQueryHandler{},
	)
	s.RegisterRoutes(e)
	return e, s
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer()

	rec := do(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestPlanRoutes_RejectsBadDate(t *testing.T) {
	e, _ := newTestServer()

	for _, body := range []string{
		`{"service_date":"15.06.2025"}`,
		`{"service_date":""}`,
		`{`,
	} {
		rec := do(e, http.MethodPost, "/api/v1/routes/plan", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestGetRoutes_RejectsMissingDate(t *testing.T) {
	e, _ := newTestServer()

	rec := do(e, http.MethodGet, "/api/v1/routes", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPathIDValidation(t *testing.T) {
	e, _ := newTestServer()

	targets := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/v1/routes/not-a-uuid/reorder"},
		{http.MethodDelete, "/api/v1/routes/not-a-uuid"},
		{http.MethodGet, "/api/v1/routes/not-a-uuid/geometry"},
		{http.MethodPost, "/api/v1/stops/not-a-uuid/unassign"},
		{http.MethodPost, "/api/v1/stops/not-a-uuid/complete"},
		{http.MethodPost, "/api/v1/stops/not-a-uuid/fail"},
		{http.MethodDelete, "/api/v1/vehicles/not-a-uuid"},
		{http.MethodPut, "/api/v1/vehicles/not-a-uuid/position"},
		{http.MethodGet, "/api/v1/vehicles/not-a-uuid/position"},
	}

	for _, tc := range targets {
		rec := do(e, tc.method, tc.target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.target)
	}
}

func TestFailStop_RequiresReason(t *testing.T) {
	e, _ := newTestServer()

	target := "/api/v1/stops/" + kernel.NewUUID().String() + "/fail"
	rec := do(e, http.MethodPost, target, `{"reason":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReorderRoute_RejectsEmptyAndMalformedStopList(t *testing.T) {
	e, _ := newTestServer()

	target := "/api/v1/routes/" + kernel.NewUUID().String() + "/reorder"

	rec := do(e, http.MethodPost, target, `{"stop_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, target, `{"stop_ids":["nope"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateVehiclePosition_RejectsOutOfRange(t *testing.T) {
	e, _ := newTestServer()

	target := "/api/v1/vehicles/" + kernel.NewUUID().String() + "/position"
	rec := do(e, http.MethodPut, target, `{"lat":123.0,"lng":37.6}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestGetVehiclePosition runs the read path against a real tracker to cover
// the 200 payload and the not-tracked 404 mapping.
func TestGetVehiclePosition(t *testing.T) {
	redisServer := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	tracker, err := redistracker.NewRedisPositionTracker(redisClient)
	require.NoError(t, err)

	e := echo.New()
	s := fleethttp.NewServer(
		commands.PlanRoutesCommandHandler{},
		commands.ReorderRouteCommandHandler{},
		commands.DeleteRouteCommandHandler{},
		commands.UnassignStopCommandHandler{},
		commands.MarkStopTerminalCommandHandler{},
		commands.DeleteVehicleCommandHandler{},
		commands.UpdateVehiclePositionCommandHandler{},
		queries.GetRoutesByDateQueryHandler{},
		queries.GetRouteGeometryQueryHandler{},
		queries.NewGetVehiclePositionQueryHandler(tracker),
	)
	s.RegisterRoutes(e)

	vehicleID := kernel.NewUUID()
	target := "/api/v1/vehicles/" + vehicleID.String() + "/position"

	rec := do(e, http.MethodGet, target, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	position, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)
	require.NoError(t, tracker.SetPosition(t.Context(), vehicleID, position))

	rec = do(e, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body fleethttp.VehiclePositionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, vehicleID.String(), body.VehicleID)
	assert.InDelta(t, 55.75, body.Lat, 1e-9)
	assert.InDelta(t, 37.61, body.Lng, 1e-9)
}
