// Package twogis implements the routing backend contract against a
// 2GIS-style logistics API. It is the asynchronous backend: create a task,
// poll its status at a fixed interval with a bounded attempt budget, then
// fetch the solution from the URL the status response names.
//
// Path geometry is not part of the solution; it is recovered per route via
// a separate directions request returning a WKT LINESTRING, which is
// re-encoded as a polyline.
//
// The wire format has no skill mechanism, so a stop's AllowedVehicle pin is
// not enforceable on this backend: the solver is free to assign the stop to
// any agent. Callers that need hard pinning should use the ors backend.
package twogis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/stop"
	"fleetroute/internal/core/domain/model/vehicle"
	"fleetroute/internal/core/ports"
	"fleetroute/internal/pkg/metrics"
	"fleetroute/internal/pkg/polyline"
)

const (
	createPath = "/logistics/vrp/1.1.0/create"
	statusPath = "/logistics/vrp/1.1.0/status"

	// depotWaypointID is the fixed waypoint id for the depot.
	depotWaypointID = 0

	// Agent working day, seconds from midnight.
	workDayStart = 8 * 3600
	workDayEnd   = 20 * 3600

	defaultPollInterval = 2 * time.Second
	defaultMaxAttempts  = 60
	defaultTimeout      = 30 * time.Second
)

// Task statuses reported by the status endpoint.
const (
	statusDone    = "Done"
	statusPartial = "Partial"
	statusFail    = "Fail"
	statusRun     = "Run"
)

var _ ports.Solver = &Client{}

// Client talks to the task-based VRP API and its directions endpoint.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	routingURL   string
	apiKey       string
	pollInterval time.Duration
	maxAttempts  int
}

// Option tweaks client behavior; used by tests to shorten the poll loop.
type Option func(*Client)

// WithPolling overrides the poll interval and attempt budget.
func WithPolling(interval time.Duration, attempts int) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.maxAttempts = attempts
	}
}

// NewClient creates a Client. routingURL is the directions endpoint used for
// geometry recovery; leave it empty to skip geometry.
func NewClient(baseURL string, routingURL string, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("twogis: base URL is required")
	}

	c := &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		baseURL:      baseURL,
		routingURL:   routingURL,
		apiKey:       apiKey,
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Solve submits the problem, blocks on the poll loop and translates the
// fetched solution. The worst-case latency is attempts x interval; there is
// no retry beyond that budget.
func (c *Client) Solve(ctx context.Context, problem ports.Problem) (ports.Solution, error) {
	start := time.Now()
	solution, err := c.solve(ctx, problem)
	metrics.ObserveSolve("twogis", start, err)
	return solution, err
}

func (c *Client) solve(ctx context.Context, problem ports.Problem) (ports.Solution, error) {
	taskID, err := c.createTask(ctx, problem)
	if err != nil {
		return ports.Solution{}, err
	}

	raw, err := c.pollTask(ctx, taskID)
	if err != nil {
		return ports.Solution{}, err
	}

	return c.translate(ctx, problem, raw)
}

// Wire types. Waypoint 0 is the depot; every stop is one waypoint keyed by
// its customer leg id, flagged as a delivery or pickup through the value
// fields.
type createRequest struct {
	StartTime      string         `json:"start_time"`
	Waypoints      []waypoint     `json:"waypoints"`
	Agents         []agent        `json:"agents"`
	RoutingOptions routingOptions `json:"routing_options"`
}

type waypoint struct {
	WaypointID    int64        `json:"waypoint_id"`
	Point         point        `json:"point"`
	ServiceTime   int          `json:"service_time,omitempty"`
	DeliveryValue int          `json:"delivery_value,omitempty"`
	PickupValue   int          `json:"pickup_value,omitempty"`
	TimeWindows   []timeWindow `json:"time_windows,omitempty"`
}

type point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type timeWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type agent struct {
	AgentID         int64      `json:"agent_id"`
	StartWaypointID int64      `json:"start_waypoint_id"`
	Capacity        int        `json:"capacity"`
	WorkTimeWindow  timeWindow `json:"work_time_window"`
}

type routingOptions struct {
	Type      string `json:"type"`
	Transport string `json:"transport"`
}

type createResponse struct {
	TaskID string `json:"task_id"`
}

type statusResponse struct {
	Status string `json:"status"`
	URLs   struct {
		VRPSolution string `json:"url_vrp_solution"`
	} `json:"urls"`
}

type solutionResponse struct {
	Routes []solutionRoute `json:"routes"`
}

type solutionRoute struct {
	AgentID  int64   `json:"agent_id"`
	Points   []int64 `json:"points"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

func (c *Client) createTask(ctx context.Context, problem ports.Problem) (string, error) {
	request := createRequest{
		StartTime: problem.ServiceDate.UTC().Truncate(24 * time.Hour).
			Add(time.Duration(workDayStart) * time.Second).Format("2006-01-02T15:04:05Z"),
		RoutingOptions: routingOptions{
			Type:      "jam",
			Transport: transportName(problemTransport(problem)),
		},
	}

	request.Waypoints = append(request.Waypoints, waypoint{
		WaypointID: depotWaypointID,
		Point:      point{Lat: problem.Depot.Lat(), Lon: problem.Depot.Lng()},
	})

	midnight := problem.ServiceDate.UTC().Truncate(24 * time.Hour)
	for _, ps := range problem.Stops {
		w := waypoint{
			WaypointID:  ps.CustomerLegID,
			Point:       point{Lat: ps.Location.Lat(), Lon: ps.Location.Lng()},
			ServiceTime: ps.ServiceSeconds,
			TimeWindows: []timeWindow{{
				Start: int(ps.WindowStart.Sub(midnight).Seconds()),
				End:   int(ps.WindowEnd.Sub(midnight).Seconds()),
			}},
		}

		if ps.Kind == stop.Pickup {
			w.PickupValue = 1
		} else {
			w.DeliveryValue = 1
		}

		request.Waypoints = append(request.Waypoints, w)
	}

	for _, v := range problem.Vehicles {
		request.Agents = append(request.Agents, agent{
			AgentID:         v.SolverID,
			StartWaypointID: depotWaypointID,
			Capacity:        v.Capacity,
			WorkTimeWindow:  timeWindow{Start: workDayStart, End: workDayEnd},
		})
	}

	var response createResponse
	url := c.baseURL + createPath + "?key=" + c.apiKey
	if err := c.postJSON(ctx, url, request, &response); err != nil {
		return "", err
	}

	if response.TaskID == "" {
		return "", fmt.Errorf("%w: create returned no task id", ports.ErrSolveFailed)
	}

	return response.TaskID, nil
}

// pollTask blocks until the task reaches a terminal status or the attempt
// budget runs out. A transient status-request error counts as an attempt.
func (c *Client) pollTask(ctx context.Context, taskID string) (solutionResponse, error) {
	url := c.baseURL + statusPath + "?task_id=" + taskID + "&key=" + c.apiKey

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		var status statusResponse
		err := c.getJSON(ctx, url, &status)

		switch {
		case err != nil:
			// transient; keep polling

		case status.Status == statusDone, status.Status == statusPartial:
			// Partial still carries the usable subset of routes.
			if status.URLs.VRPSolution == "" {
				return solutionResponse{}, fmt.Errorf("%w: task %s finished without a solution URL",
					ports.ErrSolveFailed, taskID)
			}

			var solution solutionResponse
			if err = c.getJSON(ctx, status.URLs.VRPSolution, &solution); err != nil {
				return solutionResponse{}, err
			}
			return solution, nil

		case status.Status == statusFail:
			return solutionResponse{}, fmt.Errorf("%w: task %s failed", ports.ErrSolveFailed, taskID)

		case status.Status == statusRun:
			// still running

		default:
			// unknown status, treat like Run and keep waiting
		}

		select {
		case <-ctx.Done():
			return solutionResponse{}, fmt.Errorf("%w: %w", ports.ErrSolveFailed, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}

	return solutionResponse{}, fmt.Errorf("%w: task %s timed out after %d attempts",
		ports.ErrSolveFailed, taskID, c.maxAttempts)
}

func (c *Client) translate(ctx context.Context, problem ports.Problem, raw solutionResponse) (ports.Solution, error) {
	if len(raw.Routes) == 0 {
		return ports.Solution{}, fmt.Errorf("%w: solution contains no routes", ports.ErrSolveFailed)
	}

	vehicleIDs := make(map[int64]kernel.UUID, len(problem.Vehicles))
	for _, v := range problem.Vehicles {
		vehicleIDs[v.SolverID] = v.VehicleID
	}

	locations := make(map[int64]kernel.GeoPoint, len(problem.Stops))
	for _, ps := range problem.Stops {
		locations[ps.CustomerLegID] = ps.Location
	}

	var solution ports.Solution

	for _, r := range raw.Routes {
		vehicleID, ok := vehicleIDs[r.AgentID]
		if !ok {
			return ports.Solution{}, fmt.Errorf("%w: unknown agent %d in solution",
				ports.ErrSolveFailed, r.AgentID)
		}

		assignment := ports.Assignment{
			VehicleID:       vehicleID,
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
		}

		var path []kernel.GeoPoint
		for _, waypointID := range r.Points {
			if waypointID == depotWaypointID {
				continue
			}

			leg, ok := problem.Legs[waypointID]
			if !ok || !leg.CustomerFacing {
				continue
			}

			assignment.StopIDs = append(assignment.StopIDs, leg.StopID)
			path = append(path, locations[waypointID])
		}

		if len(assignment.StopIDs) > 0 {
			// Geometry recovery is best-effort; a route without a drawn
			// path is still a valid route.
			assignment.Geometry = c.fetchGeometry(ctx, problem, path)
		}

		solution.Assignments = append(solution.Assignments, assignment)
	}

	return solution, nil
}

type directionsRequest struct {
	Points    []point `json:"points"`
	Type      string  `json:"type"`
	Output    string  `json:"output"`
	RouteMode string  `json:"route_mode"`
}

type directionsResponse struct {
	Result []struct {
		WKT           string `json:"wkt"`
		TotalGeometry string `json:"total_geometry"`
		Geometry      struct {
			Selection string `json:"selection"`
		} `json:"geometry"`
	} `json:"result"`
}

// fetchGeometry asks the directions endpoint for the depot->stops->depot
// path and re-encodes the returned WKT LINESTRING as a polyline. Returns ""
// on any failure.
func (c *Client) fetchGeometry(ctx context.Context, problem ports.Problem, path []kernel.GeoPoint) string {
	if c.routingURL == "" || len(path) == 0 {
		return ""
	}

	request := directionsRequest{
		Type:      transportName(problemTransport(problem)),
		Output:    "detailed",
		RouteMode: "jam",
	}

	depotPoint := point{Lat: problem.Depot.Lat(), Lon: problem.Depot.Lng()}
	request.Points = append(request.Points, depotPoint)
	for _, p := range path {
		request.Points = append(request.Points, point{Lat: p.Lat(), Lon: p.Lng()})
	}
	request.Points = append(request.Points, depotPoint)

	var response directionsResponse
	if err := c.postJSON(ctx, c.routingURL+"?key="+c.apiKey, request, &response); err != nil {
		return ""
	}
	if len(response.Result) == 0 {
		return ""
	}

	result := response.Result[0]
	for _, wkt := range []string{result.WKT, result.Geometry.Selection, result.TotalGeometry} {
		if coords, ok := parseLineString(wkt); ok {
			return polyline.Encode(coords)
		}
	}

	return ""
}

// parseLineString extracts coordinates from "LINESTRING(lon lat, ...)".
func parseLineString(wkt string) ([]polyline.LatLng, bool) {
	if !strings.HasPrefix(wkt, "LINESTRING") {
		return nil, false
	}

	body := strings.TrimPrefix(wkt, "LINESTRING")
	body = strings.TrimSpace(body)
	body = strings.TrimPrefix(body, "(")
	body = strings.TrimSuffix(body, ")")

	var coords []polyline.LatLng
	for _, pair := range strings.Split(body, ",") {
		parts := strings.Fields(strings.TrimSpace(pair))
		if len(parts) < 2 {
			continue
		}

		lon, err1 := strconv.ParseFloat(parts[0], 64)
		lat, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}

		coords = append(coords, polyline.LatLng{Lat: lat, Lng: lon})
	}

	return coords, len(coords) > 0
}

func (c *Client) postJSON(ctx context.Context, url string, request any, response any) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("%w: encode request: %w", ports.ErrSolveFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrSolveFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, response)
}

func (c *Client) getJSON(ctx context.Context, url string, response any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrSolveFailed, err)
	}

	return c.do(httpReq, response)
}

func (c *Client) do(httpReq *http.Request, response any) error {
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrSolveFailed, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ports.ErrSolveFailed, httpResp.StatusCode, payload)
	}

	if err = json.NewDecoder(httpResp.Body).Decode(response); err != nil {
		return fmt.Errorf("%w: decode response: %w", ports.ErrSolveFailed, err)
	}

	return nil
}

// problemTransport picks the transport for routing options from the first
// vehicle; the task-level option cannot vary per agent.
func problemTransport(problem ports.Problem) vehicle.Profile {
	if len(problem.Vehicles) == 0 {
		return vehicle.DrivingCar
	}
	return problem.Vehicles[0].Profile
}

func transportName(p vehicle.Profile) string {
	switch p {
	case vehicle.DrivingTruck:
		return "truck"
	case vehicle.Cycling:
		return "bicycle"
	case vehicle.Walking:
		return "walking"
	default:
		return "driving"
	}
}
