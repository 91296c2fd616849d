// Package ors implements the routing backend contract against an
// OpenRouteService-compatible optimization API. It is the synchronous
// backend: one blocking POST returns the full solution inline.
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/stop"
	"fleetroute/internal/core/domain/model/vehicle"
	"fleetroute/internal/core/ports"
	"fleetroute/internal/pkg/metrics"
)

const defaultTimeout = 60 * time.Second

var _ ports.Solver = &Client{}

// Client talks to the optimization endpoint of an OpenRouteService API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a Client for the given API base URL and key.
func NewClient(baseURL string, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ors: base URL is required")
	}

	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}, nil
}

// Solve submits the problem as a shipment-based optimization request and
// translates the response back to domain stop identifiers.
func (c *Client) Solve(ctx context.Context, problem ports.Problem) (ports.Solution, error) {
	start := time.Now()
	solution, err := c.solve(ctx, problem)
	metrics.ObserveSolve("ors", start, err)
	return solution, err
}

func (c *Client) solve(ctx context.Context, problem ports.Problem) (ports.Solution, error) {
	request := c.buildRequest(problem)

	body, err := json.Marshal(request)
	if err != nil {
		return ports.Solution{}, fmt.Errorf("%w: encode request: %w", ports.ErrSolveFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/optimization", bytes.NewReader(body))
	if err != nil {
		return ports.Solution{}, fmt.Errorf("%w: %w", ports.ErrSolveFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", c.apiKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ports.Solution{}, fmt.Errorf("%w: %w", ports.ErrSolveFailed, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return ports.Solution{}, fmt.Errorf("%w: status %d: %s",
			ports.ErrSolveFailed, httpResp.StatusCode, payload)
	}

	var response optimizationResponse
	if err = json.NewDecoder(httpResp.Body).Decode(&response); err != nil {
		return ports.Solution{}, fmt.Errorf("%w: decode response: %w", ports.ErrSolveFailed, err)
	}

	return c.translate(problem, response)
}

// Wire types for the optimization request. Each stop becomes a shipment:
// a delivery stop is depot-pickup + customer-delivery, a pickup stop is
// customer-pickup + depot-delivery, so the step the courier meets the
// recipient at always carries the service time and window.
type optimizationRequest struct {
	Shipments []shipment    `json:"shipments"`
	Vehicles  []wireVehicle `json:"vehicles"`
	Options   options       `json:"options"`
}

type options struct {
	Geometry bool `json:"g"`
}

type shipment struct {
	Amount   []int         `json:"amount"`
	Skills   []int64       `json:"skills,omitempty"`
	Pickup   shipmentStep  `json:"pickup"`
	Delivery shipmentStep  `json:"delivery"`
}

type shipmentStep struct {
	ID          int64       `json:"id"`
	Location    [2]float64  `json:"location"`
	Service     int         `json:"service,omitempty"`
	TimeWindows [][2]int64  `json:"time_windows,omitempty"`
}

type wireVehicle struct {
	ID         int64      `json:"id"`
	Profile    string     `json:"profile"`
	Start      [2]float64 `json:"start"`
	End        [2]float64 `json:"end"`
	Capacity   []int      `json:"capacity"`
	Skills     []int64    `json:"skills"`
	TimeWindow [2]int64   `json:"time_window"`
}

type optimizationResponse struct {
	Routes []wireRoute `json:"routes"`
}

type wireRoute struct {
	Vehicle  int64      `json:"vehicle"`
	Geometry string     `json:"geometry"`
	Distance float64    `json:"distance"`
	Duration float64    `json:"duration"`
	Steps    []wireStep `json:"steps"`
}

type wireStep struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

func (c *Client) buildRequest(problem ports.Problem) optimizationRequest {
	request := optimizationRequest{Options: options{Geometry: true}}

	solverIDs := make(map[string]int64, len(problem.Vehicles))
	for _, v := range problem.Vehicles {
		solverIDs[v.VehicleID.String()] = v.SolverID
	}

	depotLocation := [2]float64{problem.Depot.Lng(), problem.Depot.Lat()}

	for _, ps := range problem.Stops {
		customer := shipmentStep{
			ID:       ps.CustomerLegID,
			Location: [2]float64{ps.Location.Lng(), ps.Location.Lat()},
			Service:  ps.ServiceSeconds,
			TimeWindows: [][2]int64{
				{ps.WindowStart.Unix(), ps.WindowEnd.Unix()},
			},
		}
		depotStep := shipmentStep{
			ID:       ps.DepotLegID,
			Location: depotLocation,
		}

		s := shipment{Amount: []int{1}}
		if ps.Kind == stop.Pickup {
			s.Pickup, s.Delivery = customer, depotStep
		} else {
			s.Pickup, s.Delivery = depotStep, customer
		}

		if ps.AllowedVehicle != nil {
			if solverID, ok := solverIDs[ps.AllowedVehicle.String()]; ok {
				s.Skills = []int64{solverID}
			}
		}

		request.Shipments = append(request.Shipments, s)
	}

	for _, v := range problem.Vehicles {
		request.Vehicles = append(request.Vehicles, wireVehicle{
			ID:         v.SolverID,
			Profile:    profileName(v.Profile),
			Start:      [2]float64{v.Start.Lng(), v.Start.Lat()},
			End:        [2]float64{v.Start.Lng(), v.Start.Lat()},
			Capacity:   []int{v.Capacity},
			Skills:     []int64{v.SolverID},
			TimeWindow: [2]int64{v.WindowStart.Unix(), v.WindowEnd.Unix()},
		})
	}

	return request
}

// translate maps solver-local identifiers back to domain ids, keeping only
// the customer-facing leg of each shipment.
func (c *Client) translate(problem ports.Problem, response optimizationResponse) (ports.Solution, error) {
	if len(response.Routes) == 0 {
		return ports.Solution{}, fmt.Errorf("%w: response contains no routes", ports.ErrSolveFailed)
	}

	vehicleIDs := make(map[int64]kernel.UUID, len(problem.Vehicles))
	for _, v := range problem.Vehicles {
		vehicleIDs[v.SolverID] = v.VehicleID
	}

	var solution ports.Solution

	for _, r := range response.Routes {
		vehicleID, ok := vehicleIDs[r.Vehicle]
		if !ok {
			return ports.Solution{}, fmt.Errorf("%w: unknown vehicle %d in response",
				ports.ErrSolveFailed, r.Vehicle)
		}

		assignment := ports.Assignment{
			VehicleID:       vehicleID,
			Geometry:        r.Geometry,
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
		}

		for _, step := range r.Steps {
			if step.Type != "pickup" && step.Type != "delivery" {
				continue
			}

			leg, ok := problem.Legs[step.ID]
			if !ok {
				return ports.Solution{}, fmt.Errorf("%w: unknown step id %d in response",
					ports.ErrSolveFailed, step.ID)
			}
			if leg.CustomerFacing {
				assignment.StopIDs = append(assignment.StopIDs, leg.StopID)
			}
		}

		solution.Assignments = append(solution.Assignments, assignment)
	}

	return solution, nil
}

func profileName(p vehicle.Profile) string {
	switch p {
	case vehicle.DrivingTruck:
		return "driving-hgv"
	case vehicle.Cycling:
		return "cycling-regular"
	case vehicle.Walking:
		return "foot-walking"
	default:
		return "driving-car"
	}
}
