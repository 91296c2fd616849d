package http

// Error is the uniform error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlanRoutesRequest asks for a planning run on one service date.
type PlanRoutesRequest struct {
	ServiceDate string `json:"service_date"`
}

// PlanRoutesResponse summarizes a planning run.
type PlanRoutesResponse struct {
	RoutesCreated int      `json:"routes_created"`
	StopsAssigned int      `json:"stops_assigned"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ReorderRouteRequest carries the full replacement stop order.
type ReorderRouteRequest struct {
	StopIDs []string `json:"stop_ids"`
}

// CompleteStopRequest attaches an optional proof-of-completion reference.
type CompleteStopRequest struct {
	ProofRef string `json:"proof_ref"`
}

// FailStopRequest carries the mandatory failure reason.
type FailStopRequest struct {
	Reason string `json:"reason"`
}

// MarkStopResponse reports whether terminal marking closed the route.
type MarkStopResponse struct {
	RouteCompleted bool `json:"route_completed"`
}

// VehiclePositionRequest carries a live coordinate report.
type VehiclePositionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VehiclePositionResponse is the vehicle's last reported live coordinate.
type VehiclePositionResponse struct {
	VehicleID string  `json:"vehicle_id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// RouteSummary is one row of the dispatcher's board. StopIDs follow the
// route's visiting order.
type RouteSummary struct {
	ID             string   `json:"id"`
	VehicleID      string   `json:"vehicle_id"`
	Status         string   `json:"status"`
	StopIDs        []string `json:"stop_ids"`
	StopsTotal     int      `json:"stops_total"`
	StopsCompleted int      `json:"stops_completed"`
	StopsFailed    int      `json:"stops_failed"`
}

// Point is a decoded geometry coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteGeometryResponse carries both encoded and decoded route geometry.
type RouteGeometryResponse struct {
	RouteID  string  `json:"route_id"`
	Geometry string  `json:"geometry"`
	Points   []Point `json:"points"`
}
