package queries_test

import (
	"context"
	"testing"
	"time"

	"fleetroute/internal/core/application/usecases/queries"
	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type trackerMock struct {
	mock.Mock
}

func (m *trackerMock) SetPosition(ctx context.Context, vehicleID kernel.UUID, position kernel.GeoPoint) error {
	args := m.Called(ctx, vehicleID, position)
	return args.Error(0)
}

func (m *trackerMock) GetPosition(ctx context.Context, vehicleID kernel.UUID) (kernel.GeoPoint, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

func TestNewGetRoutesByDateQuery(t *testing.T) {
	serviceDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	query, err := queries.NewGetRoutesByDateQuery(serviceDate)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.Equal(t, serviceDate, query.ServiceDate())

	_, err = queries.NewGetRoutesByDateQuery(time.Time{})
	require.Error(t, err)

	var zero queries.GetRoutesByDateQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetRoutesByDateQueryIsNotConstructed)
}

func TestNewGetRoutesByDateQuery_TruncatesToCalendarDay(t *testing.T) {
	// Routes store midnight-UTC service dates; a mid-day timestamp must
	// still match them.
	query, err := queries.NewGetRoutesByDateQuery(
		time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), query.ServiceDate())
}

func TestNewGetRouteGeometryQuery(t *testing.T) {
	routeID := kernel.NewUUID()

	query, err := queries.NewGetRouteGeometryQuery(routeID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.Equal(t, routeID, query.RouteID())

	_, err = queries.NewGetRouteGeometryQuery(kernel.UUID{})
	require.Error(t, err)

	var zero queries.GetRouteGeometryQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetRouteGeometryQueryIsNotConstructed)
}

func TestNewGetVehiclePositionQuery(t *testing.T) {
	vehicleID := kernel.NewUUID()

	query, err := queries.NewGetVehiclePositionQuery(vehicleID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.Equal(t, vehicleID, query.VehicleID())

	_, err = queries.NewGetVehiclePositionQuery(kernel.UUID{})
	require.Error(t, err)

	var zero queries.GetVehiclePositionQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetVehiclePositionQueryIsNotConstructed)
}

func TestGetVehiclePositionQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	vehicleID := kernel.NewUUID()

	position, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)

	tracker := &trackerMock{}
	tracker.On("GetPosition", ctx, vehicleID).Return(position, nil)

	query, err := queries.NewGetVehiclePositionQuery(vehicleID)
	require.NoError(t, err)

	handler := queries.NewGetVehiclePositionQueryHandler(tracker)
	resp, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	require.Equal(t, vehicleID, resp.VehicleID)
	require.True(t, resp.Position.IsEqual(position))
	tracker.AssertExpectations(t)
}

func TestGetVehiclePositionQueryHandler_NotTracked(t *testing.T) {
	ctx := t.Context()
	vehicleID := kernel.NewUUID()

	tracker := &trackerMock{}
	tracker.On("GetPosition", ctx, vehicleID).
		Return(kernel.GeoPoint{}, ports.ErrPositionNotTracked)

	query, err := queries.NewGetVehiclePositionQuery(vehicleID)
	require.NoError(t, err)

	handler := queries.NewGetVehiclePositionQueryHandler(tracker)
	_, err = handler.Handle(ctx, query)
	require.ErrorIs(t, err, ports.ErrPositionNotTracked)
}
