package services_test

import (
	"testing"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/stop"
	"fleetroute/internal/core/domain/model/vehicle"
	"fleetroute/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func mustGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func newRouteableStop(t *testing.T, kind stop.Kind) *stop.Stop {
	t.Helper()
	s, err := stop.NewStop(kernel.NewUUID(), "stop", testDate(), kind)
	require.NoError(t, err)
	require.NoError(t, s.SetLocation(mustGeoPoint(t, 55.75, 37.61)))
	return s
}

func newTestVehicle(t *testing.T) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "courier", vehicle.TransportCar, 10)
	require.NoError(t, err)
	return v
}

func TestProblemBuilder_Build(t *testing.T) {
	builder, err := services.NewProblemBuilder(services.PinCurrentAssignment)
	require.NoError(t, err)
	depotLocation := mustGeoPoint(t, 55.70, 37.50)

	t.Run("builds problem with default window and service time", func(t *testing.T) {
		s := newRouteableStop(t, stop.Delivery)
		v := newTestVehicle(t)

		result, err := builder.Build(depotLocation, testDate(), []*stop.Stop{s}, []*vehicle.Vehicle{v})
		require.NoError(t, err)

		require.Len(t, result.Problem.Stops, 1)
		ps := result.Problem.Stops[0]
		assert.Equal(t, int(services.DefaultServiceDuration.Seconds()), ps.ServiceSeconds)
		assert.Equal(t, time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), ps.WindowStart)
		assert.Equal(t, time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC), ps.WindowEnd)
		assert.Nil(t, ps.AllowedVehicle)

		require.Len(t, result.Problem.Vehicles, 1)
		pv := result.Problem.Vehicles[0]
		assert.Equal(t, int64(1), pv.SolverID)
		assert.True(t, depotLocation.IsEqual(pv.Start), "vehicle without start falls back to depot")
	})

	t.Run("declared window anchored to service date", func(t *testing.T) {
		s := newRouteableStop(t, stop.Delivery)
		window, err := kernel.NewTimeWindow("10:30", "12:00")
		require.NoError(t, err)
		require.NoError(t, s.SetWindow(window))

		result, err := builder.Build(depotLocation, testDate(), []*stop.Stop{s}, []*vehicle.Vehicle{newTestVehicle(t)})
		require.NoError(t, err)

		ps := result.Problem.Stops[0]
		assert.Equal(t, time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), ps.WindowStart)
		assert.Equal(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), ps.WindowEnd)
	})

	t.Run("leg side-table maps both legs back to the stop", func(t *testing.T) {
		delivery := newRouteableStop(t, stop.Delivery)
		pickup := newRouteableStop(t, stop.Pickup)

		result, err := builder.Build(depotLocation, testDate(),
			[]*stop.Stop{delivery, pickup}, []*vehicle.Vehicle{newTestVehicle(t)})
		require.NoError(t, err)
		require.Len(t, result.Problem.Legs, 4)

		for i, s := range []*stop.Stop{delivery, pickup} {
			ps := result.Problem.Stops[i]
			customer := result.Problem.Legs[ps.CustomerLegID]
			depotLeg := result.Problem.Legs[ps.DepotLegID]

			assert.True(t, customer.CustomerFacing)
			assert.True(t, customer.StopID.IsEqual(s.ID()))
			assert.False(t, depotLeg.CustomerFacing)
			assert.True(t, depotLeg.StopID.IsEqual(s.ID()))
		}
	})

	t.Run("stop without coordinate is skipped and reported", func(t *testing.T) {
		routeable := newRouteableStop(t, stop.Delivery)
		unrouteable, err := stop.NewStop(kernel.NewUUID(), "no coords", testDate(), stop.Delivery)
		require.NoError(t, err)

		result, err := builder.Build(depotLocation, testDate(),
			[]*stop.Stop{routeable, unrouteable}, []*vehicle.Vehicle{newTestVehicle(t)})
		require.NoError(t, err)

		assert.Len(t, result.Problem.Stops, 1)
		require.Len(t, result.Skipped, 1)
		assert.True(t, result.Skipped[0].StopID.IsEqual(unrouteable.ID()))
	})

	t.Run("required vehicle is always a hard constraint", func(t *testing.T) {
		s := newRouteableStop(t, stop.Delivery)
		v := newTestVehicle(t)
		require.NoError(t, s.RequireVehicle(v.ID()))

		result, err := builder.Build(depotLocation, testDate(), []*stop.Stop{s}, []*vehicle.Vehicle{v})
		require.NoError(t, err)

		require.NotNil(t, result.Problem.Stops[0].AllowedVehicle)
		assert.True(t, result.Problem.Stops[0].AllowedVehicle.IsEqual(v.ID()))
	})

	t.Run("current assignment pinned by default policy", func(t *testing.T) {
		s := newRouteableStop(t, stop.Delivery)
		v := newTestVehicle(t)
		require.NoError(t, s.AssignVehicle(v.ID()))

		result, err := builder.Build(depotLocation, testDate(), []*stop.Stop{s}, []*vehicle.Vehicle{v})
		require.NoError(t, err)

		require.NotNil(t, result.Problem.Stops[0].AllowedVehicle)
		assert.True(t, result.Problem.Stops[0].AllowedVehicle.IsEqual(v.ID()))
	})

	t.Run("current assignment ignored under relaxed policy", func(t *testing.T) {
		relaxed, err := services.NewProblemBuilder(services.IgnoreCurrentAssignment)
		require.NoError(t, err)

		s := newRouteableStop(t, stop.Delivery)
		v := newTestVehicle(t)
		require.NoError(t, s.AssignVehicle(v.ID()))

		result, err := relaxed.Build(depotLocation, testDate(), []*stop.Stop{s}, []*vehicle.Vehicle{v})
		require.NoError(t, err)
		assert.Nil(t, result.Problem.Stops[0].AllowedVehicle)
	})

	t.Run("no routeable stops yields empty problem error", func(t *testing.T) {
		unrouteable, err := stop.NewStop(kernel.NewUUID(), "no coords", testDate(), stop.Delivery)
		require.NoError(t, err)

		_, err = builder.Build(depotLocation, testDate(),
			[]*stop.Stop{unrouteable}, []*vehicle.Vehicle{newTestVehicle(t)})
		require.ErrorIs(t, err, services.ErrEmptyProblem)
	})

	t.Run("no vehicles yields empty problem error", func(t *testing.T) {
		s := newRouteableStop(t, stop.Delivery)
		_, err := builder.Build(depotLocation, testDate(), []*stop.Stop{s}, nil)
		require.ErrorIs(t, err, services.ErrEmptyProblem)
	})
}
