package route_test

import (
	"testing"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoute(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		vehicleID := kernel.NewUUID()
		r, err := route.NewRoute(kernel.NewUUID(), vehicleID, time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, route.Active, r.Status())
		assert.True(t, r.IsActive())
		assert.True(t, vehicleID.IsEqual(r.Vehicle()))
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), r.ServiceDate())
		assert.Empty(t, r.Geometry())
	})

	t.Run("zero vehicle rejected", func(t *testing.T) {
		_, err := route.NewRoute(kernel.NewUUID(), kernel.UUID{}, time.Now())
		require.Error(t, err)
	})
}

func TestRouteComplete(t *testing.T) {
	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)

	require.NoError(t, r.Complete())
	assert.Equal(t, route.Completed, r.Status())
	assert.False(t, r.IsActive())

	// One-way transition: completing again is rejected.
	require.Error(t, r.Complete())
	assert.Equal(t, route.Completed, r.Status())
}

func TestRouteGeometry(t *testing.T) {
	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)

	r.SetGeometry("_p~iF~ps|U")
	assert.Equal(t, "_p~iF~ps|U", r.Geometry())
}

func TestRestoreRoute(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		id := kernel.NewUUID()
		r, err := route.RestoreRoute(id, kernel.NewUUID(), time.Now(), route.Completed, "geom")
		require.NoError(t, err)
		assert.Equal(t, route.Completed, r.Status())
		assert.Equal(t, "geom", r.Geometry())
		assert.True(t, id.IsEqual(r.ID()))
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := route.RestoreRoute(kernel.NewUUID(), kernel.NewUUID(), time.Now(), route.Status(42), "")
		require.Error(t, err)
	})
}

func TestRouteValidateZeroValue(t *testing.T) {
	var r route.Route
	require.ErrorIs(t, r.Validate(), route.ErrRouteIsNotConstructed)
}
