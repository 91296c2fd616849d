package redistracker_test

import (
	"testing"
	"time"

	"fleetroute/internal/adapters/out/redistracker"
	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T, opts ...redistracker.Option) (*redistracker.RedisPositionTracker, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tracker, err := redistracker.NewRedisPositionTracker(client, opts...)
	require.NoError(t, err)
	return tracker, server
}

func TestRedisPositionTracker_SetAndGet(t *testing.T) {
	ctx := t.Context()
	tracker, _ := newTracker(t)

	vehicleID := kernel.NewUUID()
	position, err := kernel.NewGeoPoint(55.7558, 37.6173)
	require.NoError(t, err)

	require.NoError(t, tracker.SetPosition(ctx, vehicleID, position))

	got, err := tracker.GetPosition(ctx, vehicleID)
	require.NoError(t, err)
	assert.True(t, got.IsEqual(position))
}

func TestRedisPositionTracker_OverwritesPrevious(t *testing.T) {
	ctx := t.Context()
	tracker, _ := newTracker(t)

	vehicleID := kernel.NewUUID()
	first, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)
	second, err := kernel.NewGeoPoint(55.76, 37.62)
	require.NoError(t, err)

	require.NoError(t, tracker.SetPosition(ctx, vehicleID, first))
	require.NoError(t, tracker.SetPosition(ctx, vehicleID, second))

	got, err := tracker.GetPosition(ctx, vehicleID)
	require.NoError(t, err)
	assert.True(t, got.IsEqual(second))
}

func TestRedisPositionTracker_NotTracked(t *testing.T) {
	ctx := t.Context()
	tracker, _ := newTracker(t)

	_, err := tracker.GetPosition(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, ports.ErrPositionNotTracked)
}

func TestRedisPositionTracker_PositionExpires(t *testing.T) {
	ctx := t.Context()
	tracker, server := newTracker(t, redistracker.WithTTL(time.Minute))

	vehicleID := kernel.NewUUID()
	position, err := kernel.NewGeoPoint(55.7558, 37.6173)
	require.NoError(t, err)
	require.NoError(t, tracker.SetPosition(ctx, vehicleID, position))

	server.FastForward(2 * time.Minute)

	_, err = tracker.GetPosition(ctx, vehicleID)
	require.ErrorIs(t, err, ports.ErrPositionNotTracked)
}

func TestNewRedisPositionTracker_RequiresClient(t *testing.T) {
	_, err := redistracker.NewRedisPositionTracker(nil)
	require.Error(t, err)
}
