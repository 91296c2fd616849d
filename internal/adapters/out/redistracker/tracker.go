// Package redistracker stores live vehicle positions in Redis. Positions are
// volatile telemetry, so they live in a cache with a TTL rather than in the
// relational store.
package redistracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "vehicle:position:"

	// DefaultTTL is how long a reported position stays readable. A vehicle
	// that stops reporting disappears from the map instead of showing a
	// stale coordinate.
	DefaultTTL = 10 * time.Minute
)

// positionRecord is the stored JSON payload.
type positionRecord struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	ReportedAt time.Time `json:"reported_at"`
}

// RedisPositionTracker implements ports.PositionTracker on top of a Redis
// client. Safe for concurrent use.
type RedisPositionTracker struct {
	client *redis.Client
	ttl    time.Duration
}

// Option configures a RedisPositionTracker.
type Option func(*RedisPositionTracker)

// WithTTL overrides the position expiry.
func WithTTL(ttl time.Duration) Option {
	return func(t *RedisPositionTracker) {
		t.ttl = ttl
	}
}

// NewRedisPositionTracker creates a tracker using the given Redis client.
func NewRedisPositionTracker(client *redis.Client, opts ...Option) (*RedisPositionTracker, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}

	t := &RedisPositionTracker{
		client: client,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// SetPosition records the vehicle's latest coordinate with the configured TTL.
func (t *RedisPositionTracker) SetPosition(
	ctx context.Context, vehicleID kernel.UUID, position kernel.GeoPoint,
) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	if err := position.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(positionRecord{
		Lat:        position.Lat(),
		Lng:        position.Lng(),
		ReportedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return t.client.Set(ctx, keyPrefix+vehicleID.String(), payload, t.ttl).Err()
}

// GetPosition returns the vehicle's latest coordinate, or
// ports.ErrPositionNotTracked when nothing is recorded or the record expired.
func (t *RedisPositionTracker) GetPosition(
	ctx context.Context, vehicleID kernel.UUID,
) (kernel.GeoPoint, error) {
	if err := vehicleID.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	payload, err := t.client.Get(ctx, keyPrefix+vehicleID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return kernel.GeoPoint{}, fmt.Errorf("%w: %s", ports.ErrPositionNotTracked, vehicleID)
		}
		return kernel.GeoPoint{}, err
	}

	var record positionRecord
	if err = json.Unmarshal(payload, &record); err != nil {
		return kernel.GeoPoint{}, err
	}

	return kernel.NewGeoPoint(record.Lat, record.Lng)
}
