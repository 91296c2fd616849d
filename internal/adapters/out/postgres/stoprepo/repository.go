package stoprepo

import (
	"context"
	"errors"
	"time"

	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/stop"
	"fleetroute/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStopRepository implements StopRepository using GORM.
type GormStopRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStopRepository creates a new GORM stop repository.
func NewGormStopRepository(db *gorm.DB, tracker aggregateTracker) *GormStopRepository {
	return &GormStopRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stop to the database.
func (r *GormStopRepository) Add(ctx context.Context, aggregate *stop.Stop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing stop to the database. Select("*") forces every
// column through, so cleared linkage (route_id, position) and cleared proof
// fields persist as NULL/empty instead of being skipped as zero values.
func (r *GormStopRepository) Update(ctx context.Context, aggregate *stop.Stop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&StopDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a stop by ID.
func (r *GormStopRepository) Get(ctx context.Context, id kernel.UUID) (*stop.Stop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stop", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPlannedUnassignedByDate retrieves the planning backlog for a service
// date: Planned stops not linked to any route.
func (r *GormStopRepository) GetAllPlannedUnassignedByDate(
	ctx context.Context, serviceDate time.Time,
) ([]*stop.Stop, error) {
	var dtos []StopDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND route_id IS NULL AND service_date = ?", stop.Planned, serviceDate).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllByRouteID retrieves a route's stops ordered by position.
func (r *GormStopRepository) GetAllByRouteID(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StopDTO
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID.Bytes()).
		Order("position").
		Find(&dtos).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []StopDTO) ([]*stop.Stop, error) {
	stops := make([]*stop.Stop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, nil
}
