package depotrepo

import (
	"context"
	"errors"

	"fleetroute/internal/core/domain/model/depot"
	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDepotRepository implements DepotRepository using GORM.
type GormDepotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDepotRepository creates a new GORM depot repository.
func NewGormDepotRepository(db *gorm.DB, tracker aggregateTracker) *GormDepotRepository {
	return &GormDepotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new depot to the database.
func (r *GormDepotRepository) Add(ctx context.Context, aggregate *depot.Depot) error {
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

// Get retrieves a depot by ID.
func (r *GormDepotRepository) Get(ctx context.Context, id kernel.UUID) (*depot.Depot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DepotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("depot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every registered depot.
func (r *GormDepotRepository) GetAll(ctx context.Context) ([]*depot.Depot, error) {
	var dtos []DepotDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	depots := make([]*depot.Depot, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		depots = append(depots, d)
	}

	return depots, nil
}

// GetPrimary retrieves the default depot for stops without an explicit
// depot binding.
func (r *GormDepotRepository) GetPrimary(ctx context.Context) (*depot.Depot, error) {
	var dto DepotDTO
	if err := r.db.WithContext(ctx).First(&dto, "is_primary = ?", true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("depot", "primary")
		}
		return nil, err
	}

	return toDomain(dto)
}
