package snapshotrepo

import (
	"context"
	"errors"

	"dronedelivery/internal/core/domain/model/snapshot"
	"dronedelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSnapshotRepository implements ports.SnapshotRepository using GORM.
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GORM snapshot repository. db may be a
// transaction handle.
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Save replaces the snapshot stored under name with s.
func (r *GormSnapshotRepository) Save(ctx context.Context, name string, s *snapshot.Snapshot) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(name, s)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("snapshot_name = ?", name).Delete(&DroneDTO{}).Error; err != nil {
			return err
		}
		if err := tx.Where("snapshot_name = ?", name).Delete(&OrderDTO{}).Error; err != nil {
			return err
		}
		if err := tx.Where("name = ?", name).Delete(&SnapshotDTO{}).Error; err != nil {
			return err
		}
		return tx.Create(&dto).Error
	})
}

// Get loads the snapshot stored under name.
func (r *GormSnapshotRepository) Get(ctx context.Context, name string) (*snapshot.Snapshot, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto SnapshotDTO
	err := r.db.WithContext(ctx).
		Preload("Drones", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("snapshot", name)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Names lists stored snapshot names alphabetically.
func (r *GormSnapshotRepository) Names(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	if err := r.db.WithContext(ctx).Model(&SnapshotDTO{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
