package planrepo

import (
	"context"
	"time"

	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPlanRepository implements ports.PlanRepository using GORM.
type GormPlanRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormPlanRepository creates a new GORM plan repository. db may be a transaction handle.
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db, now: time.Now}
}

// Add stores p as the newest plan of snapshotName and returns its id. Ids are
// version 7 UUIDs, so they sort by creation time.
func (r *GormPlanRepository) Add(ctx context.Context, snapshotName string, p *plan.Plan) (uuid.UUID, error) {
	if snapshotName == "" {
		return uuid.Nil, errs.NewValueIsRequiredError("snapshot_name")
	}
	if p == nil {
		return uuid.Nil, errs.NewValueIsRequiredError("plan")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}

	dto := fromDomain(id, snapshotName, p, r.now().UTC())
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
