package ports

import (
	"context"

	"dronedelivery/internal/core/domain/model/plan"

	"github.com/google/uuid"
)

// PlanRepository persists plans computed for a snapshot. Plans are append-only;
// every run stores a new row set.
type PlanRepository interface {
	Add(ctx context.Context, snapshotName string, p *plan.Plan) (uuid.UUID, error)
}
