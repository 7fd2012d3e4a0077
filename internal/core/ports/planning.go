package ports

import (
	"context"
	"time"

	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/domain/model/snapshot"
)

// SnapshotReader loads the input of a planning run. The meaning of location
// belongs to the adapter: a file path, a snapshot name.
type SnapshotReader interface {
	Read(ctx context.Context, location string) (*snapshot.Snapshot, error)
}

// PlanWriter stores the output of a planning run at location.
type PlanWriter interface {
	Write(ctx context.Context, location string, p *plan.Plan) error
}

// PlanMetrics records the outcome of planning runs.
type PlanMetrics interface {
	ObservePlan(p *plan.Plan, elapsed time.Duration)
	ObserveFailure(stage string)
}
