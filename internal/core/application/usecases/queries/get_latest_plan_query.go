// Package queries contains read operations over persisted snapshots and plans.
// Handlers read with plain SQL and return read models rather than domain aggregates.
package queries

import (
	"errors"
	"strings"
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrGetLatestPlanQueryIsNotConstructed = errors.New(
	"GetLatestPlanQuery must be created via NewGetLatestPlanQuery constructor",
)

// GetLatestPlanQuery fetches the most recent plan stored for a snapshot.
//
// Example:
//
//	query, err := NewGetLatestPlanQuery("nightly")
//	if err != nil {
//	    return err
//	}
//	latest, err := NewGetLatestPlanQueryHandler(db).Handle(ctx, query)
type GetLatestPlanQuery struct {
	snapshotName string

	guard guard.ConstructorGuard
}

// NewGetLatestPlanQuery creates the query. The snapshot name must not be blank.
func NewGetLatestPlanQuery(snapshotName string) (GetLatestPlanQuery, error) {
	if strings.TrimSpace(snapshotName) == "" {
		return GetLatestPlanQuery{}, errs.NewValueIsRequiredError("snapshot_name")
	}
	return GetLatestPlanQuery{snapshotName: snapshotName, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLatestPlanQuery) Validate() error {
	return q.guard.Validate(ErrGetLatestPlanQueryIsNotConstructed)
}

func (q GetLatestPlanQuery) SnapshotName() string {
	return q.snapshotName
}

// GetLatestPlanQueryResponse is the read model of a stored plan.
type GetLatestPlanQueryResponse struct {
	PlanID        uuid.UUID
	SnapshotName  string
	CreatedAt     time.Time
	TotalDistance int
	Assignments   []PlanAssignmentView
	Unassigned    []kernel.ID
}

// PlanAssignmentView is one drone tour of a stored plan, orders in visiting order.
type PlanAssignmentView struct {
	DroneID       kernel.ID
	Orders        []kernel.ID
	TotalDistance int
}
