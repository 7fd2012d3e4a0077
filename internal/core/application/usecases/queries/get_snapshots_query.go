package queries

import (
	"errors"
	"time"

	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

// MaxSnapshotsLimit caps a single snapshot listing.
const MaxSnapshotsLimit = 500

var ErrGetSnapshotsQueryIsNotConstructed = errors.New(
	"GetSnapshotsQuery must be created via NewGetSnapshotsQuery constructor",
)

// GetSnapshotsQuery lists stored snapshots alphabetically, at most limit of them.
type GetSnapshotsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetSnapshotsQuery creates the query; limit must be within [1, MaxSnapshotsLimit].
func NewGetSnapshotsQuery(limit int) (GetSnapshotsQuery, error) {
	if limit < 1 || limit > MaxSnapshotsLimit {
		return GetSnapshotsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxSnapshotsLimit)
	}
	return GetSnapshotsQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSnapshotsQuery) Validate() error {
	return q.guard.Validate(ErrGetSnapshotsQueryIsNotConstructed)
}

func (q GetSnapshotsQuery) Limit() int {
	return q.limit
}

// GetSnapshotsQueryResponse summarizes one stored snapshot.
type GetSnapshotsQueryResponse struct {
	Name       string
	GridWidth  int
	GridHeight int
	Drones     int
	Orders     int
	Plans      int
	CreatedAt  time.Time
}
