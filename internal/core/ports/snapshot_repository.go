// Package ports defines the contracts between the planning core and its adapters.
// Planning reads snapshots and writes plans through location-addressed ports so the
// same command works against files and against the database.
package ports

import (
	"context"

	"dronedelivery/internal/core/domain/model/snapshot"
)

// SnapshotRepository persists named snapshots.
type SnapshotRepository interface {
	// Save stores s under name, replacing any snapshot with the same name.
	Save(ctx context.Context, name string, s *snapshot.Snapshot) error

	// Get loads the snapshot stored under name with fleet and backlog in their original order.
	// Returns errs.ObjectNotFoundError when no such snapshot exists.
	Get(ctx context.Context, name string) (*snapshot.Snapshot, error)

	// Names lists stored snapshot names alphabetically.
	Names(ctx context.Context) ([]string, error)
}
