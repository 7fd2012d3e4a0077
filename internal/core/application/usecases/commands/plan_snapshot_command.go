package commands

import (
	"errors"

	"dronedelivery/internal/core/domain/model/snapshot"
	"dronedelivery/internal/pkg/guard"
)

var ErrPlanSnapshotCommandIsNotConstructed = errors.New(
	"PlanSnapshotCommand must be created via NewPlanSnapshotCommand constructor",
)

// PlanSnapshotCommand asks for a plan for one snapshot. Source only labels logs.
type PlanSnapshotCommand struct {
	snapshot *snapshot.Snapshot
	source   string

	guard guard.ConstructorGuard
}

// NewPlanSnapshotCommand creates the command; the snapshot must be constructed.
func NewPlanSnapshotCommand(s *snapshot.Snapshot, source string) (PlanSnapshotCommand, error) {
	if err := s.Validate(); err != nil {
		return PlanSnapshotCommand{}, err
	}

	return PlanSnapshotCommand{
		snapshot: s,
		source:   source,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrPlanSnapshotCommandIsNotConstructed)
}

func (c PlanSnapshotCommand) Snapshot() *snapshot.Snapshot { return c.snapshot }
func (c PlanSnapshotCommand) Source() string               { return c.source }
