// Package commands contains business operations that modify system state or produce plans.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command is built by a constructor and validated by its handler before use.
package commands

import (
	"context"

	"dronedelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SnapshotRepoFactory provides access to the snapshot repository within a transaction.
	SnapshotRepoFactory interface {
		SnapshotRepository() ports.SnapshotRepository
	}

	// PlanRepoFactory provides access to the plan repository within a transaction.
	PlanRepoFactory interface {
		PlanRepository() ports.PlanRepository
	}

	// SnapshotUoW manages transactions for snapshot-only operations.
	SnapshotUoW interface {
		TxManager
		SnapshotRepoFactory
	}

	// SnapshotUoWFactory creates new snapshot unit of work instances.
	SnapshotUoWFactory interface {
		Create() SnapshotUoW
	}

	// PlanningUoW manages transactions spanning snapshots and their plans.
	PlanningUoW interface {
		TxManager
		SnapshotRepoFactory
		PlanRepoFactory
	}

	// PlanningUoWFactory creates new planning unit of work instances.
	PlanningUoWFactory interface {
		Create() PlanningUoW
	}
)
