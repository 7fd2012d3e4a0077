package postgres

import (
	"context"
	"log/slog"

	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/domain/model/snapshot"
	"dronedelivery/internal/core/ports"
)

// Store reads snapshots and writes plans by snapshot name. It implements
// ports.SnapshotReader and ports.PlanWriter, so batch planning runs against the
// database exactly as it runs against files.
type Store struct {
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger
}

// NewStore creates a Store.
func NewStore(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *Store {
	return &Store{
		uowFactory: uowFactory,
		logger:     logger.With("component", "postgres_store"),
	}
}

// Read loads the snapshot stored under name.
func (s *Store) Read(ctx context.Context, name string) (*snapshot.Snapshot, error) {
	return s.uowFactory.Create().SnapshotRepository().Get(ctx, name)
}

// Names lists the stored snapshot names alphabetically.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	return s.uowFactory.Create().SnapshotRepository().Names(ctx)
}

// Write appends p as the newest plan of snapshot name.
func (s *Store) Write(ctx context.Context, name string, p *plan.Plan) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	id, err := uow.PlanRepository().Add(ctx, name, p)
	if err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "Plan stored", "snapshot", name, "plan_id", id)
	return nil
}
