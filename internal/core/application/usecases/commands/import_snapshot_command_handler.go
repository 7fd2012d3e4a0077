package commands

import (
	"context"
	"log/slog"
)

// ImportSnapshotCommandHandler persists a named snapshot, replacing any earlier
// snapshot with the same name inside one transaction.
type ImportSnapshotCommandHandler struct {
	uowFactory SnapshotUoWFactory
	logger     *slog.Logger
}

// NewImportSnapshotCommandHandler creates a handler for snapshot imports.
func NewImportSnapshotCommandHandler(uowFactory SnapshotUoWFactory, logger *slog.Logger) ImportSnapshotCommandHandler {
	return ImportSnapshotCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "import_snapshot_handler"),
	}
}

// Handle saves the snapshot and commits.
func (h ImportSnapshotCommandHandler) Handle(ctx context.Context, cmd ImportSnapshotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SnapshotRepository().Save(ctx, cmd.Name(), cmd.Snapshot()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Snapshot imported",
		"snapshot", cmd.Name(),
		"drones", len(cmd.Snapshot().Drones()),
		"orders", len(cmd.Snapshot().Orders()),
	)
	return nil
}
