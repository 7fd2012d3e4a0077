package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// PersistPlanCommandHandler replaces the named snapshot and appends its plan in
// one transaction, so a stored plan always belongs to the stored snapshot.
type PersistPlanCommandHandler struct {
	uowFactory PlanningUoWFactory
	logger     *slog.Logger
}

// NewPersistPlanCommandHandler creates the handler.
func NewPersistPlanCommandHandler(uowFactory PlanningUoWFactory, logger *slog.Logger) PersistPlanCommandHandler {
	return PersistPlanCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "persist_plan_handler"),
	}
}

// Handle saves the snapshot, adds the plan and commits. It returns the id of
// the stored plan.
func (h PersistPlanCommandHandler) Handle(ctx context.Context, cmd PersistPlanCommand) (uuid.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return uuid.Nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return uuid.Nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SnapshotRepository().Save(ctx, cmd.Name(), cmd.Snapshot()); err != nil {
		return uuid.Nil, err
	}

	planID, err := uow.PlanRepository().Add(ctx, cmd.Name(), cmd.Plan())
	if err != nil {
		return uuid.Nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return uuid.Nil, err
	}

	h.logger.InfoContext(ctx, "Snapshot and plan stored",
		"snapshot", cmd.Name(),
		"plan_id", planID,
	)
	return planID, nil
}
