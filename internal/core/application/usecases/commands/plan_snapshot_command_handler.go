package commands

import (
	"context"
	"log/slog"
	"time"

	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/ports"
)

// Planner is the assignment algorithm as seen by the application layer.
// services.AssignmentEngine satisfies it.
type Planner interface {
	Assign(drones []*drone.Drone, orders []*order.Order) (*plan.Plan, error)
}

// PlanSnapshotCommandHandler runs the planner on one snapshot, records metrics
// and logs what was left unassigned.
//
// Example:
//
//	handler := NewPlanSnapshotCommandHandler(services.NewAssignmentEngine(), metrics, logger)
//	cmd, _ := NewPlanSnapshotCommand(s, "input_case1.json")
//	p, err := handler.Handle(ctx, cmd)
type PlanSnapshotCommandHandler struct {
	planner Planner
	metrics ports.PlanMetrics
	logger  *slog.Logger
}

// NewPlanSnapshotCommandHandler creates the handler.
func NewPlanSnapshotCommandHandler(
	planner Planner,
	metrics ports.PlanMetrics,
	logger *slog.Logger,
) PlanSnapshotCommandHandler {
	return PlanSnapshotCommandHandler{
		planner: planner,
		metrics: metrics,
		logger:  logger.With("component", "plan_snapshot_handler"),
	}
}

// Handle computes the plan. Unassigned orders are not an error.
func (h PlanSnapshotCommandHandler) Handle(ctx context.Context, cmd PlanSnapshotCommand) (*plan.Plan, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s := cmd.Snapshot()
	started := time.Now()

	p, err := h.planner.Assign(s.Drones(), s.Orders())
	if err != nil {
		h.metrics.ObserveFailure("assign")
		return nil, err
	}
	h.metrics.ObservePlan(p, time.Since(started))

	h.logger.InfoContext(ctx, "Plan computed",
		"source", cmd.Source(),
		"drones", len(s.Drones()),
		"orders", len(s.Orders()),
		"assignments", len(p.Assignments()),
		"assigned_orders", p.AssignedOrders(),
		"total_distance", p.TotalDistance(),
	)
	if unassigned := p.Unassigned(); len(unassigned) > 0 {
		ids := make([]string, len(unassigned))
		for i, id := range unassigned {
			ids[i] = id.String()
		}
		h.logger.WarnContext(ctx, "Orders left unassigned", "source", cmd.Source(), "orders", ids)
	}

	return p, nil
}
