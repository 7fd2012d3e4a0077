package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/ports"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SnapshotPlanner plans one snapshot. PlanSnapshotCommandHandler satisfies it.
type SnapshotPlanner interface {
	Handle(ctx context.Context, cmd PlanSnapshotCommand) (*plan.Plan, error)
}

// PairResult is the outcome of one pair of a batch.
type PairResult struct {
	Pair Pair
	Plan *plan.Plan
}

// PlanBatchCommandHandler reads, plans and writes every pair of a batch.
// Pairs share nothing, so they run concurrently up to the configured limit.
// The first failure cancels the remaining pairs.
type PlanBatchCommandHandler struct {
	reader      ports.SnapshotReader
	writer      ports.PlanWriter
	planner     SnapshotPlanner
	metrics     ports.PlanMetrics
	concurrency int
	logger      *slog.Logger
}

// NewPlanBatchCommandHandler creates the handler. A concurrency below 1 means one pair at a time.
func NewPlanBatchCommandHandler(
	reader ports.SnapshotReader,
	writer ports.PlanWriter,
	planner SnapshotPlanner,
	metrics ports.PlanMetrics,
	concurrency int,
	logger *slog.Logger,
) PlanBatchCommandHandler {
	if concurrency < 1 {
		concurrency = 1
	}
	return PlanBatchCommandHandler{
		reader:      reader,
		writer:      writer,
		planner:     planner,
		metrics:     metrics,
		concurrency: concurrency,
		logger:      logger.With("component", "plan_batch_handler"),
	}
}

// Handle runs the batch and returns results in command order.
func (h PlanBatchCommandHandler) Handle(ctx context.Context, cmd PlanBatchCommand) ([]PairResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	pairs := cmd.Pairs()
	results := make([]PairResult, len(pairs))
	batchID := uuid.NewString()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			p, err := h.runPair(gctx, batchID, pair)
			if err != nil {
				return err
			}
			results[i] = PairResult{Pair: pair, Plan: p}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (h PlanBatchCommandHandler) runPair(ctx context.Context, batchID string, pair Pair) (*plan.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := h.logger.With("batch_id", batchID, "input", pair.Input)
	log.InfoContext(ctx, "Running planning case")

	s, err := h.reader.Read(ctx, pair.Input)
	if err != nil {
		h.metrics.ObserveFailure("read")
		return nil, fmt.Errorf("read %s: %w", pair.Input, err)
	}

	cmd, err := NewPlanSnapshotCommand(s, pair.Input)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", pair.Input, err)
	}

	p, err := h.planner.Handle(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", pair.Input, err)
	}

	if err = h.writer.Write(ctx, pair.Output, p); err != nil {
		h.metrics.ObserveFailure("write")
		return nil, fmt.Errorf("write %s: %w", pair.Output, err)
	}

	log.InfoContext(ctx, "Results written", "output", pair.Output)
	return p, nil
}
