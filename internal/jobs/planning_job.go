package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"dronedelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BatchPlanner runs a planning batch. commands.PlanBatchCommandHandler satisfies it.
type BatchPlanner interface {
	Handle(ctx context.Context, cmd commands.PlanBatchCommand) ([]commands.PairResult, error)
}

// SnapshotNames lists the snapshots stored in the database.
type SnapshotNames interface {
	Names(ctx context.Context) ([]string, error)
}

// PlanningJob replans stored snapshots on a cron schedule. Each snapshot is
// read and its plan written back under the same name. With no configured
// snapshots every stored snapshot is planned.
type PlanningJob struct {
	handler   BatchPlanner
	names     SnapshotNames
	snapshots []string
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPlanningJob creates the job. schedule is a cron spec with a leading
// seconds field, e.g. "0 */5 * * * *". A tick that fires while the previous
// run is still going is skipped and logged.
func NewPlanningJob(
	schedule string,
	snapshots []string,
	names SnapshotNames,
	handler BatchPlanner,
	logger *slog.Logger,
) *PlanningJob {
	return &PlanningJob{
		handler:   handler,
		names:     names,
		snapshots: append([]string(nil), snapshots...),
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger)))),
		logger:    logger.With("component", "planning_job"),
	}
}

// Start registers the schedule and starts the cron.
func (j *PlanningJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Planning job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Planning job started", "schedule", j.schedule)
	return nil
}

// RunOnce plans every target snapshot once.
func (j *PlanningJob) RunOnce(ctx context.Context) error {
	targets := j.snapshots
	if len(targets) == 0 {
		names, err := j.names.Names(ctx)
		if err != nil {
			return fmt.Errorf("list snapshots: %w", err)
		}
		targets = names
	}
	if len(targets) == 0 {
		j.logger.DebugContext(ctx, "No snapshots to plan")
		return nil
	}

	pairs := make([]commands.Pair, len(targets))
	for i, name := range targets {
		pairs[i] = commands.Pair{Input: name, Output: name}
	}

	cmd, err := commands.NewPlanBatchCommand(pairs)
	if err != nil {
		return err
	}

	results, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	j.logger.InfoContext(ctx, "Planning job finished", "snapshots", len(results))
	return nil
}

// Stop stops the cron and waits for a running tick to finish.
func (j *PlanningJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Planning job stopped")
}
