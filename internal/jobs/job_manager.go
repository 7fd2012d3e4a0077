package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	planningJob *PlanningJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(planningJob *PlanningJob) *JobManager {
	return &JobManager{
		planningJob: planningJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.planningJob.Start(); err != nil {
		return fmt.Errorf("failed to start planning job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.planningJob.Stop()
}
