// Package jobs provides scheduled background tasks for the planner service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// PlanningJob replans stored snapshots on a schedule and appends the new plan
// to each snapshot's plan history.
//
// # Usage
//
//	job := jobs.NewPlanningJob("0 */5 * * * *", nil, store, batchHandler, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules carry a seconds field. A tick that is still running when the next
// one is due causes that next tick to be skipped.
//
// # Error Handling
//
// A failed tick is logged and the next tick runs as usual. Ticks share no state.
package jobs
