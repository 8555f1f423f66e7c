// Package jobs provides scheduled background tasks for the fulfillment
// service, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// ParentStatusReconcileJob sweeps parent orders that are not settled yet and
// recomputes their derived status from the sub-orders. Status is normally
// recomputed inside the transaction that moves a sub-order, so the sweep only
// repairs orders where that step was missed.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, "*/30 * * * * *", 100, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Schedules use the six field cron format with seconds. Overlapping runs are
// skipped.
package jobs
