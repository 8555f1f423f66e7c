package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconcileJob *ParentStatusReconcileJob
}

// NewJobManager wires the scheduled jobs to their command handlers.
func NewJobManager(
	reconcileHandler ReconcileParentOrdersHandler,
	reconcileSchedule string,
	reconcileBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reconcileJob: NewParentStatusReconcileJob(reconcileHandler, reconcileSchedule, reconcileBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.reconcileJob.Start(); err != nil {
		return fmt.Errorf("failed to start parent status reconcile job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconcileJob.Stop()
}
