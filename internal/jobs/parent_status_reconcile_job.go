package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the sweep every thirty seconds.
const DefaultReconcileSchedule = "*/30 * * * * *"

type ReconcileParentOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ReconcileParentOrdersCommand) (int, error)
}

// ParentStatusReconcileJob periodically recomputes the derived status of
// parent orders that are not settled yet, so a missed recompute after a
// sub-order transition is eventually repaired.
type ParentStatusReconcileJob struct {
	handler   ReconcileParentOrdersHandler
	schedule  string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewParentStatusReconcileJob(
	handler ReconcileParentOrdersHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *ParentStatusReconcileJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &ParentStatusReconcileJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   20 * time.Second,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "parent_status_reconcile_job"),
	}
}

// Run performs one sweep. It implements cron.Job.
func (j *ParentStatusReconcileJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cmd, err := commands.NewReconcileParentOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Parent status reconcile job misconfigured", "error", err)
		return
	}

	changed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Parent status reconcile job failed", "error", err)
		return
	}
	if changed > 0 {
		j.logger.InfoContext(ctx, "Parent order statuses repaired", "changed", changed)
	}
}

func (j *ParentStatusReconcileJob) Start() error {
	if _, err := j.cron.AddJob(j.schedule, j); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Parent status reconcile job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *ParentStatusReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Parent status reconcile job stopped")
}
