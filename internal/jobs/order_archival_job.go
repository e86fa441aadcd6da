package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderdesk/internal/core/application/actions"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultRetention is how long a closed order stays visible before the
// archival sweep picks it up.
const DefaultRetention = 30 * 24 * time.Hour

// OrderArchivalJob archives approved, rated and reviewed orders whose
// completion is older than the retention window. Runs hourly.
type OrderArchivalJob struct {
	uowFactory ports.UnitOfWorkFactory
	dispatcher *actions.Dispatcher
	retention  time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOrderArchivalJob creates a new archival job. A non-positive retention
// falls back to DefaultRetention.
func NewOrderArchivalJob(
	uowFactory ports.UnitOfWorkFactory,
	dispatcher *actions.Dispatcher,
	retention time.Duration,
	logger *slog.Logger,
) *OrderArchivalJob {
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &OrderArchivalJob{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		retention:  retention,
		cron:       cron.New(),
		logger:     logger.With("component", "order_archival_job"),
	}
}

// Start begins the job, running hourly.
func (j *OrderArchivalJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "order archival job started (running hourly)")
	return nil
}

// Run executes one sweep. Exposed so tests drive it without the schedule.
func (j *OrderArchivalJob) Run(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-j.retention)
	archivable, err := j.uowFactory.Create().OrderRepository().GetArchivable(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "archivable order sweep failed", "error", err)
		return
	}

	actor := systemActor()
	for _, o := range archivable {
		_, err := j.dispatcher.Dispatch(ctx, order.ActionArchive, actions.Request{
			OrderID: o.ID(),
			Actor:   actor,
		})
		if err != nil {
			j.logger.WarnContext(ctx, "failed to archive order",
				"order_id", o.ID().String(), "error", err)
		}
	}
}

// Stop stops the job.
func (j *OrderArchivalJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "order archival job stopped")
}
