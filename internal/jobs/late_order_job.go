// Package jobs provides the scheduled background tasks: marking assigned
// orders late, archiving closed orders past retention, and redelivering
// failed webhooks. Jobs run on github.com/robfig/cron/v3 schedules and
// route order mutations through the action dispatcher so every change
// carries an audit entry.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderdesk/internal/core/application/actions"
	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// systemActor attributes job-driven mutations in the audit trail.
func systemActor() audit.Actor {
	return audit.Actor{
		ID:   kernel.NewUUID(),
		Name: "scheduler",
		Role: "system",
	}
}

// LateOrderJob flags assigned orders past their deadline. Runs every
// minute; each late order goes through the dispatcher so the status flip
// is audited like any admin action.
type LateOrderJob struct {
	uowFactory ports.UnitOfWorkFactory
	dispatcher *actions.Dispatcher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewLateOrderJob creates a new job for marking overdue orders late.
func NewLateOrderJob(uowFactory ports.UnitOfWorkFactory, dispatcher *actions.Dispatcher, logger *slog.Logger) *LateOrderJob {
	return &LateOrderJob{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		cron:       cron.New(),
		logger:     logger.With("component", "late_order_job"),
	}
}

// Start begins the job, running every minute.
func (j *LateOrderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "late order job started (running every minute)")
	return nil
}

// Run executes one sweep. Exposed so tests drive it without the schedule.
func (j *LateOrderJob) Run(ctx context.Context) {
	overdue, err := j.uowFactory.Create().OrderRepository().
		GetAssignedPastDeadline(ctx, time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "overdue order sweep failed", "error", err)
		return
	}

	actor := systemActor()
	for _, o := range overdue {
		_, err := j.dispatcher.Dispatch(ctx, order.ActionMarkLate, actions.Request{
			OrderID: o.ID(),
			Actor:   actor,
		})
		if err != nil {
			j.logger.WarnContext(ctx, "failed to mark order late",
				"order_id", o.ID().String(), "error", err)
		}
	}
}

// Stop stops the job.
func (j *LateOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "late order job stopped")
}
