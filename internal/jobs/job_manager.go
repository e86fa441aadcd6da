package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderdesk/internal/core/application/actions"
	"orderdesk/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lateOrderJob    *LateOrderJob
	archivalJob     *OrderArchivalJob
	webhookRetryJob *WebhookRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory ports.UnitOfWorkFactory,
	dispatcher *actions.Dispatcher,
	deliveries ports.WebhookDeliveryRepository,
	redeliverer Redeliverer,
	retention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		lateOrderJob:    NewLateOrderJob(uowFactory, dispatcher, logger),
		archivalJob:     NewOrderArchivalJob(uowFactory, dispatcher, retention, logger),
		webhookRetryJob: NewWebhookRetryJob(deliveries, redeliverer, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lateOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start late order job: %w", err)
	}

	if err := jm.archivalJob.Start(); err != nil {
		jm.lateOrderJob.Stop()
		return fmt.Errorf("failed to start order archival job: %w", err)
	}

	if err := jm.webhookRetryJob.Start(); err != nil {
		jm.lateOrderJob.Stop()
		jm.archivalJob.Stop()
		return fmt.Errorf("failed to start webhook retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.webhookRetryJob.Stop()
	jm.archivalJob.Stop()
	jm.lateOrderJob.Stop()
}
