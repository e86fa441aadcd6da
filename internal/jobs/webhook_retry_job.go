package jobs

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const retryBatchSize = 50

// Redeliverer re-sends a failed webhook delivery by log id.
type Redeliverer interface {
	Redeliver(ctx context.Context, logID kernel.UUID) error
}

// WebhookRetryJob re-sends webhook deliveries whose final attempt failed.
// Runs every five minutes over a bounded batch of unretried failures.
type WebhookRetryJob struct {
	deliveries  ports.WebhookDeliveryRepository
	redeliverer Redeliverer
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewWebhookRetryJob creates a new webhook retry job.
func NewWebhookRetryJob(
	deliveries ports.WebhookDeliveryRepository,
	redeliverer Redeliverer,
	logger *slog.Logger,
) *WebhookRetryJob {
	return &WebhookRetryJob{
		deliveries:  deliveries,
		redeliverer: redeliverer,
		cron:        cron.New(),
		logger:      logger.With("component", "webhook_retry_job"),
	}
}

// Start begins the job, running every five minutes.
func (j *WebhookRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "webhook retry job started (running every five minutes)")
	return nil
}

// Run executes one sweep. Exposed so tests drive it without the schedule.
func (j *WebhookRetryJob) Run(ctx context.Context) {
	failed, err := j.deliveries.GetFailed(ctx, retryBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "failed delivery sweep failed", "error", err)
		return
	}

	for _, log := range failed {
		if err := j.redeliverer.Redeliver(ctx, log.ID); err != nil {
			j.logger.WarnContext(ctx, "webhook redelivery failed",
				"delivery_id", log.ID.String(), "error", err)
		}
	}
}

// Stop stops the job.
func (j *WebhookRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "webhook retry job stopped")
}
