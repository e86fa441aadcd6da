package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/webhook"
)

// WebhookSettingsRepository resolves a user's notification configuration.
type WebhookSettingsRepository interface {
	// GetByUser retrieves the user's settings. A missing row resolves to
	// a typed not-found error; callers treat that as "webhooks disabled".
	GetByUser(ctx context.Context, userID kernel.UUID) (*webhook.Settings, error)
}

// WebhookDeliveryRepository persists the append-only webhook delivery log.
type WebhookDeliveryRepository interface {
	// Append records one delivery attempt.
	Append(ctx context.Context, log *webhook.DeliveryLog) error

	// Get retrieves one delivery-log row by ID.
	Get(ctx context.Context, id kernel.UUID) (*webhook.DeliveryLog, error)

	// GetFailed retrieves failed final attempts that have not been
	// redelivered yet, oldest first.
	GetFailed(ctx context.Context, limit int) ([]*webhook.DeliveryLog, error)

	// MarkRetried stamps a failed row as redelivered so the retry job
	// does not pick it up again.
	MarkRetried(ctx context.Context, id kernel.UUID) error
}
