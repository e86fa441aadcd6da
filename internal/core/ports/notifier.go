package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
)

// NotificationActor identifies who triggered a notified event.
type NotificationActor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Notification is the platform-neutral outbound webhook payload. The
// notify adapter reshapes it into Slack attachments or Discord embeds
// depending on the recipient's configured platform.
type Notification struct {
	Event          string            `json:"event"`
	OrderID        string            `json:"order_id"`
	OrderTitle     string            `json:"order_title"`
	Status         string            `json:"status"`
	TriggeredBy    NotificationActor `json:"triggered_by"`
	MessagePreview string            `json:"message_preview"`
	TestMode       bool              `json:"test_mode"`
}

// Notifier delivers order-event notifications to user-configured webhook
// endpoints. Delivery is fire-and-forget from the caller's point of view:
// the triggering transaction never waits on, or fails with, a delivery.
type Notifier interface {
	// Notify delivers the event to the given user's webhook, if the user
	// has webhooks enabled and is subscribed to the event. A skipped
	// delivery produces no HTTP call and no delivery-log row.
	Notify(ctx context.Context, userID kernel.UUID, n Notification)
}
