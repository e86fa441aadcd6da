package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/webhook"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

const (
	clientTimeout   = 5 * time.Second
	backoffBase     = 500 * time.Millisecond
	backoffCap      = 5 * time.Second
	maxResponseSize = 4 << 10
)

// WebhookNotifier implements the Notifier port. A notification resolves
// the recipient's settings, and when the user is subscribed the delivery
// runs in the background with retries; every attempt lands in the
// delivery log.
type WebhookNotifier struct {
	settings   ports.WebhookSettingsRepository
	deliveries ports.WebhookDeliveryRepository
	client     *http.Client
	logger     *slog.Logger

	wg sync.WaitGroup
}

// NewWebhookNotifier creates a webhook notifier.
func NewWebhookNotifier(
	settings ports.WebhookSettingsRepository,
	deliveries ports.WebhookDeliveryRepository,
	logger *slog.Logger,
) (*WebhookNotifier, error) {
	if settings == nil {
		return nil, errs.NewValueIsRequiredError("settings")
	}
	if deliveries == nil {
		return nil, errs.NewValueIsRequiredError("deliveries")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &WebhookNotifier{
		settings:   settings,
		deliveries: deliveries,
		client:     &http.Client{Timeout: clientTimeout},
		logger:     logger.With("component", "webhook_notifier"),
	}, nil
}

// Notify delivers the event to the user's webhook. Disabled users and
// unsubscribed events are skipped entirely: no HTTP call, no log row.
// Delivery runs in the background; the caller never waits on it.
func (w *WebhookNotifier) Notify(ctx context.Context, userID kernel.UUID, n ports.Notification) {
	settings, err := w.settings.GetByUser(ctx, userID)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			w.logger.WarnContext(ctx, "webhook settings lookup failed",
				"user_id", userID.String(), "error", err)
		}
		return
	}

	if !settings.Subscribed(n.Event) {
		return
	}

	n.TestMode = settings.TestMode
	payload, err := BuildPayload(settings.Platform, n)
	if err != nil {
		w.logger.WarnContext(ctx, "webhook payload rejected",
			"user_id", userID.String(), "platform", settings.Platform.String(), "error", err)
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.deliver(context.WithoutCancel(ctx), userID, n.Event, settings.URL, payload)
	}()
}

// Wait blocks until all in-flight deliveries finish. Called on shutdown.
func (w *WebhookNotifier) Wait() {
	w.wg.Wait()
}

// Redeliver re-sends the payload of a previously failed delivery-log row
// and stamps the source row so the retry job skips it afterwards.
func (w *WebhookNotifier) Redeliver(ctx context.Context, logID kernel.UUID) error {
	log, err := w.deliveries.Get(ctx, logID)
	if err != nil {
		return err
	}

	if err := w.deliveries.MarkRetried(ctx, logID); err != nil {
		return err
	}

	w.deliver(ctx, log.UserID, log.Event, log.URL, log.Payload)
	return nil
}

func (w *WebhookNotifier) deliver(ctx context.Context, userID kernel.UUID, event, url string, payload []byte) {
	for attempt := 1; attempt <= webhook.MaxAttempts; attempt++ {
		statusCode, response, err := w.post(ctx, url, payload)

		succeeded := err == nil && statusCode >= 200 && statusCode < 300
		if err != nil {
			response = err.Error()
		}

		w.appendLog(ctx, userID, event, url, payload, attempt, statusCode, response, succeeded)

		if succeeded {
			return
		}

		if attempt < webhook.MaxAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff(attempt)):
			}
		}
	}

	w.logger.WarnContext(ctx, "webhook delivery exhausted",
		"user_id", userID.String(), "event", event, "attempts", webhook.MaxAttempts)
}

func (w *WebhookNotifier) post(ctx context.Context, url string, payload []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	return resp.StatusCode, string(body), nil
}

func (w *WebhookNotifier) appendLog(
	ctx context.Context,
	userID kernel.UUID,
	event, url string,
	payload []byte,
	attempt, statusCode int,
	response string,
	succeeded bool,
) {
	log, err := webhook.NewDeliveryLog(userID, event, url, payload, attempt)
	if err != nil {
		w.logger.WarnContext(ctx, "delivery log rejected",
			"user_id", userID.String(), "event", event, "error", err)
		return
	}

	log.RecordOutcome(statusCode, response, succeeded)
	if err := w.deliveries.Append(ctx, log); err != nil {
		w.logger.WarnContext(ctx, "delivery log write failed",
			"user_id", userID.String(), "event", event, "error", err)
	}
}

func backoff(attempt int) time.Duration {
	d := backoffBase << (attempt - 1)
	if d > backoffCap {
		return backoffCap
	}
	return d
}
