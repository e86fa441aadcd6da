// Package webhook models per-user outbound notification settings and the
// append-only delivery log that records every delivery attempt.
package webhook

import (
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// MaxAttempts is how many times the sender tries one delivery before
// giving up and leaving the final failed attempt to the retry job.
const MaxAttempts = 3

// Platform selects the payload shape for a user's webhook endpoint.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformSlack
	PlatformDiscord
	PlatformGeneric
)

func (p Platform) String() string {
	switch p {
	case PlatformSlack:
		return "slack"
	case PlatformDiscord:
		return "discord"
	case PlatformGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// PlatformFromString parses a platform from its persisted name.
func PlatformFromString(s string) (Platform, error) {
	switch s {
	case "slack":
		return PlatformSlack, nil
	case "discord":
		return PlatformDiscord, nil
	case "generic":
		return PlatformGeneric, nil
	default:
		return PlatformUnknown, errs.NewValueIsInvalidErrorWithCause("platform",
			fmt.Errorf("%q is not a valid webhook platform", s))
	}
}

// Settings is one user's notification configuration. A user with no row,
// a disabled flag, or an unsubscribed event receives nothing: no HTTP
// call and no delivery-log row.
type Settings struct {
	UserID   kernel.UUID
	Enabled  bool
	Platform Platform
	URL      string
	Events   []string
	TestMode bool
}

// Subscribed reports whether the user receives the given event. An empty
// event list means every event.
func (s *Settings) Subscribed(event string) bool {
	if !s.Enabled || s.URL == "" {
		return false
	}
	if len(s.Events) == 0 {
		return true
	}

	for _, e := range s.Events {
		if e == event {
			return true
		}
	}
	return false
}

// DeliveryLog is one delivery attempt against a user's webhook endpoint.
// Rows are appended per attempt and never rewritten; a redelivery creates
// new rows and stamps the source row's RetriedAt.
type DeliveryLog struct {
	ID         kernel.UUID
	UserID     kernel.UUID
	Event      string
	URL        string
	Payload    []byte
	Attempt    int
	StatusCode int
	Response   string
	Succeeded  bool
	RetriedAt  *time.Time
	CreatedAt  time.Time
}

// NewDeliveryLog records one attempt's outcome.
func NewDeliveryLog(userID kernel.UUID, event, url string, payload []byte, attempt int) (*DeliveryLog, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if event == "" {
		return nil, errs.NewValueIsRequiredError("event")
	}
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	if attempt < 1 {
		return nil, errs.NewValueIsOutOfRangeError("attempt", attempt, 1, "unbounded")
	}

	return &DeliveryLog{
		ID:        kernel.NewUUID(),
		UserID:    userID,
		Event:     event,
		URL:       url,
		Payload:   payload,
		Attempt:   attempt,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// RecordOutcome stamps the HTTP result of this attempt.
func (l *DeliveryLog) RecordOutcome(statusCode int, response string, succeeded bool) {
	l.StatusCode = statusCode
	l.Response = response
	l.Succeeded = succeeded
}
