package services

import (
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// DefaultRevisionWindowDays is the fallback revision window applied when a
// website has no revision policy configured.
const DefaultRevisionWindowDays = 14

// RevisionPolicy decides whether a client may still request a revision:
// only completed orders qualify, and only while the revision window,
// counted from the completion time, is still open.
type RevisionPolicy struct {
	windowDays int
}

// NewRevisionPolicy creates a policy with the website's configured window.
// A non-positive value falls back to DefaultRevisionWindowDays.
func NewRevisionPolicy(windowDays int) RevisionPolicy {
	if windowDays <= 0 {
		windowDays = DefaultRevisionWindowDays
	}
	return RevisionPolicy{windowDays: windowDays}
}

// WindowDays returns the effective window length in days.
func (p RevisionPolicy) WindowDays() int {
	return p.windowDays
}

// Deadline returns the last instant a revision may be requested for an
// order completed at the given time.
func (p RevisionPolicy) Deadline(completedAt time.Time) time.Time {
	return completedAt.Add(time.Duration(p.windowDays) * 24 * time.Hour)
}

// CanRequestRevision checks the revision window for the order at the given
// time. An order outside the window fails with a transition error carrying
// the window deadline.
func (p RevisionPolicy) CanRequestRevision(o *order.Order, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Status() != order.StatusCompleted || o.CompletedAt() == nil {
		return errs.NewTransitionNotAllowedError(
			order.ActionRequestRevision.String(), o.Status().String())
	}

	deadline := p.Deadline(*o.CompletedAt())
	if now.After(deadline) {
		return errs.NewTransitionNotAllowedErrorWithCause(
			order.ActionRequestRevision.String(), o.Status().String(),
			fmt.Errorf("revision window closed at %s", deadline.Format(time.RFC3339)))
	}
	return nil
}
