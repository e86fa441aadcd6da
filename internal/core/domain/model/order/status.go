package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition table: every
// mutation of an order happens through a named Action, and an action is
// only legal from the statuses the table lists for it.
//
// Simplified happy path:
//
//	created ──> pending ──> available ──> assigned ──> submitted ──> completed
//	                                                                    │
//	                                          approved <── (approve) ───┤
//	                                              │                     │
//	                                          rated ──> reviewed    revision
//	                                              │                     │
//	                                          archived <────────────────┘
//
// Side branches cover holds, cancellation, disputes, lateness, editing and
// expiry. Status is a value object that validates state membership and
// provides string representations for persistence and the API.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCreated is the initial status assigned by the creation service.
	StatusCreated

	// StatusUnpaid marks an order with an issued but unsettled invoice.
	StatusUnpaid

	// StatusPending marks a paid order awaiting publication to writers.
	StatusPending

	// StatusOnHold marks an order paused by the client or an admin.
	StatusOnHold

	// StatusAvailable marks an order visible to the writer pool.
	StatusAvailable

	// StatusPendingPreferred marks an order reserved for the client's
	// preferred writer before it is released to the general pool.
	StatusPendingPreferred

	// StatusCritical marks an order escalated for priority assignment.
	StatusCritical

	// StatusAssigned marks an order being worked on by a writer.
	StatusAssigned

	// StatusLate marks an assigned order past its deadline.
	StatusLate

	// StatusRevision marks an order with an open client revision request.
	StatusRevision

	// StatusDisputed marks an order under an open dispute.
	StatusDisputed

	// StatusCompleted marks an order delivered to the client.
	// The revision window runs from the moment this status is reached.
	StatusCompleted

	// StatusApproved marks a completed order accepted by the client.
	StatusApproved

	// StatusCancelled marks an order cancelled before completion.
	StatusCancelled

	// StatusArchived marks a soft-archived order. Terminal.
	StatusArchived

	// StatusExpired marks an order that was never paid or assigned in time.
	StatusExpired

	// StatusUnderReview marks a submission being checked by quality control.
	StatusUnderReview

	// StatusReOpened marks a cancelled, expired or disputed order put back
	// into circulation.
	StatusReOpened

	// StatusRated marks an approved order the client has rated.
	StatusRated

	// StatusReviewed marks a rated order with a written review.
	StatusReviewed

	// StatusSubmitted marks work handed in by the writer, pending delivery.
	StatusSubmitted

	// StatusUnderEditing marks a submission sent to an editor.
	StatusUnderEditing
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:          "unknown",
		StatusCreated:          "created",
		StatusUnpaid:           "unpaid",
		StatusPending:          "pending",
		StatusOnHold:           "on_hold",
		StatusAvailable:        "available",
		StatusPendingPreferred: "pending_preferred",
		StatusCritical:         "critical",
		StatusAssigned:         "assigned",
		StatusLate:             "late",
		StatusRevision:         "revision",
		StatusDisputed:         "disputed",
		StatusCompleted:        "completed",
		StatusApproved:         "approved",
		StatusCancelled:        "cancelled",
		StatusArchived:         "archived",
		StatusExpired:          "expired",
		StatusUnderReview:      "under_review",
		StatusReOpened:         "re_opened",
		StatusRated:            "rated",
		StatusReviewed:         "reviewed",
		StatusSubmitted:        "submitted",
		StatusUnderEditing:     "under_editing",
	}
}

// Validate checks if the Status value belongs to the enumerated set.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status as used in the API,
// persistence and audit records. Implements fmt.Stringer and is safe to
// call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a status name back into the closed enum.
// Used when rehydrating orders from persistence.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}
