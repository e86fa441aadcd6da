package request

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// ErrReassignmentRequestIsNotConstructed is returned when a ReassignmentRequest
// was not created through a factory method.
var ErrReassignmentRequestIsNotConstructed = errors.New(
	"ReassignmentRequest must be created via NewReassignmentRequest or RestoreReassignmentRequest")

// ReassignmentStatus is the resolution state of a reassignment request.
type ReassignmentStatus int

const (
	ReassignmentUnknown ReassignmentStatus = iota
	ReassignmentPending
	ReassignmentApproved
	ReassignmentRejected
)

func (s ReassignmentStatus) String() string {
	switch s {
	case ReassignmentPending:
		return "pending"
	case ReassignmentApproved:
		return "approved"
	case ReassignmentRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ReassignmentStatusFromString parses a resolution status from its persisted name.
func ReassignmentStatusFromString(s string) (ReassignmentStatus, error) {
	switch s {
	case "pending":
		return ReassignmentPending, nil
	case "approved":
		return ReassignmentApproved, nil
	case "rejected":
		return ReassignmentRejected, nil
	default:
		return ReassignmentUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid reassignment status", s))
	}
}

// ReassignmentRequest tracks a pending request to move an order to a
// different writer. At most one pending request may exist per order;
// the repository enforces this at creation time.
type ReassignmentRequest struct {
	id          kernel.UUID
	orderID     kernel.UUID
	requesterID kernel.UUID

	reason          string
	preferredWriter *kernel.UUID
	status          ReassignmentStatus
	fine            kernel.Money

	createdAt  time.Time
	resolvedAt *time.Time

	isConstructed bool
}

// NewReassignmentRequest creates a pending reassignment request.
func NewReassignmentRequest(
	id, orderID, requesterID kernel.UUID,
	reason string,
	preferredWriter *kernel.UUID,
) (*ReassignmentRequest, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), requesterID.Validate()); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}

	return &ReassignmentRequest{
		id:              id,
		orderID:         orderID,
		requesterID:     requesterID,
		reason:          reason,
		preferredWriter: preferredWriter,
		status:          ReassignmentPending,
		createdAt:       time.Now().UTC(),
		isConstructed:   true,
	}, nil
}

// RestoreReassignmentRequest reconstructs a reassignment request from persistence.
func RestoreReassignmentRequest(
	id, orderID, requesterID kernel.UUID,
	reason string,
	preferredWriter *kernel.UUID,
	status ReassignmentStatus,
	fine kernel.Money,
	createdAt time.Time,
	resolvedAt *time.Time,
) (*ReassignmentRequest, error) {
	r, err := NewReassignmentRequest(id, orderID, requesterID, reason, preferredWriter)
	if err != nil {
		return nil, err
	}

	r.status = status
	r.fine = fine
	r.createdAt = createdAt
	r.resolvedAt = resolvedAt
	return r, nil
}

// Validate ensures the request was constructed through a factory method.
func (r *ReassignmentRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReassignmentRequestIsNotConstructed
	}
	return nil
}

func (r *ReassignmentRequest) ID() kernel.UUID               { return r.id }
func (r *ReassignmentRequest) OrderID() kernel.UUID          { return r.orderID }
func (r *ReassignmentRequest) RequesterID() kernel.UUID      { return r.requesterID }
func (r *ReassignmentRequest) Reason() string                { return r.reason }
func (r *ReassignmentRequest) PreferredWriter() *kernel.UUID { return r.preferredWriter }
func (r *ReassignmentRequest) Status() ReassignmentStatus    { return r.status }
func (r *ReassignmentRequest) Fine() kernel.Money            { return r.fine }
func (r *ReassignmentRequest) CreatedAt() time.Time          { return r.createdAt }
func (r *ReassignmentRequest) ResolvedAt() *time.Time        { return r.resolvedAt }

// Approve resolves the request positively, recording any fine applied to
// the outgoing writer.
func (r *ReassignmentRequest) Approve(fine kernel.Money, now time.Time) error {
	if r.status != ReassignmentPending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s request cannot be approved", r.status))
	}

	r.status = ReassignmentApproved
	r.fine = fine
	r.resolvedAt = &now
	return nil
}

// Reject resolves the request negatively.
func (r *ReassignmentRequest) Reject(now time.Time) error {
	if r.status != ReassignmentPending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s request cannot be rejected", r.status))
	}

	r.status = ReassignmentRejected
	r.resolvedAt = &now
	return nil
}
