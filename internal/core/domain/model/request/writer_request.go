// Package request models writer-initiated change requests and order
// reassignment requests, both tied to a single order.
package request

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// ErrWriterRequestIsNotConstructed is returned when a WriterRequest was not
// created through the NewWriterRequest or RestoreWriterRequest factory methods.
var ErrWriterRequestIsNotConstructed = errors.New(
	"WriterRequest must be created via NewWriterRequest or RestoreWriterRequest")

// WriterRequestType classifies what the writer is asking for.
type WriterRequestType int

const (
	WriterRequestUnknown WriterRequestType = iota
	WriterRequestDeadlineExtension
	WriterRequestPageIncrease
	WriterRequestSlideIncrease
)

func (t WriterRequestType) String() string {
	switch t {
	case WriterRequestDeadlineExtension:
		return "deadline_extension"
	case WriterRequestPageIncrease:
		return "page_increase"
	case WriterRequestSlideIncrease:
		return "slide_increase"
	default:
		return "unknown"
	}
}

// WriterRequestTypeFromString parses a request type from its API name.
func WriterRequestTypeFromString(s string) (WriterRequestType, error) {
	switch s {
	case "deadline_extension":
		return WriterRequestDeadlineExtension, nil
	case "page_increase":
		return WriterRequestPageIncrease, nil
	case "slide_increase":
		return WriterRequestSlideIncrease, nil
	default:
		return WriterRequestUnknown, errs.NewValueIsInvalidErrorWithCause("requestType",
			fmt.Errorf("%q is not a valid writer request type", s))
	}
}

// WriterRequest is a writer-initiated change request against one order:
// a deadline extension or a page/slide increase, with an optional
// counter-offer. Approval is three-way: the client approves, an admin
// approves (or overrides), and any extra cost is flagged paid.
type WriterRequest struct {
	id       kernel.UUID
	orderID  kernel.UUID
	writerID kernel.UUID

	requestType WriterRequestType
	reason      string

	// counter-offer fields, set according to requestType
	newDeadline *time.Time
	extraUnits  int
	extraCost   kernel.Money

	clientApproved bool
	adminApproved  bool
	paid           bool
	applied        bool

	createdAt time.Time

	isConstructed bool
}

// NewWriterRequest creates a pending writer request. The reason is mandatory.
func NewWriterRequest(
	id, orderID, writerID kernel.UUID,
	requestType WriterRequestType,
	reason string,
	newDeadline *time.Time,
	extraUnits int,
	extraCost kernel.Money,
) (*WriterRequest, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), writerID.Validate()); err != nil {
		return nil, err
	}
	if requestType == WriterRequestUnknown {
		return nil, errs.NewValueIsInvalidError("requestType")
	}
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}
	if requestType == WriterRequestDeadlineExtension && newDeadline == nil {
		return nil, errs.NewValueIsRequiredError("newDeadline")
	}
	if requestType != WriterRequestDeadlineExtension && extraUnits <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("extraUnits",
			fmt.Errorf("%d is not greater than 0", extraUnits))
	}

	return &WriterRequest{
		id:            id,
		orderID:       orderID,
		writerID:      writerID,
		requestType:   requestType,
		reason:        reason,
		newDeadline:   newDeadline,
		extraUnits:    extraUnits,
		extraCost:     extraCost,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreWriterRequest reconstructs a writer request from persistence.
func RestoreWriterRequest(
	id, orderID, writerID kernel.UUID,
	requestType WriterRequestType,
	reason string,
	newDeadline *time.Time,
	extraUnits int,
	extraCost kernel.Money,
	clientApproved, adminApproved, paid, applied bool,
	createdAt time.Time,
) (*WriterRequest, error) {
	r, err := NewWriterRequest(id, orderID, writerID, requestType, reason, newDeadline, extraUnits, extraCost)
	if err != nil {
		return nil, err
	}

	r.clientApproved = clientApproved
	r.adminApproved = adminApproved
	r.paid = paid
	r.applied = applied
	r.createdAt = createdAt
	return r, nil
}

// Validate ensures the request was constructed through a factory method.
func (r *WriterRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrWriterRequestIsNotConstructed
	}
	return nil
}

func (r *WriterRequest) ID() kernel.UUID               { return r.id }
func (r *WriterRequest) OrderID() kernel.UUID          { return r.orderID }
func (r *WriterRequest) WriterID() kernel.UUID         { return r.writerID }
func (r *WriterRequest) Type() WriterRequestType       { return r.requestType }
func (r *WriterRequest) Reason() string                { return r.reason }
func (r *WriterRequest) NewDeadline() *time.Time       { return r.newDeadline }
func (r *WriterRequest) ExtraUnits() int               { return r.extraUnits }
func (r *WriterRequest) ExtraCost() kernel.Money       { return r.extraCost }
func (r *WriterRequest) ClientApproved() bool          { return r.clientApproved }
func (r *WriterRequest) AdminApproved() bool           { return r.adminApproved }
func (r *WriterRequest) Paid() bool                    { return r.paid }
func (r *WriterRequest) Applied() bool                 { return r.applied }
func (r *WriterRequest) CreatedAt() time.Time          { return r.createdAt }

// ApproveByClient records the client's response.
func (r *WriterRequest) ApproveByClient(approved bool) {
	r.clientApproved = approved
}

// ApproveByAdmin records an admin approval or override.
func (r *WriterRequest) ApproveByAdmin(approved bool) {
	r.adminApproved = approved
}

// MarkPaid flags any extra cost attached to the request as settled.
func (r *WriterRequest) MarkPaid() {
	r.paid = true
}

// MarkApplied records that the granted counter-offer has been applied to
// the order. A request is applied at most once; replayed responses must
// not re-run the size or price changes.
func (r *WriterRequest) MarkApplied() error {
	if r.applied {
		return errs.NewValueIsInvalidErrorWithCause("request",
			fmt.Errorf("request %s has already been applied", r.id))
	}
	r.applied = true
	return nil
}

// IsGranted reports whether the request has all the approvals it needs:
// client and admin approval, plus payment when extra cost applies.
func (r *WriterRequest) IsGranted() bool {
	if !r.clientApproved || !r.adminApproved {
		return false
	}
	if !r.extraCost.IsZero() && !r.paid {
		return false
	}
	return true
}
