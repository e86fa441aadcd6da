package order

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created through
// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the central aggregate of the marketplace: one piece of
// commissioned writing work, scoped to a website (tenant).
//
// Order follows these invariants:
//   - Must have valid identifiers for itself, its website and its client
//   - Must have a non-empty title and at least one page or slide
//   - Status always belongs to the enumerated set and changes only through
//     the action transition table
//   - Can only be created through NewOrder or rehydrated through RestoreOrder
//
// Orders are never hard-deleted; Archive is the terminal operation.
// All mutation goes through the named action methods below, each of which
// consults the transition table before touching any field.
type Order struct {
	id        kernel.UUID
	websiteID kernel.UUID
	clientID  kernel.UUID

	// writerID is the assigned writer (nil while unassigned).
	writerID *kernel.UUID

	// preferredWriterID is the writer the client asked for, if any.
	preferredWriterID *kernel.UUID

	title  string
	pages  int
	slides int

	status Status

	basePrice          kernel.Money
	totalPrice         kernel.Money
	writerCompensation kernel.Money

	deadline    time.Time
	completedAt *time.Time

	isUrgent        bool
	isCritical      bool
	isLate          bool
	requiresEditing bool

	// discountCode is the attached discount, if any.
	discountCode *string

	isConstructed bool
}

// NewOrder creates a new Order in StatusCreated with validation.
// This is the only way to create a fresh order; persistence rehydration
// goes through RestoreOrder.
func NewOrder(
	id, websiteID, clientID kernel.UUID,
	title string,
	pages, slides int,
	deadline time.Time,
	preferredWriterID *kernel.UUID,
) (*Order, error) {
	o := &Order{
		status:            StatusCreated,
		preferredWriterID: preferredWriterID,
		deadline:          deadline,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setWebsiteID(websiteID),
		o.setClientID(clientID),
		o.setTitle(title),
		o.setSize(pages, slides),
	); err != nil {
		return nil, err
	}

	if preferredWriterID != nil {
		if err := preferredWriterID.Validate(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without replaying its
// lifecycle. The stored status is trusted but still validated for set
// membership; field invariants are revalidated the same way NewOrder does.
func RestoreOrder(
	id, websiteID, clientID kernel.UUID,
	title string,
	pages, slides int,
	status Status,
	writerID, preferredWriterID *kernel.UUID,
	basePrice, totalPrice, writerCompensation kernel.Money,
	deadline time.Time,
	completedAt *time.Time,
	isUrgent, isCritical, isLate, requiresEditing bool,
	discountCode *string,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(id, websiteID, clientID, title, pages, slides, deadline, preferredWriterID)
	if err != nil {
		return nil, err
	}

	o.status = status
	o.writerID = writerID
	o.basePrice = basePrice
	o.totalPrice = totalPrice
	o.writerCompensation = writerCompensation
	o.completedAt = completedAt
	o.isUrgent = isUrgent
	o.isCritical = isCritical
	o.isLate = isLate
	o.requiresEditing = requiresEditing
	o.discountCode = discountCode
	return o, nil
}

// Validate ensures the Order instance was properly constructed through
// a factory method. Called when reconstructing orders from persistence
// and before persisting changes.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID             { return o.id }
func (o *Order) WebsiteID() kernel.UUID      { return o.websiteID }
func (o *Order) ClientID() kernel.UUID       { return o.clientID }
func (o *Order) Writer() *kernel.UUID        { return o.writerID }
func (o *Order) PreferredWriter() *kernel.UUID { return o.preferredWriterID }
func (o *Order) Title() string               { return o.title }
func (o *Order) Pages() int                  { return o.pages }
func (o *Order) Slides() int                 { return o.slides }
func (o *Order) Status() Status              { return o.status }
func (o *Order) BasePrice() kernel.Money     { return o.basePrice }
func (o *Order) TotalPrice() kernel.Money    { return o.totalPrice }
func (o *Order) WriterCompensation() kernel.Money { return o.writerCompensation }
func (o *Order) Deadline() time.Time         { return o.deadline }
func (o *Order) CompletedAt() *time.Time     { return o.completedAt }
func (o *Order) IsUrgent() bool              { return o.isUrgent }
func (o *Order) IsCritical() bool            { return o.isCritical }
func (o *Order) IsLate() bool                { return o.isLate }
func (o *Order) RequiresEditing() bool       { return o.requiresEditing }
func (o *Order) DiscountCode() *string       { return o.discountCode }

// MarkPaid moves a created or unpaid order to pending once its invoice
// has been settled.
func (o *Order) MarkPaid() error {
	newStatus, err := o.status.Transition(ActionMarkPaid)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Publish releases a pending order to writers. An order with a preferred
// writer is first reserved for that writer (pending_preferred); otherwise
// it becomes available to the whole pool.
func (o *Order) Publish() error {
	target := StatusAvailable
	if o.preferredWriterID != nil {
		target = StatusPendingPreferred
	}

	newStatus, err := o.status.TransitionTo(ActionPublish, target)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Assign assigns the order to a writer.
func (o *Order) Assign(writerID kernel.UUID) error {
	if err := writerID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Transition(ActionAssign)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.writerID = &writerID
	return nil
}

// Reassign moves the order to a different writer. The lateness flag is
// cleared: the new writer starts with a clean slate against the deadline.
func (o *Order) Reassign(writerID kernel.UUID) error {
	if err := writerID.Validate(); err != nil {
		return err
	}
	if o.writerID != nil && o.writerID.IsEqual(writerID) {
		return errs.NewValueIsInvalidErrorWithCause("writerId",
			fmt.Errorf("order is already assigned to writer %s", writerID))
	}

	newStatus, err := o.status.Transition(ActionReassign)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.writerID = &writerID
	o.isLate = false
	return nil
}

// Cancel cancels the order.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Transition(ActionCancel)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Hold pauses the order.
func (o *Order) Hold() error {
	newStatus, err := o.status.Transition(ActionHold)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Resume lifts a hold and returns the order to pending.
func (o *Order) Resume() error {
	newStatus, err := o.status.Transition(ActionResume)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkCritical escalates the order for priority assignment.
func (o *Order) MarkCritical() error {
	newStatus, err := o.status.Transition(ActionMarkCritical)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.isCritical = true
	return nil
}

// MarkLate flags an assigned order whose deadline has passed.
func (o *Order) MarkLate() error {
	newStatus, err := o.status.Transition(ActionMarkLate)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.isLate = true
	return nil
}

// Submit records the writer handing in the work.
func (o *Order) Submit() error {
	newStatus, err := o.status.Transition(ActionSubmit)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// SendForEditing routes a submission to an editor.
func (o *Order) SendForEditing() error {
	newStatus, err := o.status.Transition(ActionSendForEditing)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.requiresEditing = true
	return nil
}

// SendForReview routes a submission to quality control.
func (o *Order) SendForReview() error {
	newStatus, err := o.status.Transition(ActionSendForReview)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Complete delivers the order to the client. The completion time starts
// the revision window.
func (o *Order) Complete(now time.Time) error {
	newStatus, err := o.status.Transition(ActionComplete)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.completedAt = &now
	return nil
}

// RequestRevision opens a client revision request. The revision window
// check happens in the revision policy service before this is called.
func (o *Order) RequestRevision() error {
	newStatus, err := o.status.Transition(ActionRequestRevision)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// ProcessRevision records the writer finishing the requested rework.
// The revision window restarts from the new completion time.
func (o *Order) ProcessRevision(now time.Time) error {
	newStatus, err := o.status.Transition(ActionProcessRevision)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.completedAt = &now
	return nil
}

// DenyRevision rejects an open revision request and returns the order to
// completed without applying the revision. The original completion time,
// and with it the original revision window, is preserved.
func (o *Order) DenyRevision() error {
	newStatus, err := o.status.Transition(ActionDenyRevision)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// OpenDispute puts the order under dispute.
func (o *Order) OpenDispute() error {
	newStatus, err := o.status.Transition(ActionOpenDispute)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// ResolveDispute closes a dispute. The resolution either upholds the
// delivery (completed) or reopens the order for a fresh assignment.
func (o *Order) ResolveDispute(target Status) error {
	newStatus, err := o.status.TransitionTo(ActionResolveDispute, target)
	if err != nil {
		return err
	}
	o.status = newStatus
	if newStatus == StatusReOpened {
		o.writerID = nil
		o.isLate = false
	}
	return nil
}

// Approve records client acceptance of a completed order.
func (o *Order) Approve() error {
	newStatus, err := o.status.Transition(ActionApprove)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Rate records a client rating on an approved order.
func (o *Order) Rate() error {
	newStatus, err := o.status.Transition(ActionRate)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Review records a written client review on a rated order.
func (o *Order) Review() error {
	newStatus, err := o.status.Transition(ActionReview)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Archive soft-archives the order. Terminal; orders are never deleted.
func (o *Order) Archive() error {
	newStatus, err := o.status.Transition(ActionArchive)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Expire marks an order that was never paid in time.
func (o *Order) Expire() error {
	newStatus, err := o.status.Transition(ActionExpire)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Reopen puts a cancelled or expired order back into circulation.
func (o *Order) Reopen() error {
	newStatus, err := o.status.Transition(ActionReopen)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.writerID = nil
	o.isLate = false
	return nil
}

// SetUrgency toggles the urgency flag on a not-yet-delivered order.
func (o *Order) SetUrgency(urgent bool) error {
	if !o.status.Allows(ActionSetUrgency) {
		return errs.NewTransitionNotAllowedError(ActionSetUrgency.String(), o.status.String())
	}
	o.isUrgent = urgent
	return nil
}

// SetPricing records a computed price breakdown on the order.
func (o *Order) SetPricing(basePrice, totalPrice, writerCompensation kernel.Money) {
	o.basePrice = basePrice
	o.totalPrice = totalPrice
	o.writerCompensation = writerCompensation
}

// ExtendDeadline moves the deadline forward, applying a granted
// deadline-extension request. Extending clears lateness.
func (o *Order) ExtendDeadline(newDeadline time.Time) error {
	if !newDeadline.After(o.deadline) {
		return errs.NewValueIsInvalidErrorWithCause("newDeadline",
			fmt.Errorf("%s is not after the current deadline", newDeadline.Format(time.RFC3339)))
	}
	o.deadline = newDeadline
	o.isLate = false
	return nil
}

// IncreaseSize adds pages or slides, applying a granted increase request.
func (o *Order) IncreaseSize(extraPages, extraSlides int) error {
	if extraPages < 0 || extraSlides < 0 {
		return errs.NewValueIsInvalidErrorWithCause("extraUnits",
			fmt.Errorf("size increase cannot be negative"))
	}
	if extraPages == 0 && extraSlides == 0 {
		return errs.NewValueIsInvalidErrorWithCause("extraUnits",
			fmt.Errorf("size increase must add at least one unit"))
	}
	o.pages += extraPages
	o.slides += extraSlides
	return nil
}

// SetDiscountCode attaches a discount code to the order.
func (o *Order) SetDiscountCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("discountCode")
	}
	o.discountCode = &code
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setWebsiteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.websiteID = id
	return nil
}

func (o *Order) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.clientID = id
	return nil
}

func (o *Order) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	o.title = title
	return nil
}

func (o *Order) setSize(pages, slides int) error {
	if pages < 0 {
		return errs.NewValueIsInvalidErrorWithCause("pages",
			fmt.Errorf("%d is negative", pages))
	}
	if slides < 0 {
		return errs.NewValueIsInvalidErrorWithCause("slides",
			fmt.Errorf("%d is negative", slides))
	}
	if pages == 0 && slides == 0 {
		return errs.NewValueIsInvalidErrorWithCause("pages",
			fmt.Errorf("order must have at least one page or slide"))
	}
	o.pages = pages
	o.slides = slides
	return nil
}
