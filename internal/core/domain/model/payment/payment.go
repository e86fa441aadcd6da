package payment

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through the NewPayment or RestorePayment factory methods.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Status is the settlement state of a payment attempt.
type Status int

const (
	StatusUnknown Status = iota

	// StatusPending means the payment is not yet fully covered; a gateway
	// leg is awaiting webhook confirmation.
	StatusPending

	// StatusCompleted means the full amount has been covered.
	// Completed payments are never mutated again except by an admin
	// status override.
	StatusCompleted

	// StatusFailed means the gateway rejected the remaining amount.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StatusFromString parses a payment status from its persisted name.
func StatusFromString(s string) (Status, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "completed":
		return StatusCompleted, nil
	case "failed":
		return StatusFailed, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid payment status", s))
	}
}

// Method identifies a funding source for one split leg.
type Method int

const (
	MethodUnknown Method = iota
	MethodWallet
	MethodPoints
	MethodGateway
)

func (m Method) String() string {
	switch m {
	case MethodWallet:
		return "wallet"
	case MethodPoints:
		return "points"
	case MethodGateway:
		return "gateway"
	default:
		return "unknown"
	}
}

// MethodFromString parses a funding method from its persisted name.
func MethodFromString(s string) (Method, error) {
	switch s {
	case "wallet":
		return MethodWallet, nil
	case "points":
		return MethodPoints, nil
	case "gateway":
		return MethodGateway, nil
	default:
		return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("method",
			fmt.Errorf("%q is not a valid payment method", s))
	}
}

// Split is one funding-source leg of a single logical payment.
type Split struct {
	ID        kernel.UUID
	PaymentID kernel.UUID
	Method    Method
	Amount    kernel.Money
}

// Payment is one settlement attempt against an order. A smart payment
// drains funding sources in a fixed priority order, producing one Split
// per source; the aggregate completes only once the legs cover the full
// amount, otherwise it stays pending on the gateway leg.
//
// Invariant: the sum of all split legs equals the payment amount once the
// gateway leg (if any) has been added.
type Payment struct {
	id        kernel.UUID
	orderID   kernel.UUID
	websiteID kernel.UUID

	amount         kernel.Money
	originalAmount kernel.Money
	discountCode   *string

	status  Status
	splits  []Split
	gateway string

	// externalID is the gateway's identifier for the pending leg.
	externalID string

	createdAt time.Time

	isConstructed bool
}

// NewPayment creates a pending payment attempt for an order.
// The amount is the discounted amount actually due; originalAmount is the
// pre-discount figure retained for reporting.
func NewPayment(
	id, orderID, websiteID kernel.UUID,
	amount, originalAmount kernel.Money,
	discountCode *string,
) (*Payment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), websiteID.Validate()); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, errs.NewValueIsRequiredError("amount")
	}

	return &Payment{
		id:             id,
		orderID:        orderID,
		websiteID:      websiteID,
		amount:         amount,
		originalAmount: originalAmount,
		discountCode:   discountCode,
		status:         StatusPending,
		createdAt:      time.Now().UTC(),
		isConstructed:  true,
	}, nil
}

// RestorePayment reconstructs a payment with its splits from persistence.
func RestorePayment(
	id, orderID, websiteID kernel.UUID,
	amount, originalAmount kernel.Money,
	discountCode *string,
	status Status,
	splits []Split,
	gateway, externalID string,
	createdAt time.Time,
) (*Payment, error) {
	p, err := NewPayment(id, orderID, websiteID, amount, originalAmount, discountCode)
	if err != nil {
		return nil, err
	}

	p.status = status
	p.splits = splits
	p.gateway = gateway
	p.externalID = externalID
	p.createdAt = createdAt
	return p, nil
}

// Validate ensures the Payment was properly constructed through a factory method.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID              { return p.id }
func (p *Payment) OrderID() kernel.UUID         { return p.orderID }
func (p *Payment) WebsiteID() kernel.UUID       { return p.websiteID }
func (p *Payment) Amount() kernel.Money         { return p.amount }
func (p *Payment) OriginalAmount() kernel.Money { return p.originalAmount }
func (p *Payment) DiscountCode() *string        { return p.discountCode }
func (p *Payment) Status() Status               { return p.status }
func (p *Payment) Splits() []Split              { return p.splits }
func (p *Payment) Gateway() string              { return p.gateway }
func (p *Payment) ExternalID() string           { return p.externalID }
func (p *Payment) CreatedAt() time.Time         { return p.createdAt }

// AddSplit appends one funding-source leg. Legs cannot be added to a
// payment that is already completed or failed.
func (p *Payment) AddSplit(method Method, amount kernel.Money) error {
	if p.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("cannot add split to %s payment", p.status))
	}
	if amount.IsZero() {
		return errs.NewValueIsRequiredError("amount")
	}
	if p.CoveredAmount().Add(amount).Decimal().GreaterThan(p.amount.Decimal()) {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("split legs would exceed payment amount %s", p.amount))
	}

	p.splits = append(p.splits, Split{
		ID:        kernel.NewUUID(),
		PaymentID: p.id,
		Method:    method,
		Amount:    amount,
	})
	return nil
}

// GatewaySplit returns the gateway funding leg, or nil when no gateway
// leg has been routed.
func (p *Payment) GatewaySplit() *Split {
	for i := range p.splits {
		if p.splits[i].Method == MethodGateway {
			return &p.splits[i]
		}
	}
	return nil
}

// CoveredAmount returns the sum of all split legs recorded so far.
func (p *Payment) CoveredAmount() kernel.Money {
	total := kernel.ZeroMoney()
	for _, s := range p.splits {
		total = total.Add(s.Amount)
	}
	return total
}

// Outstanding returns the amount not yet covered by split legs.
func (p *Payment) Outstanding() kernel.Money {
	return p.amount.SubFloorZero(p.CoveredAmount())
}

// MarkCompleted settles the payment. It fails unless the split legs cover
// the full amount, preserving the split-sum invariant.
func (p *Payment) MarkCompleted() error {
	if !p.CoveredAmount().IsEqual(p.amount) {
		return errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("legs cover %s of %s", p.CoveredAmount(), p.amount))
	}
	p.status = StatusCompleted
	return nil
}

// MarkFailed records a gateway rejection of the outstanding amount.
func (p *Payment) MarkFailed() error {
	if p.status == StatusCompleted {
		return errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("completed payment cannot fail"))
	}
	p.status = StatusFailed
	return nil
}

// RouteToGateway records the gateway leg for the outstanding amount and
// leaves the payment pending until a webhook confirms it.
func (p *Payment) RouteToGateway(gateway, externalID string) error {
	if gateway == "" {
		return errs.NewValueIsRequiredError("gateway")
	}

	outstanding := p.Outstanding()
	if outstanding.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("nothing outstanding to route"))
	}
	if err := p.AddSplit(MethodGateway, outstanding); err != nil {
		return err
	}

	p.gateway = gateway
	p.externalID = externalID
	return nil
}

// ConfirmGateway completes the payment after the gateway's webhook reports
// the pending leg settled.
func (p *Payment) ConfirmGateway() error {
	if p.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("%s payment cannot be confirmed", p.status))
	}
	return p.MarkCompleted()
}
