package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

// ErrSettlePaymentCommandIsNotConstructed is returned when a
// SettlePaymentCommand was not created via its constructor.
var ErrSettlePaymentCommandIsNotConstructed = errors.New(
	"SettlePaymentCommand must be created via NewSettlePaymentCommand constructor")

// SettlePaymentCommand represents a request to settle an order's total
// through the smart payment split: wallet first, then loyalty points, with
// any remainder routed to the named gateway.
type SettlePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	payerID kernel.UUID
	gateway string

	guard guard.ConstructorGuard
}

// NewSettlePaymentCommand creates a validated settlement command. The
// gateway names where an uncovered remainder will be routed.
func NewSettlePaymentCommand(orderID, payerID kernel.UUID, gateway string) (SettlePaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), payerID.Validate()); err != nil {
		return SettlePaymentCommand{}, err
	}

	return SettlePaymentCommand{
		orderID: orderID,
		payerID: payerID,
		gateway: gateway,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SettlePaymentCommand) Validate() error {
	return c.guard.Validate(ErrSettlePaymentCommandIsNotConstructed)
}

func (c SettlePaymentCommand) OrderID() kernel.UUID { return c.orderID }
func (c SettlePaymentCommand) PayerID() kernel.UUID { return c.payerID }
func (c SettlePaymentCommand) Gateway() string      { return c.gateway }
