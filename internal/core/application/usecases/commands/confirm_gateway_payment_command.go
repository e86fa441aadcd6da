package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

// ErrConfirmGatewayPaymentCommandIsNotConstructed is returned when a
// ConfirmGatewayPaymentCommand was not created via its constructor.
var ErrConfirmGatewayPaymentCommandIsNotConstructed = errors.New(
	"ConfirmGatewayPaymentCommand must be created via NewConfirmGatewayPaymentCommand constructor")

// ConfirmGatewayPaymentCommand represents an inbound gateway webhook
// reporting the outcome of a pending gateway leg.
type ConfirmGatewayPaymentCommand struct { //nolint:recvcheck //using for validation
	externalID string
	succeeded  bool

	// amount is the gateway-reported figure, checked against the pending
	// leg when present.
	amount *kernel.Money

	guard guard.ConstructorGuard
}

// NewConfirmGatewayPaymentCommand creates a validated confirmation command.
func NewConfirmGatewayPaymentCommand(externalID string, succeeded bool, amount *kernel.Money) (ConfirmGatewayPaymentCommand, error) {
	if externalID == "" {
		return ConfirmGatewayPaymentCommand{}, errs.NewValueIsRequiredError("externalId")
	}

	return ConfirmGatewayPaymentCommand{
		externalID: externalID,
		succeeded:  succeeded,
		amount:     amount,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmGatewayPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmGatewayPaymentCommandIsNotConstructed)
}

func (c ConfirmGatewayPaymentCommand) ExternalID() string    { return c.externalID }
func (c ConfirmGatewayPaymentCommand) Succeeded() bool       { return c.succeeded }
func (c ConfirmGatewayPaymentCommand) Amount() *kernel.Money { return c.amount }
