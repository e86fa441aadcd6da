package commands

import (
	"context"
	"fmt"

	"orderdesk/internal/core/domain/model/payment"
	"orderdesk/internal/pkg/errs"
)

// ConfirmGatewayPaymentCommandHandler applies a gateway webhook to the
// pending payment it references. A success confirmation completes the
// payment and marks the order paid; a failure marks the payment failed and
// leaves the order untouched so the client can retry.
type ConfirmGatewayPaymentCommandHandler struct {
	uowFactory SettlementUoWFactory
}

// NewConfirmGatewayPaymentCommandHandler creates a handler for gateway confirmations.
func NewConfirmGatewayPaymentCommandHandler(uowFactory SettlementUoWFactory) ConfirmGatewayPaymentCommandHandler {
	return ConfirmGatewayPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the confirmation and returns the updated payment.
func (h ConfirmGatewayPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmGatewayPaymentCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentsRepo := uow.PaymentRepository()

	p, err := paymentsRepo.GetByExternalID(ctx, cmd.ExternalID())
	if err != nil {
		return nil, err
	}

	// The gateway only charged its own leg, not the full payment; on a
	// split payment the wallet and points legs are already covered.
	if reported := cmd.Amount(); reported != nil {
		expected := p.Amount()
		if leg := p.GatewaySplit(); leg != nil {
			expected = leg.Amount
		}
		if !reported.IsEqual(expected) {
			return nil, errs.NewValueIsInvalidErrorWithCause("amount",
				fmt.Errorf("gateway reported %s for a %s gateway charge", reported, expected))
		}
	}

	if !cmd.Succeeded() {
		if err := p.MarkFailed(); err != nil {
			return nil, err
		}
		if err := paymentsRepo.Update(ctx, p); err != nil {
			return nil, err
		}
		if err := uow.Commit(ctx); err != nil {
			return nil, err
		}
		return p, nil
	}

	if err := p.ConfirmGateway(); err != nil {
		return nil, err
	}

	ordersRepo := uow.OrderRepository()
	o, err := ordersRepo.GetForUpdate(ctx, p.OrderID())
	if err != nil {
		return nil, err
	}
	if err := o.MarkPaid(); err != nil {
		return nil, err
	}

	if err := ordersRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err := paymentsRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
