package commands

import (
	"context"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/payment"
	"orderdesk/internal/core/domain/model/wallet"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// SettlePaymentCommandHandler settles an order's total through the smart
// payment split. The order row and the payer's wallet row are both locked
// for the duration of the transaction: wallet drain, point redemption,
// ledger entries, split legs and the order's paid transition commit or
// roll back as one.
//
// When wallet and points cover the full amount the payment completes and
// the order moves to pending immediately. Otherwise the remainder is
// routed to the gateway and the payment stays pending until the gateway's
// webhook confirms it.
type SettlePaymentCommandHandler struct {
	uowFactory SettlementUoWFactory
	settings   ports.SettingsProvider
	splitter   services.PaymentSplitter
}

// NewSettlePaymentCommandHandler creates a handler for payment settlement.
func NewSettlePaymentCommandHandler(uowFactory SettlementUoWFactory, settings ports.SettingsProvider) SettlePaymentCommandHandler {
	return SettlePaymentCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		splitter:   services.NewPaymentSplitter(),
	}
}

// Handle processes the settlement command and returns the resulting
// payment aggregate so the caller can report the split to the client.
func (h SettlePaymentCommandHandler) Handle(ctx context.Context, cmd SettlePaymentCommand) (*payment.Payment, error) {
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

	ordersRepo := uow.OrderRepository()
	walletsRepo := uow.WalletRepository()

	o, err := ordersRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	due := o.TotalPrice()
	if due.IsZero() {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("order %s has nothing due", o.ID()))
	}

	w, err := walletsRepo.GetByUserForUpdate(ctx, cmd.PayerID(), o.WebsiteID())
	if err != nil {
		return nil, err
	}

	pointsCfg, err := h.settings.PointsConfig(ctx, o.WebsiteID())
	if err != nil {
		return nil, err
	}

	plan := h.splitter.Plan(due, w.Balance(), w.Points(), pointsCfg)

	p, err := payment.NewPayment(
		kernel.NewUUID(), o.ID(), o.WebsiteID(), due, due, o.DiscountCode())
	if err != nil {
		return nil, err
	}

	if err := h.executePlan(ctx, walletsRepo, w, p, plan, pointsCfg, cmd.Gateway()); err != nil {
		return nil, err
	}

	if plan.FullyCovered() {
		if err := p.MarkCompleted(); err != nil {
			return nil, err
		}
		if err := o.MarkPaid(); err != nil {
			return nil, err
		}
		if err := ordersRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err := walletsRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	if err := uow.PaymentRepository().Add(ctx, p); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// executePlan turns the advisory split plan into wallet mutations, ledger
// entries and split legs.
func (h SettlePaymentCommandHandler) executePlan(
	ctx context.Context,
	walletsRepo ports.WalletRepository,
	w *wallet.Wallet,
	p *payment.Payment,
	plan services.SplitPlan,
	pointsCfg services.PointsConfig,
	gateway string,
) error {
	if !plan.Wallet.IsZero() {
		ledger, err := w.Debit(plan.Wallet, fmt.Sprintf("order_payment:%s", p.OrderID()))
		if err != nil {
			return err
		}
		if err := walletsRepo.AddTransaction(ctx, ledger); err != nil {
			return err
		}
		if err := p.AddSplit(payment.MethodWallet, plan.Wallet); err != nil {
			return err
		}
	}

	if !plan.Points.IsZero() {
		// Points become wallet credit first, then the credit is debited
		// onto the payment, so the ledger shows both sides of the
		// conversion.
		credited, creditEntry, err := w.RedeemPoints(
			plan.Points, pointsCfg.RatePerPoint, pointsCfg.MinPoints,
			fmt.Sprintf("points_redemption:%s", p.OrderID()))
		if err != nil {
			return err
		}
		if creditEntry != nil {
			if err := walletsRepo.AddTransaction(ctx, creditEntry); err != nil {
				return err
			}
			debitEntry, err := w.Debit(credited, fmt.Sprintf("order_payment_points:%s", p.OrderID()))
			if err != nil {
				return err
			}
			if err := walletsRepo.AddTransaction(ctx, debitEntry); err != nil {
				return err
			}
			if err := p.AddSplit(payment.MethodPoints, credited); err != nil {
				return err
			}
		}
	}

	if !plan.Gateway.IsZero() {
		if gateway == "" {
			return errs.NewValueIsRequiredError("gateway")
		}
		if err := p.RouteToGateway(gateway, p.ID().String()); err != nil {
			return err
		}
	}

	return nil
}
