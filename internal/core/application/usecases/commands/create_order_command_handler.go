package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// CreateOrderCommandHandler takes in a new order, prices it against the
// website's pricing configuration and persists it in created status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	settings   ports.SettingsProvider
	calculator services.PricingCalculator
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, settings ports.SettingsProvider) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		calculator: services.NewPricingCalculator(),
	}
}

// Handle processes the order intake command. The quote is computed before
// the transaction opens; persistence is all-or-nothing.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.WebsiteID(), cmd.ClientID(),
		cmd.Title(), cmd.Pages(), cmd.Slides(),
		cmd.Deadline(), cmd.PreferredWriterID(),
	)
	if err != nil {
		return err
	}

	if code := cmd.DiscountCode(); code != "" {
		if err := newOrder.SetDiscountCode(code); err != nil {
			return err
		}
	}

	if err := h.price(ctx, newOrder, cmd); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateOrderCommandHandler) price(ctx context.Context, o *order.Order, cmd CreateOrderCommand) error {
	cfg, err := h.settings.PricingConfig(ctx, o.WebsiteID())
	if err != nil {
		return err
	}

	input := services.PricingInput{
		Now:           time.Now().UTC(),
		WriterLevel:   cmd.WriterLevel(),
		ExtraServices: cmd.ExtraServices(),
		Discount:      kernel.ZeroMoney(),
	}

	gross, err := h.calculator.Calculate(o, cfg, input)
	if err != nil {
		return err
	}

	if code := cmd.DiscountCode(); code != "" {
		discount, err := h.settings.DiscountAmount(ctx, o.WebsiteID(), code, gross.Total)
		if err != nil {
			return err
		}
		input.Discount = discount
	}

	breakdown, err := h.calculator.Calculate(o, cfg, input)
	if err != nil {
		return err
	}

	o.SetPricing(breakdown.Base, breakdown.Total, o.WriterCompensation())
	return nil
}
