package actions

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// CalculatePricingHandler recomputes an order's price breakdown from the
// website's pricing configuration and stores it on the aggregate. The
// order's status is preserved; pricing may be recalculated at any point in
// the lifecycle.
type CalculatePricingHandler struct {
	uowFactory UoWFactory
	settings   ports.SettingsProvider
	calculator services.PricingCalculator
}

// NewCalculatePricingHandler creates the pricing recalculation handler.
func NewCalculatePricingHandler(uowFactory UoWFactory, settings ports.SettingsProvider) CalculatePricingHandler {
	return CalculatePricingHandler{
		uowFactory: uowFactory,
		settings:   settings,
		calculator: services.NewPricingCalculator(),
	}
}

func (h CalculatePricingHandler) Execute(ctx context.Context, req Request) (Result, error) {
	return mutateOrder(ctx, h.uowFactory, req, func(_ UoW, o *order.Order) (map[string]any, error) {
		cfg, err := h.settings.PricingConfig(ctx, o.WebsiteID())
		if err != nil {
			return nil, err
		}

		if code := req.Params.OptionalString("discount_code"); code != "" {
			if err := o.SetDiscountCode(code); err != nil {
				return nil, err
			}
		}

		input := services.PricingInput{
			Now:           time.Now().UTC(),
			WriterLevel:   req.Params.OptionalString("writer_level"),
			ExtraServices: req.Params.StringSlice("extra_services"),
			Discount:      kernel.ZeroMoney(),
		}

		// First pass computes the gross the discount code applies to.
		gross, err := h.calculator.Calculate(o, cfg, input)
		if err != nil {
			return nil, err
		}

		if code := o.DiscountCode(); code != nil {
			discount, err := h.settings.DiscountAmount(ctx, o.WebsiteID(), *code, gross.Total)
			if err != nil {
				return nil, err
			}
			input.Discount = discount
		}

		breakdown, err := h.calculator.Calculate(o, cfg, input)
		if err != nil {
			return nil, err
		}

		o.SetPricing(breakdown.Base, breakdown.Total, o.WriterCompensation())

		return map[string]any{
			"base":                breakdown.Base.String(),
			"deadline_multiplier": breakdown.DeadlineMultiplier.String(),
			"extra_services":      breakdown.ExtraServices.String(),
			"writer_level_fee":    breakdown.WriterLevelFee.String(),
			"preferred_fee":       breakdown.PreferredWriterFee.String(),
			"discount":            breakdown.Discount.String(),
			"total":               breakdown.Total.String(),
		}, nil
	})
}
