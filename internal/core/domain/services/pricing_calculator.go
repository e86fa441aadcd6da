package services

import (
	"sort"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// DeadlineTier is one row of a tenant's urgency multiplier table.
// The tier applies when at least HoursBefore hours remain until the
// order's deadline.
type DeadlineTier struct {
	HoursBefore int
	Multiplier  decimal.Decimal
}

// PricingConfig is the tenant-scoped pricing configuration, sourced from
// the website's settings rows.
type PricingConfig struct {
	WebsiteID kernel.UUID

	PageRate  kernel.Money
	SlideRate kernel.Money

	// DeadlineTiers selects the urgency multiplier; the tier with the
	// largest HoursBefore not exceeding the hours remaining wins.
	DeadlineTiers []DeadlineTier

	// WriterLevelFees maps a writer quality level to its surcharge.
	WriterLevelFees map[string]kernel.Money

	PreferredWriterFee kernel.Money

	// ExtraServiceCosts maps a service name (plagiarism report, abstract,
	// one-page summary) to its flat cost.
	ExtraServiceCosts map[string]kernel.Money
}

// PricingInput carries the per-order parameters that are not part of the
// aggregate: the requested writer level, chosen extra services and any
// resolved discount amount.
type PricingInput struct {
	Now           time.Time
	WriterLevel   string
	ExtraServices []string
	Discount      kernel.Money
}

// Breakdown is the computed price decomposition for an order.
type Breakdown struct {
	Base               kernel.Money
	DeadlineMultiplier decimal.Decimal
	ExtraServices      kernel.Money
	WriterLevelFee     kernel.Money
	PreferredWriterFee kernel.Money
	Discount           kernel.Money
	Total              kernel.Money
}

// PricingCalculator computes an order's price breakdown:
//
//	total = (pages x page_rate + slides x slide_rate) x deadline_multiplier
//	        + extra_services + writer_level_fee + preferred_writer_fee
//	        - discount, floored at zero
//
// The calculation is pure: calling it twice for an unchanged order and
// input returns an identical breakdown.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// Calculate computes the price breakdown for the order under the given
// tenant configuration and input.
func (PricingCalculator) Calculate(o *order.Order, cfg PricingConfig, in PricingInput) (Breakdown, error) {
	if err := o.Validate(); err != nil {
		return Breakdown{}, err
	}

	base := cfg.PageRate.Mul(decimal.NewFromInt(int64(o.Pages()))).
		Add(cfg.SlideRate.Mul(decimal.NewFromInt(int64(o.Slides()))))

	multiplier := selectMultiplier(cfg.DeadlineTiers, o.Deadline(), in.Now)

	extras := kernel.ZeroMoney()
	for _, name := range in.ExtraServices {
		if cost, ok := cfg.ExtraServiceCosts[name]; ok {
			extras = extras.Add(cost)
		}
	}

	levelFee := kernel.ZeroMoney()
	if fee, ok := cfg.WriterLevelFees[in.WriterLevel]; ok {
		levelFee = fee
	}

	preferredFee := kernel.ZeroMoney()
	if o.PreferredWriter() != nil {
		preferredFee = cfg.PreferredWriterFee
	}

	gross := base.Mul(multiplier).
		Add(extras).
		Add(levelFee).
		Add(preferredFee)

	return Breakdown{
		Base:               base,
		DeadlineMultiplier: multiplier,
		ExtraServices:      extras,
		WriterLevelFee:     levelFee,
		PreferredWriterFee: preferredFee,
		Discount:           in.Discount,
		Total:              gross.SubFloorZero(in.Discount),
	}, nil
}

// selectMultiplier picks the tier with the largest threshold not exceeding
// the hours remaining until the deadline. With no tiers, or a deadline
// already in the past, the multiplier is 1.0.
func selectMultiplier(tiers []DeadlineTier, deadline, now time.Time) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if len(tiers) == 0 || deadline.IsZero() || !deadline.After(now) {
		return one
	}

	hoursRemaining := int(deadline.Sub(now).Hours())

	sorted := make([]DeadlineTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].HoursBefore < sorted[j].HoursBefore
	})

	multiplier := one
	for _, tier := range sorted {
		if tier.HoursBefore <= hoursRemaining {
			multiplier = tier.Multiplier
		}
	}
	return multiplier
}
