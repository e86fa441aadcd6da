package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/services"
)

// SettingsProvider resolves tenant-scoped configuration rows. Every
// website carries its own pricing table, loyalty conversion settings and
// revision policy; missing rows resolve to documented fallbacks.
type SettingsProvider interface {
	// PricingConfig returns the website's pricing configuration.
	PricingConfig(ctx context.Context, websiteID kernel.UUID) (services.PricingConfig, error)

	// PointsConfig returns the website's loyalty-point conversion settings.
	PointsConfig(ctx context.Context, websiteID kernel.UUID) (services.PointsConfig, error)

	// RevisionWindowDays returns the website's revision window, or 0 when
	// unset so callers fall back to the default policy.
	RevisionWindowDays(ctx context.Context, websiteID kernel.UUID) (int, error)

	// DiscountAmount resolves a discount code to the amount it removes
	// from the given gross total. Unknown or inactive codes resolve to
	// zero. Stacking rules live behind this interface.
	DiscountAmount(ctx context.Context, websiteID kernel.UUID, code string, gross kernel.Money) (kernel.Money, error)
}
