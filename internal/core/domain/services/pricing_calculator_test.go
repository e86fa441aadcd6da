package services_test

import (
	"testing"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() services.PricingConfig {
	return services.PricingConfig{
		WebsiteID: kernel.NewUUID(),
		PageRate:  kernel.MustMoney("10.00"),
		SlideRate: kernel.MustMoney("5.00"),
		DeadlineTiers: []services.DeadlineTier{
			{HoursBefore: 24, Multiplier: decimal.NewFromFloat(1.5)},
			{HoursBefore: 72, Multiplier: decimal.NewFromFloat(1.2)},
			{HoursBefore: 168, Multiplier: decimal.NewFromInt(1)},
		},
		WriterLevelFees: map[string]kernel.Money{
			"advanced": kernel.MustMoney("12.00"),
			"expert":   kernel.MustMoney("25.00"),
		},
		PreferredWriterFee: kernel.MustMoney("8.00"),
		ExtraServiceCosts: map[string]kernel.Money{
			"plagiarism_report": kernel.MustMoney("9.99"),
			"abstract":          kernel.MustMoney("14.50"),
		},
	}
}

func pricingOrder(t *testing.T, pages, slides int, deadline time.Time, preferred *kernel.UUID) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Pricing test order", pages, slides, deadline, preferred,
	)
	require.NoError(t, err)
	return o
}

func TestPricingCalculator_Calculate(t *testing.T) {
	calc := services.NewPricingCalculator()
	now := time.Now()

	t.Run("base_price_from_pages_and_slides", func(t *testing.T) {
		// 200h out picks the 168h tier (multiplier 1.0).
		o := pricingOrder(t, 4, 2, now.Add(200*time.Hour), nil)

		b, err := calc.Calculate(o, testConfig(), services.PricingInput{Now: now})
		require.NoError(t, err)

		assert.Equal(t, "50.00", b.Base.String()) // 4x10 + 2x5
		assert.Equal(t, "50.00", b.Total.String())
	})

	t.Run("tier_with_largest_threshold_below_hours_remaining_wins", func(t *testing.T) {
		// 100h remaining: thresholds 24 and 72 qualify, 72 is largest.
		o := pricingOrder(t, 10, 0, now.Add(100*time.Hour), nil)

		b, err := calc.Calculate(o, testConfig(), services.PricingInput{Now: now})
		require.NoError(t, err)

		assert.Equal(t, "1.2", b.DeadlineMultiplier.String())
		assert.Equal(t, "120.00", b.Total.String())
	})

	t.Run("past_deadline_falls_back_to_one", func(t *testing.T) {
		o := pricingOrder(t, 10, 0, now.Add(-time.Hour), nil)

		b, err := calc.Calculate(o, testConfig(), services.PricingInput{Now: now})
		require.NoError(t, err)

		assert.Equal(t, "1", b.DeadlineMultiplier.String())
	})

	t.Run("fees_and_extras_are_added_after_multiplier", func(t *testing.T) {
		preferred := kernel.NewUUID()
		o := pricingOrder(t, 10, 0, now.Add(100*time.Hour), &preferred)

		b, err := calc.Calculate(o, testConfig(), services.PricingInput{
			Now:           now,
			WriterLevel:   "expert",
			ExtraServices: []string{"plagiarism_report", "abstract"},
		})
		require.NoError(t, err)

		// 100x1.2 + 9.99 + 14.50 + 25 + 8
		assert.Equal(t, "24.49", b.ExtraServices.String())
		assert.Equal(t, "25.00", b.WriterLevelFee.String())
		assert.Equal(t, "8.00", b.PreferredWriterFee.String())
		assert.Equal(t, "177.49", b.Total.String())
	})

	t.Run("discount_floors_at_zero", func(t *testing.T) {
		o := pricingOrder(t, 1, 0, now.Add(200*time.Hour), nil)

		b, err := calc.Calculate(o, testConfig(), services.PricingInput{
			Now:      now,
			Discount: kernel.MustMoney("999.00"),
		})
		require.NoError(t, err)

		assert.True(t, b.Total.IsZero())
	})

	t.Run("idempotent_for_unchanged_order", func(t *testing.T) {
		o := pricingOrder(t, 7, 3, now.Add(50*time.Hour), nil)
		in := services.PricingInput{Now: now, WriterLevel: "advanced"}

		first, err := calc.Calculate(o, testConfig(), in)
		require.NoError(t, err)
		second, err := calc.Calculate(o, testConfig(), in)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
