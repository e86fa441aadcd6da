package services_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentSplitter_Plan(t *testing.T) {
	splitter := services.NewPaymentSplitter()
	cfg := services.PointsConfig{
		RatePerPoint: decimal.NewFromFloat(0.05),
		MinPoints:    100,
	}

	t.Run("wallet_then_points_then_gateway", func(t *testing.T) {
		// $150 due, $50 wallet, 1000 points at $0.05 = $50 in points.
		plan := splitter.Plan(kernel.MustMoney("150.00"), kernel.MustMoney("50.00"), 1000, cfg)

		assert.Equal(t, "50.00", plan.Wallet.String())
		assert.Equal(t, "50.00", plan.Points.String())
		assert.Equal(t, "50.00", plan.Gateway.String())
		assert.False(t, plan.FullyCovered())
	})

	t.Run("split_sum_equals_amount_due", func(t *testing.T) {
		plan := splitter.Plan(kernel.MustMoney("99.37"), kernel.MustMoney("12.11"), 350, cfg)

		sum := plan.Wallet.Add(plan.Points).Add(plan.Gateway)
		assert.Equal(t, "99.37", sum.String())
	})

	t.Run("wallet_alone_covers_everything", func(t *testing.T) {
		plan := splitter.Plan(kernel.MustMoney("40.00"), kernel.MustMoney("100.00"), 1000, cfg)

		assert.Equal(t, "40.00", plan.Wallet.String())
		assert.True(t, plan.Points.IsZero())
		assert.True(t, plan.Gateway.IsZero())
		assert.True(t, plan.FullyCovered())
	})

	t.Run("points_below_minimum_are_not_converted", func(t *testing.T) {
		plan := splitter.Plan(kernel.MustMoney("100.00"), kernel.MustMoney("10.00"), 99, cfg)

		assert.Equal(t, "10.00", plan.Wallet.String())
		assert.True(t, plan.Points.IsZero())
		assert.Equal(t, "90.00", plan.Gateway.String())
	})

	t.Run("points_leg_capped_at_remaining_due", func(t *testing.T) {
		plan := splitter.Plan(kernel.MustMoney("20.00"), kernel.MustMoney("5.00"), 1000, cfg)

		assert.Equal(t, "5.00", plan.Wallet.String())
		assert.Equal(t, "15.00", plan.Points.String())
		assert.True(t, plan.Gateway.IsZero())
		assert.True(t, plan.FullyCovered())
	})

	t.Run("empty_wallet_and_no_points_routes_everything", func(t *testing.T) {
		plan := splitter.Plan(kernel.MustMoney("75.00"), kernel.ZeroMoney(), 0, cfg)

		assert.True(t, plan.Wallet.IsZero())
		assert.True(t, plan.Points.IsZero())
		assert.Equal(t, "75.00", plan.Gateway.String())
	})
}
