package services

import (
	"orderdesk/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// PointsConfig is the tenant's loyalty-point conversion configuration.
type PointsConfig struct {
	// RatePerPoint is the wallet credit value of one point.
	RatePerPoint decimal.Decimal

	// MinPoints is the smallest balance a wallet must hold before any
	// points may be converted.
	MinPoints int
}

// SplitPlan describes how a payment amount drains its funding sources.
// Invariant: Wallet + Points + Gateway always equals the planned amount.
type SplitPlan struct {
	Wallet  kernel.Money
	Points  kernel.Money
	Gateway kernel.Money
}

// FullyCovered reports whether wallet and points cover the whole amount,
// leaving nothing for the gateway.
func (p SplitPlan) FullyCovered() bool {
	return p.Gateway.IsZero()
}

// PaymentSplitter plans smart payment settlement: funding sources are
// drained in a fixed priority order, wallet balance first, then loyalty
// points converted at the configured rate, with any remainder routed to
// the external gateway.
type PaymentSplitter struct{}

// NewPaymentSplitter creates a new PaymentSplitter instance.
func NewPaymentSplitter() PaymentSplitter {
	return PaymentSplitter{}
}

// Plan computes the split for the amount due against the available wallet
// balance and points. The plan is advisory: executing it (debits, point
// redemption, gateway call) happens in the payment handler inside one
// database transaction with the wallet row locked.
func (PaymentSplitter) Plan(
	due kernel.Money,
	walletBalance kernel.Money,
	points int,
	cfg PointsConfig,
) SplitPlan {
	walletLeg := walletBalance.Min(due)
	remaining := due.SubFloorZero(walletLeg)

	pointsLeg := kernel.ZeroMoney()
	if !remaining.IsZero() && points >= cfg.MinPoints && cfg.RatePerPoint.Sign() > 0 {
		pointsValue, err := kernel.NewMoney(
			cfg.RatePerPoint.Mul(decimal.NewFromInt(int64(points))))
		if err == nil {
			pointsLeg = pointsValue.Min(remaining)
		}
	}

	return SplitPlan{
		Wallet:  walletLeg,
		Points:  pointsLeg,
		Gateway: remaining.SubFloorZero(pointsLeg),
	}
}
