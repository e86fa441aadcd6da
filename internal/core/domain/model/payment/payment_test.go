package payment_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/payment"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T, amount string) *payment.Payment {
	t.Helper()

	p, err := payment.NewPayment(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.MustMoney(amount), kernel.MustMoney(amount), nil,
	)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("starts_pending_with_no_splits", func(t *testing.T) {
		p := newTestPayment(t, "150.00")

		assert.Equal(t, payment.StatusPending, p.Status())
		assert.Empty(t, p.Splits())
		assert.Equal(t, "150.00", p.Outstanding().String())
	})

	t.Run("rejects_zero_amount", func(t *testing.T) {
		_, err := payment.NewPayment(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.ZeroMoney(), kernel.ZeroMoney(), nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestPayment_Splits(t *testing.T) {
	t.Run("legs_accumulate_and_cover", func(t *testing.T) {
		p := newTestPayment(t, "150.00")

		require.NoError(t, p.AddSplit(payment.MethodWallet, kernel.MustMoney("50.00")))
		require.NoError(t, p.AddSplit(payment.MethodPoints, kernel.MustMoney("50.00")))

		assert.Equal(t, "100.00", p.CoveredAmount().String())
		assert.Equal(t, "50.00", p.Outstanding().String())
	})

	t.Run("legs_cannot_exceed_amount", func(t *testing.T) {
		p := newTestPayment(t, "100.00")

		require.NoError(t, p.AddSplit(payment.MethodWallet, kernel.MustMoney("80.00")))
		err := p.AddSplit(payment.MethodPoints, kernel.MustMoney("30.00"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPayment_MarkCompleted(t *testing.T) {
	t.Run("requires_full_coverage", func(t *testing.T) {
		p := newTestPayment(t, "100.00")
		require.NoError(t, p.AddSplit(payment.MethodWallet, kernel.MustMoney("60.00")))

		require.Error(t, p.MarkCompleted())

		require.NoError(t, p.AddSplit(payment.MethodPoints, kernel.MustMoney("40.00")))
		require.NoError(t, p.MarkCompleted())
		assert.Equal(t, payment.StatusCompleted, p.Status())
	})
}

func TestPayment_GatewayFlow(t *testing.T) {
	t.Run("routes_outstanding_and_confirms_on_webhook", func(t *testing.T) {
		p := newTestPayment(t, "150.00")
		require.NoError(t, p.AddSplit(payment.MethodWallet, kernel.MustMoney("50.00")))
		require.NoError(t, p.AddSplit(payment.MethodPoints, kernel.MustMoney("50.00")))

		require.NoError(t, p.RouteToGateway("stripe", "pi_123"))
		assert.Equal(t, payment.StatusPending, p.Status())
		assert.Equal(t, "stripe", p.Gateway())
		assert.True(t, p.Outstanding().IsZero())

		require.NoError(t, p.ConfirmGateway())
		assert.Equal(t, payment.StatusCompleted, p.Status())
	})

	t.Run("split_sum_invariant_holds_after_routing", func(t *testing.T) {
		p := newTestPayment(t, "150.00")
		require.NoError(t, p.AddSplit(payment.MethodWallet, kernel.MustMoney("50.00")))
		require.NoError(t, p.RouteToGateway("paypal", "tx-9"))

		assert.True(t, p.CoveredAmount().IsEqual(p.Amount()))
	})

	t.Run("completed_payment_cannot_fail", func(t *testing.T) {
		p := newTestPayment(t, "10.00")
		require.NoError(t, p.AddSplit(payment.MethodWallet, kernel.MustMoney("10.00")))
		require.NoError(t, p.MarkCompleted())

		require.Error(t, p.MarkFailed())
	})
}
