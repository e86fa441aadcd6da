package request_test

import (
	"testing"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/request"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterRequest(t *testing.T) {
	t.Run("deadline_extension_requires_new_deadline", func(t *testing.T) {
		_, err := request.NewWriterRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			request.WriterRequestDeadlineExtension, "need more time",
			nil, 0, kernel.ZeroMoney(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("page_increase_requires_positive_units", func(t *testing.T) {
		_, err := request.NewWriterRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			request.WriterRequestPageIncrease, "scope grew",
			nil, 0, kernel.ZeroMoney(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("reason_is_mandatory", func(t *testing.T) {
		deadline := time.Now().Add(24 * time.Hour)
		_, err := request.NewWriterRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			request.WriterRequestDeadlineExtension, "",
			&deadline, 0, kernel.ZeroMoney(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestWriterRequest_IsGranted(t *testing.T) {
	newPageRequest := func(t *testing.T, cost kernel.Money) *request.WriterRequest {
		t.Helper()
		r, err := request.NewWriterRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			request.WriterRequestPageIncrease, "scope grew",
			nil, 3, cost,
		)
		require.NoError(t, err)
		return r
	}

	t.Run("needs_both_approvals", func(t *testing.T) {
		r := newPageRequest(t, kernel.ZeroMoney())
		assert.False(t, r.IsGranted())

		r.ApproveByClient(true)
		assert.False(t, r.IsGranted())

		r.ApproveByAdmin(true)
		assert.True(t, r.IsGranted())
	})

	t.Run("extra_cost_needs_payment", func(t *testing.T) {
		r := newPageRequest(t, kernel.MustMoney("15.00"))
		r.ApproveByClient(true)
		r.ApproveByAdmin(true)
		assert.False(t, r.IsGranted())

		r.MarkPaid()
		assert.True(t, r.IsGranted())
	})

	t.Run("can_be_applied_only_once", func(t *testing.T) {
		r := newPageRequest(t, kernel.ZeroMoney())
		assert.False(t, r.Applied())

		require.NoError(t, r.MarkApplied())
		assert.True(t, r.Applied())

		err := r.MarkApplied()
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestReassignmentRequest(t *testing.T) {
	newPending := func(t *testing.T) *request.ReassignmentRequest {
		t.Helper()
		r, err := request.NewReassignmentRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"writer unresponsive", nil,
		)
		require.NoError(t, err)
		return r
	}

	t.Run("starts_pending", func(t *testing.T) {
		r := newPending(t)
		assert.Equal(t, request.ReassignmentPending, r.Status())
		assert.Nil(t, r.ResolvedAt())
	})

	t.Run("approve_records_fine_and_resolution", func(t *testing.T) {
		r := newPending(t)
		now := time.Now()

		require.NoError(t, r.Approve(kernel.MustMoney("10.00"), now))
		assert.Equal(t, request.ReassignmentApproved, r.Status())
		assert.Equal(t, "10.00", r.Fine().String())
		require.NotNil(t, r.ResolvedAt())
	})

	t.Run("resolved_request_cannot_be_resolved_again", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Reject(time.Now()))

		require.Error(t, r.Approve(kernel.ZeroMoney(), time.Now()))
		require.Error(t, r.Reject(time.Now()))
	})

	t.Run("reason_is_mandatory", func(t *testing.T) {
		_, err := request.NewReassignmentRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
