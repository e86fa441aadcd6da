package actions

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// orderTransitionHandler is the shape shared by every handler whose whole
// job is a single aggregate mutation inside one locked transaction. The
// apply closure performs the mutation and returns the handler's detail map.
type orderTransitionHandler struct {
	uowFactory UoWFactory
	apply      func(o *order.Order, req Request) (map[string]any, error)
}

func (h orderTransitionHandler) Execute(ctx context.Context, req Request) (Result, error) {
	return mutateOrder(ctx, h.uowFactory, req, func(_ UoW, o *order.Order) (map[string]any, error) {
		return h.apply(o, req)
	})
}

// NewMarkPaidHandler confirms payment on a created or unpaid order.
func NewMarkPaidHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.MarkPaid()
	}}
}

// NewPublishHandler releases a paid order to writers. Orders with a
// preferred writer go on reserve for that writer first.
func NewPublishHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		if err := o.Publish(); err != nil {
			return nil, err
		}
		details := map[string]any{}
		if pw := o.PreferredWriter(); pw != nil {
			details["preferred_writer_id"] = pw.String()
		}
		return details, nil
	}}
}

// NewCancelHandler cancels an order, recording the optional reason.
func NewCancelHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, req Request) (map[string]any, error) {
		if err := o.Cancel(); err != nil {
			return nil, err
		}
		details := map[string]any{}
		if reason := req.Params.OptionalString("reason"); reason != "" {
			details["reason"] = reason
		}
		return details, nil
	}}
}

// NewHoldHandler pauses an order.
func NewHoldHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.Hold()
	}}
}

// NewResumeHandler resumes an on-hold order.
func NewResumeHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.Resume()
	}}
}

// NewMarkCriticalHandler escalates an order nearing its deadline without a
// writer.
func NewMarkCriticalHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.MarkCritical()
	}}
}

// NewMarkLateHandler flags an assigned order past its deadline.
func NewMarkLateHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.MarkLate()
	}}
}

// NewSubmitHandler records the writer's delivery of the work.
func NewSubmitHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.Submit()
	}}
}

// NewSendForEditingHandler routes a submitted order to the editing desk.
func NewSendForEditingHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.SendForEditing()
	}}
}

// NewSendForReviewHandler routes a submitted order to quality review.
func NewSendForReviewHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.SendForReview()
	}}
}

// NewCompleteHandler delivers the order to the client and stamps the
// completion time the revision window counts from.
func NewCompleteHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.Complete(time.Now().UTC())
	}}
}

// NewApproveHandler records client acceptance of the delivered work.
func NewApproveHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.Approve()
	}}
}

// NewRateHandler records a 1-5 client rating on an approved order.
func NewRateHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, req Request) (map[string]any, error) {
		rating := req.Params.Int("rating")
		if rating < 1 || rating > 5 {
			return nil, errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
		}
		if err := o.Rate(); err != nil {
			return nil, err
		}
		return map[string]any{"rating": rating}, nil
	}}
}

// NewReviewHandler records a written client review on a rated order.
func NewReviewHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, req Request) (map[string]any, error) {
		text, err := req.Params.String("review")
		if err != nil {
			return nil, err
		}
		if err := o.Review(); err != nil {
			return nil, err
		}
		return map[string]any{"review": text}, nil
	}}
}

// NewArchiveHandler soft-archives a finished order.
func NewArchiveHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.Archive()
	}}
}

// NewExpireHandler expires an order that was never paid in time.
func NewExpireHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.Expire()
	}}
}

// NewReopenHandler puts a cancelled or expired order back into circulation.
func NewReopenHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.Reopen()
	}}
}

// NewSetUrgencyHandler toggles the urgency flag on an undelivered order.
func NewSetUrgencyHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, req Request) (map[string]any, error) {
		urgent := req.Params.Bool("urgent")
		if err := o.SetUrgency(urgent); err != nil {
			return nil, err
		}
		return map[string]any{"urgent": urgent}, nil
	}}
}
