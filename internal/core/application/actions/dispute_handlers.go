package actions

import (
	"fmt"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// NewOpenDisputeHandler escalates an order into a dispute.
func NewOpenDisputeHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, req Request) (map[string]any, error) {
		reason, err := req.Params.String("reason")
		if err != nil {
			return nil, err
		}
		if err := o.OpenDispute(); err != nil {
			return nil, err
		}
		return map[string]any{"reason": reason}, nil
	}}
}

// NewResolveDisputeHandler settles a dispute. The outcome parameter decides
// where the order lands: "completed" upholds the delivery, "re_opened"
// strips the writer and puts the order back into circulation.
func NewResolveDisputeHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, req Request) (map[string]any, error) {
		outcome, err := req.Params.String("outcome")
		if err != nil {
			return nil, err
		}

		var target order.Status
		switch outcome {
		case order.StatusCompleted.String():
			target = order.StatusCompleted
		case order.StatusReOpened.String():
			target = order.StatusReOpened
		default:
			return nil, errs.NewValueIsInvalidErrorWithCause("outcome",
				fmt.Errorf("%q is not a valid dispute outcome", outcome))
		}

		if err := o.ResolveDispute(target); err != nil {
			return nil, err
		}

		details := map[string]any{"outcome": outcome}
		if resolution := req.Params.OptionalString("resolution"); resolution != "" {
			details["resolution"] = resolution
		}
		return details, nil
	}}
}
