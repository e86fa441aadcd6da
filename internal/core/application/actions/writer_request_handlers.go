package actions

import (
	"context"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/request"
	"orderdesk/internal/pkg/errs"
)

// CreateWriterRequestHandler records a writer's change request against an
// assigned order: a deadline extension or a page/slide increase, with an
// optional extra cost. The order itself does not change until the request
// gathers all its approvals.
type CreateWriterRequestHandler struct {
	uowFactory UoWFactory
}

// NewCreateWriterRequestHandler creates the writer request creation handler.
func NewCreateWriterRequestHandler(uowFactory UoWFactory) CreateWriterRequestHandler {
	return CreateWriterRequestHandler{uowFactory: uowFactory}
}

func (h CreateWriterRequestHandler) Execute(ctx context.Context, req Request) (Result, error) {
	return mutateOrder(ctx, h.uowFactory, req, func(uow UoW, o *order.Order) (map[string]any, error) {
		if !o.Status().Allows(order.ActionCreateWriterRequest) {
			return nil, errs.NewTransitionNotAllowedError(
				order.ActionCreateWriterRequest.String(), o.Status().String())
		}

		writerID := o.Writer()
		if writerID == nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("orderId",
				fmt.Errorf("order %s has no assigned writer", o.ID()))
		}

		typeName, err := req.Params.String("request_type")
		if err != nil {
			return nil, err
		}
		requestType, err := request.WriterRequestTypeFromString(typeName)
		if err != nil {
			return nil, err
		}
		reason, err := req.Params.String("reason")
		if err != nil {
			return nil, err
		}

		var newDeadline *time.Time
		if raw := req.Params.OptionalString("new_deadline"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause("newDeadline", err)
			}
			newDeadline = &parsed
		}

		extraCost := kernel.ZeroMoney()
		if raw := req.Params.OptionalString("extra_cost"); raw != "" {
			extraCost, err = kernel.NewMoneyFromString(raw)
			if err != nil {
				return nil, err
			}
		}

		writerRequest, err := request.NewWriterRequest(
			kernel.NewUUID(), o.ID(), *writerID,
			requestType, reason,
			newDeadline, req.Params.Int("extra_units"), extraCost,
		)
		if err != nil {
			return nil, err
		}

		if err := uow.WriterRequestRepository().Add(ctx, writerRequest); err != nil {
			return nil, err
		}

		return map[string]any{
			"request_id":   writerRequest.ID().String(),
			"request_type": requestType.String(),
			"reason":       reason,
		}, nil
	})
}

// RespondWriterRequestHandler records one party's response to a writer
// request. Approval is three-way: the client responds, an admin responds,
// and any extra cost must be flagged paid. When the request becomes fully
// granted its counter-offer is applied to the order: the new deadline, the
// extra pages or slides, and the extra cost added to the total price.
type RespondWriterRequestHandler struct {
	uowFactory UoWFactory
}

// NewRespondWriterRequestHandler creates the writer request response handler.
func NewRespondWriterRequestHandler(uowFactory UoWFactory) RespondWriterRequestHandler {
	return RespondWriterRequestHandler{uowFactory: uowFactory}
}

func (h RespondWriterRequestHandler) Execute(ctx context.Context, req Request) (Result, error) {
	return mutateOrder(ctx, h.uowFactory, req, func(uow UoW, o *order.Order) (map[string]any, error) {
		if !o.Status().Allows(order.ActionRespondWriterRequest) {
			return nil, errs.NewTransitionNotAllowedError(
				order.ActionRespondWriterRequest.String(), o.Status().String())
		}

		requestID, err := req.Params.UUID("request_id")
		if err != nil {
			return nil, err
		}
		party, err := req.Params.String("party")
		if err != nil {
			return nil, err
		}

		repo := uow.WriterRequestRepository()
		writerRequest, err := repo.Get(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if !writerRequest.OrderID().IsEqual(o.ID()) {
			return nil, errs.NewValueIsInvalidErrorWithCause("requestId",
				fmt.Errorf("request %s does not belong to order %s", requestID, o.ID()))
		}

		approved := req.Params.Bool("approved")
		switch party {
		case "client":
			writerRequest.ApproveByClient(approved)
		case "admin":
			writerRequest.ApproveByAdmin(approved)
		case "payment":
			writerRequest.MarkPaid()
		default:
			return nil, errs.NewValueIsInvalidErrorWithCause("party",
				fmt.Errorf("%q is not a valid responding party", party))
		}

		// Apply the counter-offer only on the transition into granted;
		// a replayed response must not grow the order or its price again.
		granted := writerRequest.IsGranted()
		if granted && !writerRequest.Applied() {
			if err := applyWriterRequest(o, writerRequest); err != nil {
				return nil, err
			}
			if err := writerRequest.MarkApplied(); err != nil {
				return nil, err
			}
		}

		if err := repo.Update(ctx, writerRequest); err != nil {
			return nil, err
		}

		return map[string]any{
			"request_id": requestID.String(),
			"party":      party,
			"approved":   approved,
			"granted":    granted,
		}, nil
	})
}

// applyWriterRequest applies a fully granted counter-offer to the order.
func applyWriterRequest(o *order.Order, r *request.WriterRequest) error {
	switch r.Type() {
	case request.WriterRequestDeadlineExtension:
		if err := o.ExtendDeadline(*r.NewDeadline()); err != nil {
			return err
		}
	case request.WriterRequestPageIncrease:
		if err := o.IncreaseSize(r.ExtraUnits(), 0); err != nil {
			return err
		}
	case request.WriterRequestSlideIncrease:
		if err := o.IncreaseSize(0, r.ExtraUnits()); err != nil {
			return err
		}
	default:
		return errs.NewValueIsInvalidError("requestType")
	}

	if !r.ExtraCost().IsZero() {
		o.SetPricing(o.BasePrice(), o.TotalPrice().Add(r.ExtraCost()), o.WriterCompensation())
	}
	return nil
}
