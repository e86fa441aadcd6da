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

// CreateReassignmentRequestHandler opens a request to move the order to a
// different writer. At most one pending request may exist per order; the
// repository rejects a second. The order does not change until the request
// is resolved.
type CreateReassignmentRequestHandler struct {
	uowFactory UoWFactory
}

// NewCreateReassignmentRequestHandler creates the reassignment request handler.
func NewCreateReassignmentRequestHandler(uowFactory UoWFactory) CreateReassignmentRequestHandler {
	return CreateReassignmentRequestHandler{uowFactory: uowFactory}
}

func (h CreateReassignmentRequestHandler) Execute(ctx context.Context, req Request) (Result, error) {
	return mutateOrder(ctx, h.uowFactory, req, func(uow UoW, o *order.Order) (map[string]any, error) {
		if !o.Status().Allows(order.ActionCreateReassignmentRequest) {
			return nil, errs.NewTransitionNotAllowedError(
				order.ActionCreateReassignmentRequest.String(), o.Status().String())
		}

		reason, err := req.Params.String("reason")
		if err != nil {
			return nil, err
		}

		var preferredWriter *kernel.UUID
		if raw := req.Params.OptionalString("preferred_writer_id"); raw != "" {
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause("preferredWriterId", err)
			}
			preferredWriter = &id
		}

		reassignment, err := request.NewReassignmentRequest(
			kernel.NewUUID(), o.ID(), req.Actor.ID, reason, preferredWriter)
		if err != nil {
			return nil, err
		}

		if err := uow.ReassignmentRequestRepository().Add(ctx, reassignment); err != nil {
			return nil, err
		}

		return map[string]any{
			"request_id": reassignment.ID().String(),
			"reason":     reason,
		}, nil
	})
}

// ResolveReassignmentRequestHandler settles a pending reassignment request.
// Approval reassigns the order to the named writer (or the request's
// preferred writer) and debits any fine from the outgoing writer's wallet
// in the same transaction. Rejection leaves the order untouched.
type ResolveReassignmentRequestHandler struct {
	uowFactory UoWFactory
}

// NewResolveReassignmentRequestHandler creates the reassignment resolution handler.
func NewResolveReassignmentRequestHandler(uowFactory UoWFactory) ResolveReassignmentRequestHandler {
	return ResolveReassignmentRequestHandler{uowFactory: uowFactory}
}

func (h ResolveReassignmentRequestHandler) Execute(ctx context.Context, req Request) (Result, error) {
	return mutateOrder(ctx, h.uowFactory, req, func(uow UoW, o *order.Order) (map[string]any, error) {
		if !o.Status().Allows(order.ActionResolveReassignmentRequest) {
			return nil, errs.NewTransitionNotAllowedError(
				order.ActionResolveReassignmentRequest.String(), o.Status().String())
		}

		requestID, err := req.Params.UUID("request_id")
		if err != nil {
			return nil, err
		}

		repo := uow.ReassignmentRequestRepository()
		reassignment, err := repo.Get(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if !reassignment.OrderID().IsEqual(o.ID()) {
			return nil, errs.NewValueIsInvalidErrorWithCause("requestId",
				fmt.Errorf("request %s does not belong to order %s", requestID, o.ID()))
		}

		now := time.Now().UTC()

		if !req.Params.Bool("approve") {
			if err := reassignment.Reject(now); err != nil {
				return nil, err
			}
			if err := repo.Update(ctx, reassignment); err != nil {
				return nil, err
			}
			return map[string]any{
				"request_id": requestID.String(),
				"resolution": reassignment.Status().String(),
			}, nil
		}

		newWriter, err := resolveNewWriter(req.Params, reassignment)
		if err != nil {
			return nil, err
		}

		fine := kernel.ZeroMoney()
		if raw := req.Params.OptionalString("fine"); raw != "" {
			fine, err = kernel.NewMoneyFromString(raw)
			if err != nil {
				return nil, err
			}
		}

		if !fine.IsZero() {
			if err := h.collectFine(ctx, uow, o, requestID, fine); err != nil {
				return nil, err
			}
		}

		if err := reassignment.Approve(fine, now); err != nil {
			return nil, err
		}
		if err := o.Reassign(newWriter); err != nil {
			return nil, err
		}
		if err := repo.Update(ctx, reassignment); err != nil {
			return nil, err
		}

		return map[string]any{
			"request_id": requestID.String(),
			"resolution": reassignment.Status().String(),
			"writer_id":  newWriter.String(),
			"fine":       fine.String(),
		}, nil
	})
}

// resolveNewWriter picks the incoming writer: an explicit writer_id
// parameter wins, the request's preferred writer is the fallback.
func resolveNewWriter(params Params, r *request.ReassignmentRequest) (kernel.UUID, error) {
	if raw := params.OptionalString("writer_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("writerId", err)
		}
		return id, nil
	}
	if pw := r.PreferredWriter(); pw != nil {
		return *pw, nil
	}
	return kernel.UUID{}, errs.NewValueIsRequiredError("writer_id")
}

// collectFine debits the fine from the outgoing writer's wallet under a
// row lock and appends the ledger entry. Insufficient funds block the
// resolution; the caller retries with a smaller fine.
func (h ResolveReassignmentRequestHandler) collectFine(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	requestID kernel.UUID,
	fine kernel.Money,
) error {
	outgoing := o.Writer()
	if outgoing == nil {
		return nil
	}

	wallets := uow.WalletRepository()
	w, err := wallets.GetByUserForUpdate(ctx, *outgoing, o.WebsiteID())
	if err != nil {
		return err
	}

	ledger, err := w.Debit(fine, fmt.Sprintf("reassignment_fine:%s", requestID))
	if err != nil {
		return err
	}
	if err := wallets.Update(ctx, w); err != nil {
		return err
	}
	return wallets.AddTransaction(ctx, ledger)
}
