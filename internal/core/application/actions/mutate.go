package actions

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
)

// mutateOrder runs fn against a row-locked order inside a single
// transaction. The order is re-read FOR UPDATE, fn mutates it, the updated
// aggregate is persisted and the transaction committed. fn returns the
// detail map for the execution result.
func mutateOrder(
	ctx context.Context,
	factory UoWFactory,
	req Request,
	fn func(uow UoW, o *order.Order) (map[string]any, error),
) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Result{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	o, err := ordersRepo.GetForUpdate(ctx, req.OrderID)
	if err != nil {
		return Result{}, err
	}
	previous := o.Status()

	details, err := fn(uow, o)
	if err != nil {
		return Result{}, err
	}

	if err := ordersRepo.Update(ctx, o); err != nil {
		return Result{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	return Result{
		OrderID:        o.ID(),
		Title:          o.Title(),
		PreviousStatus: previous,
		NewStatus:      o.Status(),
		Details:        details,
	}, nil
}
