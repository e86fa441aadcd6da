package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/request"
)

// WriterRequestRepository defines the persistence contract for
// writer-initiated change requests.
type WriterRequestRepository interface {
	Add(ctx context.Context, aggregate *request.WriterRequest) error
	Update(ctx context.Context, aggregate *request.WriterRequest) error
	Get(ctx context.Context, id kernel.UUID) (*request.WriterRequest, error)
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*request.WriterRequest, error)
}

// ReassignmentRequestRepository defines the persistence contract for
// reassignment requests. The at-most-one-pending-per-order rule is
// enforced by Add.
type ReassignmentRequestRepository interface {
	// Add persists a new request. It fails with a validation error when
	// a pending request already exists for the same order.
	Add(ctx context.Context, aggregate *request.ReassignmentRequest) error

	Update(ctx context.Context, aggregate *request.ReassignmentRequest) error
	Get(ctx context.Context, id kernel.UUID) (*request.ReassignmentRequest, error)
	GetPendingByOrder(ctx context.Context, orderID kernel.UUID) (*request.ReassignmentRequest, error)
}
