package ports

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by ID without locking.
	// Used by read paths that never mutate.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order by ID with a row-level lock held
	// for the remainder of the surrounding transaction. Every mutating
	// action handler loads its order through this method so concurrent
	// actions on the same order serialize at the database.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAssignedPastDeadline retrieves assigned orders whose deadline
	// precedes the given time and that are not yet flagged late.
	GetAssignedPastDeadline(ctx context.Context, now time.Time) ([]*order.Order, error)

	// GetArchivable retrieves closed orders (approved, rated, reviewed)
	// whose completion precedes the given cutoff.
	GetArchivable(ctx context.Context, before time.Time) ([]*order.Order, error)
}
