package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment attempts
// and their split legs.
type PaymentRepository interface {
	// Add persists a new payment together with its split legs.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists status and gateway fields of an existing payment,
	// plus any split legs added since it was loaded.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment with its splits by ID.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByExternalID retrieves a payment by the gateway's identifier.
	// Used by inbound webhook receivers to match confirmations.
	GetByExternalID(ctx context.Context, externalID string) (*payment.Payment, error)
}
