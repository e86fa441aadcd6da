package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for wallet aggregates
// and their append-only transaction ledger.
type WalletRepository interface {
	// Add persists a new wallet.
	Add(ctx context.Context, aggregate *wallet.Wallet) error

	// Update persists a wallet's balance and points. Callers must have
	// loaded the wallet via GetByUserForUpdate within the same
	// transaction.
	Update(ctx context.Context, aggregate *wallet.Wallet) error

	// GetByUser retrieves the wallet for a user on a website without locking.
	GetByUser(ctx context.Context, userID, websiteID kernel.UUID) (*wallet.Wallet, error)

	// GetByUserForUpdate retrieves the wallet with a row-level lock so a
	// concurrent settlement cannot observe a stale balance. The lock is
	// held until the surrounding transaction commits or rolls back.
	GetByUserForUpdate(ctx context.Context, userID, websiteID kernel.UUID) (*wallet.Wallet, error)

	// AddTransaction appends one ledger entry. Ledger rows are never
	// updated or deleted.
	AddTransaction(ctx context.Context, tx *wallet.Transaction) error
}
