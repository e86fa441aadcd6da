// Package walletrepo implements wallet and ledger persistence on
// PostgreSQL via GORM.
package walletrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/wallet"

	"github.com/google/uuid"
)

// WalletDTO is the database row representation of a wallet aggregate.
// One wallet exists per user per website.
type WalletDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_website"`
	WebsiteID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_website"`
	Balance   string    `gorm:"type:numeric(12,2);not null"`
	Points    int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default GORM table name.
func (WalletDTO) TableName() string {
	return "wallets"
}

// TransactionDTO is one append-only ledger row. Ledger rows are inserted
// once and never updated.
type TransactionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount    string    `gorm:"type:numeric(12,2);not null"`
	Kind      string    `gorm:"not null"`
	Reference string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName overrides the default GORM table name.
func (TransactionDTO) TableName() string {
	return "wallet_transactions"
}

func fromDomain(w *wallet.Wallet) *WalletDTO {
	return &WalletDTO{
		ID:        w.ID().Bytes(),
		UserID:    w.UserID().Bytes(),
		WebsiteID: w.WebsiteID().Bytes(),
		Balance:   w.Balance().String(),
		Points:    w.Points(),
	}
}

func toDomain(dto *WalletDTO) (*wallet.Wallet, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromString(dto.UserID.String())
	if err != nil {
		return nil, err
	}
	websiteID, err := kernel.UUIDFromString(dto.WebsiteID.String())
	if err != nil {
		return nil, err
	}

	balance, err := kernel.NewMoneyFromString(dto.Balance)
	if err != nil {
		return nil, err
	}

	return wallet.RestoreWallet(id, userID, websiteID, balance, dto.Points)
}

func transactionFromDomain(tx *wallet.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:        tx.ID().Bytes(),
		WalletID:  tx.WalletID().Bytes(),
		Amount:    tx.Amount().String(),
		Kind:      tx.Kind().String(),
		Reference: tx.Reference(),
		CreatedAt: tx.CreatedAt(),
	}
}
