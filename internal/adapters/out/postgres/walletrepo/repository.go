package walletrepo

import (
	"context"
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/wallet"
	"orderdesk/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalletRepository implements WalletRepository using GORM.
type GormWalletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB, tracker aggregateTracker) *GormWalletRepository {
	return &GormWalletRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new wallet to the database.
func (r *GormWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the balance and points of an existing wallet. Zero values
// are written too, so a fully drained wallet persists correctly.
func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WalletDTO{}).
		Where("id = ?", dto.ID).
		Select("balance", "points").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByUser retrieves the wallet for a user on a website.
func (r *GormWalletRepository) GetByUser(ctx context.Context, userID, websiteID kernel.UUID) (*wallet.Wallet, error) {
	return r.getByUser(ctx, r.db.WithContext(ctx), userID, websiteID)
}

// GetByUserForUpdate retrieves the wallet holding a FOR UPDATE row lock so
// concurrent settlements against the same wallet serialize.
func (r *GormWalletRepository) GetByUserForUpdate(ctx context.Context, userID, websiteID kernel.UUID) (*wallet.Wallet, error) {
	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getByUser(ctx, db, userID, websiteID)
}

func (r *GormWalletRepository) getByUser(_ context.Context, db *gorm.DB, userID, websiteID kernel.UUID) (*wallet.Wallet, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if err := websiteID.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	err := db.First(&dto, "user_id = ? AND website_id = ?", userID.Bytes(), websiteID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet",
				fmt.Sprintf("user %s on website %s", userID, websiteID))
		}
		return nil, err
	}

	return toDomain(&dto)
}

// AddTransaction appends one ledger entry.
func (r *GormWalletRepository) AddTransaction(ctx context.Context, tx *wallet.Transaction) error {
	if tx == nil {
		return errs.NewValueIsRequiredError("transaction")
	}

	dto := transactionFromDomain(tx)
	return r.db.WithContext(ctx).Create(dto).Error
}
