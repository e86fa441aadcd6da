package paymentrepo

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/payment"
	"orderdesk/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payment together with its split legs.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, splits := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(dto).Error; err != nil {
		return err
	}
	if len(splits) > 0 {
		if err := r.db.WithContext(ctx).Create(&splits).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves status and gateway fields of an existing payment and
// inserts any split legs added since it was loaded. Existing split rows
// are immutable, so re-inserts are skipped on conflict.
func (r *GormPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, splits := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "gateway", "external_id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(splits) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&splits).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a payment with its splits by ID.
func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", id.String())
		}
		return nil, err
	}

	return r.load(ctx, &dto)
}

// GetByExternalID retrieves a payment by the gateway's identifier.
func (r *GormPaymentRepository) GetByExternalID(ctx context.Context, externalID string) (*payment.Payment, error) {
	if externalID == "" {
		return nil, errs.NewValueIsRequiredError("externalID")
	}

	var dto PaymentDTO
	err := r.db.WithContext(ctx).First(&dto, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", externalID)
		}
		return nil, err
	}

	return r.load(ctx, &dto)
}

func (r *GormPaymentRepository) load(ctx context.Context, dto *PaymentDTO) (*payment.Payment, error) {
	var splits []SplitDTO
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", dto.ID).
		Order("position").
		Find(&splits).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, splits)
}
