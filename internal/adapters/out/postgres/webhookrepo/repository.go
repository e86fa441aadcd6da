package webhookrepo

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/webhook"
	"orderdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWebhookSettingsRepository implements WebhookSettingsRepository using GORM.
type GormWebhookSettingsRepository struct {
	db *gorm.DB
}

// NewGormWebhookSettingsRepository creates a new GORM webhook settings repository.
func NewGormWebhookSettingsRepository(db *gorm.DB) *GormWebhookSettingsRepository {
	return &GormWebhookSettingsRepository{db: db}
}

// GetByUser retrieves the user's notification settings.
func (r *GormWebhookSettingsRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*webhook.Settings, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto SettingsDTO
	err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("webhook settings", userID.String())
		}
		return nil, err
	}

	return settingsToDomain(&dto)
}

// GormWebhookDeliveryRepository implements WebhookDeliveryRepository using GORM.
type GormWebhookDeliveryRepository struct {
	db *gorm.DB
}

// NewGormWebhookDeliveryRepository creates a new GORM webhook delivery repository.
func NewGormWebhookDeliveryRepository(db *gorm.DB) *GormWebhookDeliveryRepository {
	return &GormWebhookDeliveryRepository{db: db}
}

// Append records one delivery attempt.
func (r *GormWebhookDeliveryRepository) Append(ctx context.Context, log *webhook.DeliveryLog) error {
	if log == nil {
		return errs.NewValueIsRequiredError("delivery log")
	}

	dto := deliveryFromDomain(log)
	return r.db.WithContext(ctx).Create(dto).Error
}

// Get retrieves one delivery-log row by ID.
func (r *GormWebhookDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*webhook.DeliveryLog, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryLogDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("webhook delivery", id.String())
		}
		return nil, err
	}

	return deliveryToDomain(&dto)
}

// GetFailed retrieves failed final attempts not yet redelivered, oldest
// first. Only the last attempt of a delivery run qualifies; earlier
// attempts were already retried inline by the sender.
func (r *GormWebhookDeliveryRepository) GetFailed(ctx context.Context, limit int) ([]*webhook.DeliveryLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var dtos []DeliveryLogDTO
	err := r.db.WithContext(ctx).
		Where("succeeded = false AND retried_at IS NULL AND attempt >= ?", webhook.MaxAttempts).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	logs := make([]*webhook.DeliveryLog, 0, len(dtos))
	for i := range dtos {
		log, err := deliveryToDomain(&dtos[i])
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, nil
}

// MarkRetried stamps a failed row as redelivered.
func (r *GormWebhookDeliveryRepository) MarkRetried(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DeliveryLogDTO{}).
		Where("id = ?", id.Bytes()).
		Update("retried_at", time.Now().UTC())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("webhook delivery", id.String())
	}

	return nil
}
