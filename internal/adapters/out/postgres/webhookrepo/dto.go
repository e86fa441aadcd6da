// Package webhookrepo persists notification settings and the webhook
// delivery log on PostgreSQL via GORM.
package webhookrepo

import (
	"encoding/json"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/webhook"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SettingsDTO is one user's notification configuration row.
type SettingsDTO struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Enabled   bool      `gorm:"not null"`
	Platform  string    `gorm:"not null"`
	URL       string    `gorm:"not null"`
	Events    datatypes.JSON
	TestMode  bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default GORM table name.
func (SettingsDTO) TableName() string {
	return "webhook_settings"
}

// DeliveryLogDTO is one append-only delivery attempt row.
type DeliveryLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Event      string    `gorm:"not null"`
	URL        string    `gorm:"not null"`
	Payload    datatypes.JSON
	Attempt    int    `gorm:"not null"`
	StatusCode int    `gorm:"not null"`
	Response   string `gorm:"not null"`
	Succeeded  bool   `gorm:"index;not null"`
	RetriedAt  *time.Time
	CreatedAt  time.Time `gorm:"index;not null"`
}

// TableName overrides the default GORM table name.
func (DeliveryLogDTO) TableName() string {
	return "webhook_deliveries"
}

func settingsToDomain(dto *SettingsDTO) (*webhook.Settings, error) {
	userID, err := kernel.UUIDFromString(dto.UserID.String())
	if err != nil {
		return nil, err
	}

	platform, err := webhook.PlatformFromString(dto.Platform)
	if err != nil {
		return nil, err
	}

	var events []string
	if len(dto.Events) > 0 {
		if err := json.Unmarshal(dto.Events, &events); err != nil {
			return nil, err
		}
	}

	return &webhook.Settings{
		UserID:   userID,
		Enabled:  dto.Enabled,
		Platform: platform,
		URL:      dto.URL,
		Events:   events,
		TestMode: dto.TestMode,
	}, nil
}

func deliveryFromDomain(l *webhook.DeliveryLog) *DeliveryLogDTO {
	return &DeliveryLogDTO{
		ID:         l.ID.Bytes(),
		UserID:     l.UserID.Bytes(),
		Event:      l.Event,
		URL:        l.URL,
		Payload:    datatypes.JSON(l.Payload),
		Attempt:    l.Attempt,
		StatusCode: l.StatusCode,
		Response:   l.Response,
		Succeeded:  l.Succeeded,
		RetriedAt:  l.RetriedAt,
		CreatedAt:  l.CreatedAt,
	}
}

func deliveryToDomain(dto *DeliveryLogDTO) (*webhook.DeliveryLog, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromString(dto.UserID.String())
	if err != nil {
		return nil, err
	}

	return &webhook.DeliveryLog{
		ID:         id,
		UserID:     userID,
		Event:      dto.Event,
		URL:        dto.URL,
		Payload:    []byte(dto.Payload),
		Attempt:    dto.Attempt,
		StatusCode: dto.StatusCode,
		Response:   dto.Response,
		Succeeded:  dto.Succeeded,
		RetriedAt:  dto.RetriedAt,
		CreatedAt:  dto.CreatedAt,
	}, nil
}
