// Package settingsrepo resolves tenant-scoped configuration from
// PostgreSQL. Each website carries one settings row; structured pricing
// fields (deadline tiers, per-level fees, extra service costs) live in
// JSON columns. Missing rows resolve to package defaults so a fresh
// tenant works before any configuration is saved.
package settingsrepo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebsiteSettingsDTO is the per-tenant configuration row.
type WebsiteSettingsDTO struct {
	WebsiteID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PageRate           string    `gorm:"type:numeric(12,2);not null"`
	SlideRate          string    `gorm:"type:numeric(12,2);not null"`
	PreferredWriterFee string    `gorm:"type:numeric(12,2);not null"`
	DeadlineTiers      datatypes.JSON
	WriterLevelFees    datatypes.JSON
	ExtraServiceCosts  datatypes.JSON
	PointsRate         string `gorm:"type:numeric(12,4);not null"`
	PointsMinimum      int    `gorm:"not null"`
	RevisionWindowDays int    `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the default GORM table name.
func (WebsiteSettingsDTO) TableName() string {
	return "website_settings"
}

// deadlineTierJSON is the JSON shape of one urgency tier.
type deadlineTierJSON struct {
	HoursBefore int    `json:"hours_before"`
	Multiplier  string `json:"multiplier"`
}

// DiscountCodeDTO is one redeemable discount code scoped to a website.
type DiscountCodeDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	WebsiteID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_discount_codes_website_code"`
	Code      string    `gorm:"not null;uniqueIndex:idx_discount_codes_website_code"`
	// Kind is "fixed" (flat amount off) or "percent" (share of the gross).
	Kind      string `gorm:"not null"`
	Value     string `gorm:"type:numeric(12,2);not null"`
	Active    bool   `gorm:"not null"`
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default GORM table name.
func (DiscountCodeDTO) TableName() string {
	return "discount_codes"
}
