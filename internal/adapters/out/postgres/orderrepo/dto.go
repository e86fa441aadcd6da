// Package orderrepo implements order persistence on PostgreSQL via GORM.
package orderrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row representation of an order aggregate.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WebsiteID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	ClientID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	Title              string     `gorm:"not null"`
	Pages              int        `gorm:"not null"`
	Slides             int        `gorm:"not null"`
	Status             string     `gorm:"index;not null"`
	WriterID           *uuid.UUID `gorm:"type:uuid;index"`
	PreferredWriterID  *uuid.UUID `gorm:"type:uuid"`
	BasePrice          string     `gorm:"type:numeric(12,2);not null"`
	TotalPrice         string     `gorm:"type:numeric(12,2);not null"`
	WriterCompensation string     `gorm:"type:numeric(12,2);not null"`
	Deadline           time.Time  `gorm:"index;not null"`
	CompletedAt        *time.Time
	IsUrgent           bool `gorm:"not null"`
	IsCritical         bool `gorm:"not null"`
	IsLate             bool `gorm:"not null"`
	RequiresEditing    bool `gorm:"not null"`
	DiscountCode       *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the default GORM table name.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:                 o.ID().Bytes(),
		WebsiteID:          o.WebsiteID().Bytes(),
		ClientID:           o.ClientID().Bytes(),
		Title:              o.Title(),
		Pages:              o.Pages(),
		Slides:             o.Slides(),
		Status:             o.Status().String(),
		BasePrice:          o.BasePrice().String(),
		TotalPrice:         o.TotalPrice().String(),
		WriterCompensation: o.WriterCompensation().String(),
		Deadline:           o.Deadline(),
		CompletedAt:        o.CompletedAt(),
		IsUrgent:           o.IsUrgent(),
		IsCritical:         o.IsCritical(),
		IsLate:             o.IsLate(),
		RequiresEditing:    o.RequiresEditing(),
		DiscountCode:       o.DiscountCode(),
	}

	if w := o.Writer(); w != nil {
		id := w.Bytes()
		dto.WriterID = &id
	}
	if p := o.PreferredWriter(); p != nil {
		id := p.Bytes()
		dto.PreferredWriterID = &id
	}

	return dto
}

func toDomain(dto *OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}
	websiteID, err := kernel.UUIDFromString(dto.WebsiteID.String())
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromString(dto.ClientID.String())
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var writerID, preferredWriterID *kernel.UUID
	if dto.WriterID != nil {
		w, err := kernel.UUIDFromString(dto.WriterID.String())
		if err != nil {
			return nil, err
		}
		writerID = &w
	}
	if dto.PreferredWriterID != nil {
		p, err := kernel.UUIDFromString(dto.PreferredWriterID.String())
		if err != nil {
			return nil, err
		}
		preferredWriterID = &p
	}

	basePrice, err := kernel.NewMoneyFromString(dto.BasePrice)
	if err != nil {
		return nil, err
	}
	totalPrice, err := kernel.NewMoneyFromString(dto.TotalPrice)
	if err != nil {
		return nil, err
	}
	writerCompensation, err := kernel.NewMoneyFromString(dto.WriterCompensation)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, websiteID, clientID,
		dto.Title,
		dto.Pages, dto.Slides,
		status,
		writerID, preferredWriterID,
		basePrice, totalPrice, writerCompensation,
		dto.Deadline,
		dto.CompletedAt,
		dto.IsUrgent, dto.IsCritical, dto.IsLate, dto.RequiresEditing,
		dto.DiscountCode,
	)
}
