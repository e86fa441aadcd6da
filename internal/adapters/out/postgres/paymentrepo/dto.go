// Package paymentrepo implements payment persistence on PostgreSQL via GORM.
package paymentrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO is the database row representation of a payment aggregate.
type PaymentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	WebsiteID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount         string    `gorm:"type:numeric(12,2);not null"`
	OriginalAmount string    `gorm:"type:numeric(12,2);not null"`
	DiscountCode   *string
	Status         string `gorm:"index;not null"`
	Gateway        string
	ExternalID     string    `gorm:"index"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time
}

// TableName overrides the default GORM table name.
func (PaymentDTO) TableName() string {
	return "payments"
}

// SplitDTO is one funding-source leg of a payment. Split rows are written
// once; Position preserves the order legs were drained in.
type SplitDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PaymentID uuid.UUID `gorm:"type:uuid;index;not null"`
	Method    string    `gorm:"not null"`
	Amount    string    `gorm:"type:numeric(12,2);not null"`
	Position  int       `gorm:"not null"`
}

// TableName overrides the default GORM table name.
func (SplitDTO) TableName() string {
	return "payment_splits"
}

func fromDomain(p *payment.Payment) (*PaymentDTO, []SplitDTO) {
	dto := &PaymentDTO{
		ID:             p.ID().Bytes(),
		OrderID:        p.OrderID().Bytes(),
		WebsiteID:      p.WebsiteID().Bytes(),
		Amount:         p.Amount().String(),
		OriginalAmount: p.OriginalAmount().String(),
		DiscountCode:   p.DiscountCode(),
		Status:         p.Status().String(),
		Gateway:        p.Gateway(),
		ExternalID:     p.ExternalID(),
		CreatedAt:      p.CreatedAt(),
	}

	splits := p.Splits()
	splitDTOs := make([]SplitDTO, 0, len(splits))
	for i, s := range splits {
		splitDTOs = append(splitDTOs, SplitDTO{
			ID:        s.ID.Bytes(),
			PaymentID: s.PaymentID.Bytes(),
			Method:    s.Method.String(),
			Amount:    s.Amount.String(),
			Position:  i,
		})
	}

	return dto, splitDTOs
}

func toDomain(dto *PaymentDTO, splitDTOs []SplitDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(dto.OrderID.String())
	if err != nil {
		return nil, err
	}
	websiteID, err := kernel.UUIDFromString(dto.WebsiteID.String())
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoneyFromString(dto.Amount)
	if err != nil {
		return nil, err
	}
	originalAmount, err := kernel.NewMoneyFromString(dto.OriginalAmount)
	if err != nil {
		return nil, err
	}

	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	splits := make([]payment.Split, 0, len(splitDTOs))
	for i := range splitDTOs {
		split, err := splitToDomain(&splitDTOs[i])
		if err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}

	return payment.RestorePayment(
		id, orderID, websiteID,
		amount, originalAmount,
		dto.DiscountCode,
		status,
		splits,
		dto.Gateway, dto.ExternalID,
		dto.CreatedAt,
	)
}

func splitToDomain(dto *SplitDTO) (payment.Split, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return payment.Split{}, err
	}
	paymentID, err := kernel.UUIDFromString(dto.PaymentID.String())
	if err != nil {
		return payment.Split{}, err
	}

	method, err := payment.MethodFromString(dto.Method)
	if err != nil {
		return payment.Split{}, err
	}

	amount, err := kernel.NewMoneyFromString(dto.Amount)
	if err != nil {
		return payment.Split{}, err
	}

	return payment.Split{
		ID:        id,
		PaymentID: paymentID,
		Method:    method,
		Amount:    amount,
	}, nil
}
