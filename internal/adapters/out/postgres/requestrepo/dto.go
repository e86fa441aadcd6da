// Package requestrepo implements persistence for writer change requests
// and reassignment requests on PostgreSQL via GORM.
package requestrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// WriterRequestDTO is the database row representation of a writer request.
type WriterRequestDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	WriterID       uuid.UUID `gorm:"type:uuid;index;not null"`
	RequestType    string    `gorm:"not null"`
	Reason         string    `gorm:"not null"`
	NewDeadline    *time.Time
	ExtraUnits     int
	ExtraCost      string    `gorm:"type:numeric(12,2);not null"`
	ClientApproved bool      `gorm:"not null"`
	AdminApproved  bool      `gorm:"not null"`
	Paid           bool      `gorm:"not null"`
	Applied        bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time
}

// TableName overrides the default GORM table name.
func (WriterRequestDTO) TableName() string {
	return "writer_requests"
}

// ReassignmentRequestDTO is the database row representation of a
// reassignment request.
type ReassignmentRequestDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index;not null"`
	RequesterID     uuid.UUID `gorm:"type:uuid;not null"`
	Reason          string    `gorm:"not null"`
	PreferredWriter *uuid.UUID `gorm:"type:uuid"`
	Status          string     `gorm:"index;not null"`
	Fine            string     `gorm:"type:numeric(12,2);not null"`
	CreatedAt       time.Time  `gorm:"not null"`
	ResolvedAt      *time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default GORM table name.
func (ReassignmentRequestDTO) TableName() string {
	return "reassignment_requests"
}

func writerRequestFromDomain(r *request.WriterRequest) *WriterRequestDTO {
	return &WriterRequestDTO{
		ID:             r.ID().Bytes(),
		OrderID:        r.OrderID().Bytes(),
		WriterID:       r.WriterID().Bytes(),
		RequestType:    r.Type().String(),
		Reason:         r.Reason(),
		NewDeadline:    r.NewDeadline(),
		ExtraUnits:     r.ExtraUnits(),
		ExtraCost:      r.ExtraCost().String(),
		ClientApproved: r.ClientApproved(),
		AdminApproved:  r.AdminApproved(),
		Paid:           r.Paid(),
		Applied:        r.Applied(),
		CreatedAt:      r.CreatedAt(),
	}
}

func writerRequestToDomain(dto *WriterRequestDTO) (*request.WriterRequest, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(dto.OrderID.String())
	if err != nil {
		return nil, err
	}
	writerID, err := kernel.UUIDFromString(dto.WriterID.String())
	if err != nil {
		return nil, err
	}

	requestType, err := request.WriterRequestTypeFromString(dto.RequestType)
	if err != nil {
		return nil, err
	}

	extraCost, err := kernel.NewMoneyFromString(dto.ExtraCost)
	if err != nil {
		return nil, err
	}

	return request.RestoreWriterRequest(
		id, orderID, writerID,
		requestType,
		dto.Reason,
		dto.NewDeadline,
		dto.ExtraUnits,
		extraCost,
		dto.ClientApproved, dto.AdminApproved, dto.Paid, dto.Applied,
		dto.CreatedAt,
	)
}

func reassignmentFromDomain(r *request.ReassignmentRequest) *ReassignmentRequestDTO {
	dto := &ReassignmentRequestDTO{
		ID:          r.ID().Bytes(),
		OrderID:     r.OrderID().Bytes(),
		RequesterID: r.RequesterID().Bytes(),
		Reason:      r.Reason(),
		Status:      r.Status().String(),
		Fine:        r.Fine().String(),
		CreatedAt:   r.CreatedAt(),
		ResolvedAt:  r.ResolvedAt(),
	}

	if p := r.PreferredWriter(); p != nil {
		id := p.Bytes()
		dto.PreferredWriter = &id
	}

	return dto
}

func reassignmentToDomain(dto *ReassignmentRequestDTO) (*request.ReassignmentRequest, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(dto.OrderID.String())
	if err != nil {
		return nil, err
	}
	requesterID, err := kernel.UUIDFromString(dto.RequesterID.String())
	if err != nil {
		return nil, err
	}

	var preferredWriter *kernel.UUID
	if dto.PreferredWriter != nil {
		p, err := kernel.UUIDFromString(dto.PreferredWriter.String())
		if err != nil {
			return nil, err
		}
		preferredWriter = &p
	}

	status, err := request.ReassignmentStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	fine, err := kernel.NewMoneyFromString(dto.Fine)
	if err != nil {
		return nil, err
	}

	return request.RestoreReassignmentRequest(
		id, orderID, requesterID,
		dto.Reason,
		preferredWriter,
		status,
		fine,
		dto.CreatedAt,
		dto.ResolvedAt,
	)
}
