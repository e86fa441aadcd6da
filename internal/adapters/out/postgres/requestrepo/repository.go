package requestrepo

import (
	"context"
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/request"
	"orderdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormWriterRequestRepository implements WriterRequestRepository using GORM.
type GormWriterRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormWriterRequestRepository creates a new GORM writer request repository.
func NewGormWriterRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormWriterRequestRepository {
	return &GormWriterRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new writer request to the database.
func (r *GormWriterRequestRepository) Add(ctx context.Context, aggregate *request.WriterRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := writerRequestFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the approval flags of an existing writer request.
func (r *GormWriterRequestRepository) Update(ctx context.Context, aggregate *request.WriterRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := writerRequestFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WriterRequestDTO{}).
		Where("id = ?", dto.ID).
		Select("client_approved", "admin_approved", "paid", "applied").
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

// Get retrieves a writer request by ID.
func (r *GormWriterRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.WriterRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WriterRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("writer request", id.String())
		}
		return nil, err
	}

	return writerRequestToDomain(&dto)
}

// GetByOrder retrieves all writer requests for an order, newest first.
func (r *GormWriterRequestRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*request.WriterRequest, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []WriterRequestDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*request.WriterRequest, 0, len(dtos))
	for i := range dtos {
		req, err := writerRequestToDomain(&dtos[i])
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// GormReassignmentRequestRepository implements ReassignmentRequestRepository
// using GORM.
type GormReassignmentRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormReassignmentRequestRepository creates a new GORM reassignment
// request repository.
func NewGormReassignmentRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormReassignmentRequestRepository {
	return &GormReassignmentRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new reassignment request. At most one pending request may
// exist per order; the check runs inside the caller's transaction, where
// the order row is already locked, so concurrent creators serialize.
func (r *GormReassignmentRequestRepository) Add(ctx context.Context, aggregate *request.ReassignmentRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var pending int64
	err := r.db.WithContext(ctx).
		Model(&ReassignmentRequestDTO{}).
		Where("order_id = ? AND status = ?",
			aggregate.OrderID().Bytes(), request.ReassignmentPending.String()).
		Count(&pending).Error
	if err != nil {
		return err
	}
	if pending > 0 {
		return errs.NewValueIsInvalidErrorWithCause("reassignment request",
			fmt.Errorf("order %s already has a pending reassignment request", aggregate.OrderID()))
	}

	dto := reassignmentFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the resolution of an existing reassignment request.
func (r *GormReassignmentRequestRepository) Update(ctx context.Context, aggregate *request.ReassignmentRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := reassignmentFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ReassignmentRequestDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "fine", "resolved_at").
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

// Get retrieves a reassignment request by ID.
func (r *GormReassignmentRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.ReassignmentRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReassignmentRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reassignment request", id.String())
		}
		return nil, err
	}

	return reassignmentToDomain(&dto)
}

// GetPendingByOrder retrieves the pending reassignment request for an
// order, if any.
func (r *GormReassignmentRequestRepository) GetPendingByOrder(ctx context.Context, orderID kernel.UUID) (*request.ReassignmentRequest, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ReassignmentRequestDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND status = ?",
			orderID.Bytes(), request.ReassignmentPending.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reassignment request",
				fmt.Sprintf("pending for order %s", orderID))
		}
		return nil, err
	}

	return reassignmentToDomain(&dto)
}
