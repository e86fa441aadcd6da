package queries

import (
	"context"
	"database/sql"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads in-flight orders for one website.
// The closed statuses are excluded in SQL so the projection stays cheap on
// large order tables.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by deadline so the most
// urgent work lists first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			title,
			status,
			writer_id,
			total_price,
			deadline,
			is_late
		FROM orders
		WHERE website_id = ?
		  AND status NOT IN (?, ?, ?, ?, ?, ?)
		ORDER BY deadline
	`, query.WebsiteID().Bytes(),
		order.StatusCancelled.String(), order.StatusExpired.String(),
		order.StatusArchived.String(), order.StatusApproved.String(),
		order.StatusRated.String(), order.StatusReviewed.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var writerID uuid.NullUUID
		var deadline time.Time
		var totalPrice sql.NullString

		if err = rows.Scan(
			&id, &resp.Title, &resp.Status, &writerID,
			&totalPrice, &deadline, &resp.IsLate,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Deadline = deadline
		if totalPrice.Valid {
			resp.TotalPrice = totalPrice.String
		}

		if writerID.Valid {
			wid, widErr := kernel.UUIDFromBytes(writerID.UUID[:])
			if widErr != nil {
				return nil, widErr
			}
			resp.WriterID = &wid
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
