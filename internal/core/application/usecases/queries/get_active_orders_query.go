// Package queries contains read-side operations. Query handlers bypass the
// aggregate layer and read projections straight from the database.
package queries

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

// ErrGetActiveOrdersQueryIsNotConstructed is returned when a
// GetActiveOrdersQuery was not created via its constructor.
var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor")

// GetActiveOrdersQuery retrieves a website's in-flight orders: everything
// that has not reached a closed state (cancelled, expired, archived or
// client-accepted).
type GetActiveOrdersQuery struct {
	websiteID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query scoped to one website.
func NewGetActiveOrdersQuery(websiteID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := websiteID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		websiteID: websiteID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// WebsiteID returns the website the query is scoped to.
func (q GetActiveOrdersQuery) WebsiteID() kernel.UUID {
	return q.websiteID
}

// GetActiveOrdersQueryResponse is one in-flight order row.
type GetActiveOrdersQueryResponse struct {
	ID         kernel.UUID
	Title      string
	Status     string
	WriterID   *kernel.UUID
	TotalPrice string
	Deadline   time.Time
	IsLate     bool
}
