// Package audit defines the append-only audit record written after every
// successful order action. Entries are created explicitly by the action
// dispatcher at the end of each mutation; they are never updated or
// deleted by normal flow.
package audit

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// Actor identifies who performed an action.
type Actor struct {
	ID   kernel.UUID
	Name string
	Role string
}

// Change records one field's before and after values.
type Change struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Entry is one append-only audit record: who did what to which resource, when.
type Entry struct {
	ID         kernel.UUID
	Action     string
	Actor      Actor
	TargetType string
	TargetID   string
	Metadata   map[string]any
	Changes    map[string]Change
	IPAddress  string
	UserAgent  string
	Notes      string
	RequestID  string
	CreatedAt  time.Time
}

// NewEntry creates an audit entry for an action against a target resource.
// Metadata and changes are optional; nil maps are stored as empty objects.
func NewEntry(
	action string,
	actor Actor,
	targetType, targetID string,
	metadata map[string]any,
	changes map[string]Change,
) (*Entry, error) {
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if err := actor.ID.Validate(); err != nil {
		return nil, err
	}
	if targetType == "" || targetID == "" {
		return nil, errs.NewValueIsRequiredError("target")
	}

	if metadata == nil {
		metadata = map[string]any{}
	}
	if changes == nil {
		changes = map[string]Change{}
	}

	return &Entry{
		ID:         kernel.NewUUID(),
		Action:     action,
		Actor:      actor,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   metadata,
		Changes:    changes,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// WithRequestContext attaches HTTP request attribution to the entry.
func (e *Entry) WithRequestContext(ip, userAgent, requestID string) *Entry {
	e.IPAddress = ip
	e.UserAgent = userAgent
	e.RequestID = requestID
	return e
}
