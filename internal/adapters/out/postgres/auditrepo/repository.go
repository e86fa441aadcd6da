// Package auditrepo persists the append-only audit trail on PostgreSQL.
// Audit rows are written outside the action's transaction: a failed audit
// write must never roll back the action it describes.
package auditrepo

import (
	"context"
	"encoding/json"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntryDTO is the database row representation of an audit entry.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Action     string    `gorm:"index;not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ActorName  string    `gorm:"not null"`
	ActorRole  string    `gorm:"not null"`
	TargetType string    `gorm:"index:idx_audit_target;not null"`
	TargetID   string    `gorm:"index:idx_audit_target;not null"`
	Metadata   datatypes.JSON
	Changes    datatypes.JSON
	IPAddress  string
	UserAgent  string
	Notes      string
	RequestID  string
	CreatedAt  time.Time `gorm:"index;not null"`
}

// TableName overrides the default GORM table name.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

// GormAuditLogger implements AuditLogger using GORM.
type GormAuditLogger struct {
	db *gorm.DB
}

// NewGormAuditLogger creates a new GORM audit logger.
func NewGormAuditLogger(db *gorm.DB) *GormAuditLogger {
	return &GormAuditLogger{db: db}
}

// Log appends one audit entry. Entries are never updated or deleted.
func (l *GormAuditLogger) Log(ctx context.Context, entry *audit.Entry) error {
	if entry == nil {
		return errs.NewValueIsRequiredError("entry")
	}

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return err
	}
	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return err
	}

	dto := &EntryDTO{
		ID:         entry.ID.Bytes(),
		Action:     entry.Action,
		ActorID:    entry.Actor.ID.Bytes(),
		ActorName:  entry.Actor.Name,
		ActorRole:  entry.Actor.Role,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Metadata:   datatypes.JSON(metadata),
		Changes:    datatypes.JSON(changes),
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		Notes:      entry.Notes,
		RequestID:  entry.RequestID,
		CreatedAt:  entry.CreatedAt,
	}

	return l.db.WithContext(ctx).Create(dto).Error
}

// GetByTarget retrieves the audit trail for one resource, newest first.
func (l *GormAuditLogger) GetByTarget(ctx context.Context, targetType, targetID string, limit int) ([]*audit.Entry, error) {
	if targetType == "" || targetID == "" {
		return nil, errs.NewValueIsRequiredError("target")
	}
	if limit <= 0 {
		limit = 50
	}

	var dtos []EntryDTO
	err := l.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for i := range dtos {
		entry, err := toDomain(&dtos[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func toDomain(dto *EntryDTO) (*audit.Entry, error) {
	var metadata map[string]any
	if len(dto.Metadata) > 0 {
		if err := json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	var changes map[string]audit.Change
	if len(dto.Changes) > 0 {
		if err := json.Unmarshal(dto.Changes, &changes); err != nil {
			return nil, err
		}
	}

	id, err := kernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	actorID, err := kernelUUID(dto.ActorID)
	if err != nil {
		return nil, err
	}

	entry := &audit.Entry{
		ID:     id,
		Action: dto.Action,
		Actor: audit.Actor{
			ID:   actorID,
			Name: dto.ActorName,
			Role: dto.ActorRole,
		},
		TargetType: dto.TargetType,
		TargetID:   dto.TargetID,
		Metadata:   metadata,
		Changes:    changes,
		IPAddress:  dto.IPAddress,
		UserAgent:  dto.UserAgent,
		Notes:      dto.Notes,
		RequestID:  dto.RequestID,
		CreatedAt:  dto.CreatedAt,
	}

	return entry, nil
}

func kernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromString(id.String())
}
