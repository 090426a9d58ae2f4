package inventory

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction classifies a recorded batch mutation
type AuditAction string

const (
	AuditActionCreated AuditAction = "created"
	AuditActionUpdated AuditAction = "updated"
	AuditActionRemoved AuditAction = "removed"
)

// AuditEntry records one explicit operator mutation of a batch. Entries are
// appended in the same transaction as the mutation they describe and are
// never updated or deleted. The BatchID reference is non-owning: it stays
// meaningful after the batch row itself is removed.
type AuditEntry struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	BatchID    int64       `gorm:"not null;index"`
	Action     AuditAction `gorm:"type:varchar(20);not null"`
	Detail     string      `gorm:"type:text;not null"`
	OccurredAt time.Time   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AuditEntry) TableName() string {
	return "batch_audit"
}

// NewAuditEntry creates an audit entry for a batch mutation
func NewAuditEntry(batchID int64, action AuditAction, detail string, occurredAt time.Time) *AuditEntry {
	if detail == "" {
		detail = "{}"
	}
	return &AuditEntry{
		ID:         uuid.New(),
		BatchID:    batchID,
		Action:     action,
		Detail:     detail,
		OccurredAt: occurredAt,
	}
}
