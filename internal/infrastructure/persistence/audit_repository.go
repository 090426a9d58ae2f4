package persistence

import (
	"context"

	"github.com/lotledger/core/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormAuditRepository implements inventory.AuditRepository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append records an audit entry. The trail is append-only.
func (r *GormAuditRepository) Append(ctx context.Context, entry *inventory.AuditEntry) error {
	return conn(ctx, r.db).Create(entry).Error
}

// FindByBatch returns the audit trail of a batch, oldest first
func (r *GormAuditRepository) FindByBatch(ctx context.Context, batchID int64) ([]inventory.AuditEntry, error) {
	var entries []inventory.AuditEntry
	if err := conn(ctx, r.db).
		Where("batch_id = ?", batchID).
		Order("occurred_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormAuditRepository implements inventory.AuditRepository
var _ inventory.AuditRepository = (*GormAuditRepository)(nil)
