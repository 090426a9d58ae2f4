package inventory

import (
	"context"

	"github.com/shopspring/decimal"
)

// BatchFilter narrows a batch listing. All set predicates are conjunctive.
type BatchFilter struct {
	TypeID     *int64
	GradeID    *int64
	StageID    *int64
	NamePrefix string
}

// StageTotals aggregates the batches of one stage
type StageTotals struct {
	TotalWeight decimal.Decimal
	BatchCount  int64
}

// BatchRepository defines the interface for inventory batch persistence
type BatchRepository interface {
	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id int64) (*InventoryBatch, error)

	// FindAll returns batches matching the filter ordered by id ascending
	FindAll(ctx context.Context, filter BatchFilter) ([]InventoryBatch, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *InventoryBatch) error

	// Delete removes a batch by ID
	Delete(ctx context.Context, id int64) error

	// CountByConfiguration counts batches referencing a configuration entry
	// as grade or stage
	CountByConfiguration(ctx context.Context, configurationID int64) (int64, error)

	// StageTotals sums weight and counts batches for one stage
	StageTotals(ctx context.Context, stageID int64) (StageTotals, error)
}

// AuditRepository defines the interface for the batch audit trail
type AuditRepository interface {
	// Append stores a new audit entry
	Append(ctx context.Context, entry *AuditEntry) error

	// FindByBatch returns all entries for a batch ordered by occurrence
	FindByBatch(ctx context.Context, batchID int64) ([]AuditEntry, error)
}
