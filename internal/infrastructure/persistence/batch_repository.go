package persistence

import (
	"context"
	"errors"

	"github.com/lotledger/core/internal/domain/inventory"
	"github.com/lotledger/core/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBatchRepository implements inventory.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds an inventory batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id int64) (*inventory.InventoryBatch, error) {
	var batch inventory.InventoryBatch
	if err := conn(ctx, r.db).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAll lists batches matching the filter, ordered by id ascending.
// Filter criteria combine conjunctively; the zero filter lists everything.
func (r *GormBatchRepository) FindAll(ctx context.Context, filter inventory.BatchFilter) ([]inventory.InventoryBatch, error) {
	query := conn(ctx, r.db).Model(&inventory.InventoryBatch{})

	if filter.TypeID != nil {
		query = query.Where("type_id = ?", *filter.TypeID)
	}
	if filter.GradeID != nil {
		query = query.Where("grade_id = ?", *filter.GradeID)
	}
	if filter.StageID != nil {
		query = query.Where("stage_id = ?", *filter.StageID)
	}
	if filter.NamePrefix != "" {
		query = query.Where("name LIKE ? ESCAPE '\\'", escapeLike(filter.NamePrefix)+"%")
	}

	var batches []inventory.InventoryBatch
	if err := query.Order("id ASC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Save creates or updates an inventory batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.InventoryBatch) error {
	return conn(ctx, r.db).Save(batch).Error
}

// Delete hard-deletes an inventory batch
func (r *GormBatchRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&inventory.InventoryBatch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByConfiguration counts the batches referencing a configuration entry
// through either their grade or their stage
func (r *GormBatchRepository) CountByConfiguration(ctx context.Context, configurationID int64) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&inventory.InventoryBatch{}).
		Where("grade_id = ? OR stage_id = ?", configurationID, configurationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// StageTotals aggregates weight and batch count for one stage
func (r *GormBatchRepository) StageTotals(ctx context.Context, stageID int64) (inventory.StageTotals, error) {
	var totals inventory.StageTotals
	err := conn(ctx, r.db).
		Model(&inventory.InventoryBatch{}).
		Select("COALESCE(SUM(weight), 0) AS total_weight, COUNT(*) AS batch_count").
		Where("stage_id = ?", stageID).
		Scan(&totals).Error
	if err != nil {
		return inventory.StageTotals{}, err
	}
	return totals, nil
}

// escapeLike escapes LIKE wildcards so a prefix containing % or _ matches
// literally
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Ensure GormBatchRepository implements inventory.BatchRepository
var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
