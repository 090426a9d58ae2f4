package persistence

import (
	"context"
	"errors"

	"github.com/lotledger/core/internal/domain/configuration"
	"github.com/lotledger/core/internal/domain/shared"
	"gorm.io/gorm"
)

// GormConfigurationRepository implements configuration.Repository using GORM
type GormConfigurationRepository struct {
	db *gorm.DB
}

// NewGormConfigurationRepository creates a new GormConfigurationRepository
func NewGormConfigurationRepository(db *gorm.DB) *GormConfigurationRepository {
	return &GormConfigurationRepository{db: db}
}

// FindByID finds a configuration entry by its ID
func (r *GormConfigurationRepository) FindByID(ctx context.Context, id int64) (*configuration.Entry, error) {
	var entry configuration.Entry
	if err := conn(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByIDAndKind finds a configuration entry by ID, constrained to one kind.
// An entry stored under a different kind reports NotFound.
func (r *GormConfigurationRepository) FindByIDAndKind(ctx context.Context, id int64, kind configuration.Kind) (*configuration.Entry, error) {
	var entry configuration.Entry
	if err := conn(ctx, r.db).
		Where("id = ? AND kind = ?", id, kind).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByKind lists all entries of one kind, ordered by id ascending
func (r *GormConfigurationRepository) FindByKind(ctx context.Context, kind configuration.Kind) ([]configuration.Entry, error) {
	var entries []configuration.Entry
	if err := conn(ctx, r.db).
		Where("kind = ?", kind).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ExistsByKindAndName checks whether an entry with the given kind and name exists
func (r *GormConfigurationRepository) ExistsByKindAndName(ctx context.Context, kind configuration.Kind, name string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&configuration.Entry{}).
		Where("kind = ? AND name = ?", kind, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByKind counts the entries of one kind
func (r *GormConfigurationRepository) CountByKind(ctx context.Context, kind configuration.Kind) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&configuration.Entry{}).
		Where("kind = ?", kind).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a configuration entry
func (r *GormConfigurationRepository) Save(ctx context.Context, entry *configuration.Entry) error {
	return conn(ctx, r.db).Save(entry).Error
}

// Delete deletes a configuration entry
func (r *GormConfigurationRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&configuration.Entry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormConfigurationRepository implements configuration.Repository
var _ configuration.Repository = (*GormConfigurationRepository)(nil)
