package persistence

import (
	"context"
	"errors"

	"github.com/lotledger/core/internal/domain/catalog"
	"github.com/lotledger/core/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTemplateRepository implements catalog.TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a product template by its ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id int64) (*catalog.ProductTemplate, error) {
	var template catalog.ProductTemplate
	if err := conn(ctx, r.db).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindAll lists all product templates, ordered by id ascending
func (r *GormTemplateRepository) FindAll(ctx context.Context) ([]catalog.ProductTemplate, error) {
	var templates []catalog.ProductTemplate
	if err := conn(ctx, r.db).
		Order("id ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// ExistsByName checks whether a template with the given name exists
func (r *GormTemplateRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&catalog.ProductTemplate{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates a product template. Templates are immutable once stored, so
// this is only ever an insert.
func (r *GormTemplateRepository) Save(ctx context.Context, template *catalog.ProductTemplate) error {
	return conn(ctx, r.db).Save(template).Error
}

// Ensure GormTemplateRepository implements catalog.TemplateRepository
var _ catalog.TemplateRepository = (*GormTemplateRepository)(nil)
