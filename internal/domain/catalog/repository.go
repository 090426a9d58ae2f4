package catalog

import (
	"context"
)

// TemplateRepository defines the interface for product template persistence
type TemplateRepository interface {
	// FindByID finds a template by its ID
	FindByID(ctx context.Context, id int64) (*ProductTemplate, error)

	// FindAll returns all templates ordered by id ascending
	FindAll(ctx context.Context) ([]ProductTemplate, error)

	// ExistsByName checks whether a template name is already taken
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Save creates or updates a template
	Save(ctx context.Context, template *ProductTemplate) error
}
