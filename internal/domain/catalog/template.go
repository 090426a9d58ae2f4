package catalog

import (
	"github.com/lotledger/core/internal/domain/shared"
)

// ProductTemplate declares the expected spec structure of a product type.
// Templates are immutable after creation: editing a template would silently
// change the meaning of batches validated against it, so a new product type
// version is modeled as a new template row.
type ProductTemplate struct {
	shared.BaseEntity
	Name  string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Specs SpecDefinitions `gorm:"column:specs_document;type:text;not null"`
}

// TableName returns the table name for GORM
func (ProductTemplate) TableName() string {
	return "product_templates"
}

// NewProductTemplate creates a new product template
func NewProductTemplate(name string, specs SpecDefinitions) (*ProductTemplate, error) {
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}
	if err := specs.Validate(); err != nil {
		return nil, err
	}
	if specs == nil {
		specs = SpecDefinitions{}
	}

	return &ProductTemplate{
		Name:  name,
		Specs: specs,
	}, nil
}

// validateTemplateName validates the template name
func validateTemplateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot exceed 100 characters")
	}
	return nil
}
