package configuration

import (
	"github.com/lotledger/core/internal/domain/shared"
)

// Kind identifies which controlled vocabulary a configuration entry belongs to
type Kind string

const (
	KindGrade Kind = "grade"
	KindStage Kind = "stage"
)

// IsValid reports whether the kind is one of the known vocabularies
func (k Kind) IsValid() bool {
	return k == KindGrade || k == KindStage
}

// Entry represents one value of a controlled vocabulary (a grade or a stage).
// Entries are never mutated in place: a correction is a delete followed by a
// recreate, so historical batch references are either valid or visibly absent.
type Entry struct {
	shared.BaseEntity
	Kind Kind   `gorm:"type:varchar(20);not null;uniqueIndex:idx_configuration_kind_name,priority:1"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_configuration_kind_name,priority:2"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "configurations"
}

// NewEntry creates a new configuration entry
func NewEntry(kind Kind, name string) (*Entry, error) {
	if !kind.IsValid() {
		return nil, shared.ErrInvalidKind
	}
	if err := validateEntryName(name); err != nil {
		return nil, err
	}

	return &Entry{
		Kind: kind,
		Name: name,
	}, nil
}

// validateEntryName validates the entry name
func validateEntryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Configuration name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Configuration name cannot exceed 100 characters")
	}
	return nil
}
