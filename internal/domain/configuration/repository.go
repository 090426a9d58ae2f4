package configuration

import (
	"context"
)

// Repository defines the interface for configuration entry persistence
type Repository interface {
	// FindByID finds an entry by its ID
	FindByID(ctx context.Context, id int64) (*Entry, error)

	// FindByIDAndKind finds an entry by ID restricted to one vocabulary
	FindByIDAndKind(ctx context.Context, id int64, kind Kind) (*Entry, error)

	// FindByKind returns all entries of a vocabulary ordered by id ascending
	FindByKind(ctx context.Context, kind Kind) ([]Entry, error)

	// ExistsByKindAndName checks whether (kind, name) is already taken
	ExistsByKindAndName(ctx context.Context, kind Kind, name string) (bool, error)

	// CountByKind counts entries of a vocabulary
	CountByKind(ctx context.Context, kind Kind) (int64, error)

	// Save creates or updates an entry
	Save(ctx context.Context, entry *Entry) error

	// Delete removes an entry by ID
	Delete(ctx context.Context, id int64) error
}
