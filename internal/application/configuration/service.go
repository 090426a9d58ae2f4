package configuration

import (
	"context"

	"github.com/lotledger/core/internal/domain/configuration"
	"github.com/lotledger/core/internal/domain/inventory"
	"github.com/lotledger/core/internal/domain/shared"
)

// RegistryService manages the controlled vocabularies (grades and stages)
// that inventory batches reference.
type RegistryService struct {
	entries configuration.Repository
	batches inventory.BatchRepository
	tx      shared.TransactionManager
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(
	entries configuration.Repository,
	batches inventory.BatchRepository,
	tx shared.TransactionManager,
) *RegistryService {
	return &RegistryService{
		entries: entries,
		batches: batches,
		tx:      tx,
	}
}

// Add creates a new configuration entry
func (s *RegistryService) Add(ctx context.Context, kind configuration.Kind, name string) (*configuration.Entry, error) {
	entry, err := configuration.NewEntry(kind, name)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		exists, err := s.entries.ExistsByKindAndName(ctx, kind, name)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrDuplicateEntry
		}
		return s.entries.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Get returns one configuration entry by id
func (s *RegistryService) Get(ctx context.Context, id int64) (*configuration.Entry, error) {
	return s.entries.FindByID(ctx, id)
}

// List returns all entries of one vocabulary, ordered by id ascending.
// Insertion order is stable because ids are assigned monotonically.
func (s *RegistryService) List(ctx context.Context, kind configuration.Kind) ([]configuration.Entry, error) {
	if !kind.IsValid() {
		return nil, shared.ErrInvalidKind
	}
	return s.entries.FindByKind(ctx, kind)
}

// Remove deletes a configuration entry. Deletion is rejected while any batch
// still references the entry as its grade or stage; the guard and the delete
// run in one transaction so a concurrent batch write cannot slip between
// them. There is no cascading delete.
func (s *RegistryService) Remove(ctx context.Context, id int64) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.entries.FindByID(ctx, id); err != nil {
			return err
		}

		refs, err := s.batches.CountByConfiguration(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return shared.ErrReferencedByBatch
		}

		return s.entries.Delete(ctx, id)
	})
}
