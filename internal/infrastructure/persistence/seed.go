package persistence

import (
	"context"
	"fmt"

	"github.com/lotledger/core/internal/domain/configuration"
	"github.com/lotledger/core/internal/domain/shared"
	"go.uber.org/zap"
)

// Default vocabularies installed on first run. A kind that already has
// entries is left untouched, so operator edits survive restarts.
var (
	defaultStages = []string{"Unbucked", "Bucked", "Rolled", "Processed"}
	defaultGrades = []string{"A", "B", "C", "Trim"}
)

// Seeder installs the default configuration vocabularies
type Seeder struct {
	entries configuration.Repository
	tx      shared.TransactionManager
	logger  *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(entries configuration.Repository, tx shared.TransactionManager, logger *zap.Logger) *Seeder {
	return &Seeder{entries: entries, tx: tx, logger: logger}
}

// Seed installs the default grades and stages for any kind that has no
// entries yet. Running it repeatedly is a no-op.
func (s *Seeder) Seed(ctx context.Context) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.seedKind(ctx, configuration.KindStage, defaultStages); err != nil {
			return err
		}
		return s.seedKind(ctx, configuration.KindGrade, defaultGrades)
	})
}

func (s *Seeder) seedKind(ctx context.Context, kind configuration.Kind, names []string) error {
	count, err := s.entries.CountByKind(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to count %s entries: %w", kind, err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range names {
		entry, err := configuration.NewEntry(kind, name)
		if err != nil {
			return err
		}
		if err := s.entries.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to seed %s %q: %w", kind, name, err)
		}
	}

	s.logger.Info("Seeded default configuration entries",
		zap.String("kind", string(kind)),
		zap.Int("count", len(names)),
	)
	return nil
}
