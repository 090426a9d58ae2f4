package main

import (
	"context"
	"fmt"
	"os"

	catalogapp "github.com/lotledger/core/internal/application/catalog"
	configurationapp "github.com/lotledger/core/internal/application/configuration"
	inventoryapp "github.com/lotledger/core/internal/application/inventory"
	"github.com/lotledger/core/internal/infrastructure/config"
	"github.com/lotledger/core/internal/infrastructure/logger"
	"github.com/lotledger/core/internal/infrastructure/migration"
	"github.com/lotledger/core/internal/infrastructure/persistence"
	"github.com/lotledger/core/internal/interfaces/cli"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	database, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := migrateUp(database, log); err != nil {
		return err
	}

	configs := persistence.NewGormConfigurationRepository(database.DB)
	templates := persistence.NewGormTemplateRepository(database.DB)
	batches := persistence.NewGormBatchRepository(database.DB)
	audit := persistence.NewGormAuditRepository(database.DB)

	seeder := persistence.NewSeeder(configs, database, log)
	if err := seeder.Seed(context.Background()); err != nil {
		return fmt.Errorf("failed to seed default configuration: %w", err)
	}

	app := &cli.App{
		Registry:  configurationapp.NewRegistryService(configs, batches, database),
		Templates: catalogapp.NewTemplateService(templates, database),
		Ledger:    inventoryapp.NewLedgerService(batches, audit, templates, configs, database),
	}

	return cli.NewRootCommand(app).Execute()
}

// migrateUp brings the schema to the latest version and installs the default
// vocabularies on a fresh database
func migrateUp(database *persistence.Database, log *zap.Logger) error {
	sqlDB, err := database.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	migrator, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	return migrator.Up()
}
