package cli

import (
	"bytes"
	"strings"
	"testing"

	appcatalog "github.com/lotledger/core/internal/application/catalog"
	appconfiguration "github.com/lotledger/core/internal/application/configuration"
	appinventory "github.com/lotledger/core/internal/application/inventory"
	"github.com/lotledger/core/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestApp wires the full stack over an in-memory database
func newTestApp(t *testing.T) *App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE configurations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE (kind, name)
		)`,
		`CREATE TABLE product_templates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			specs_document TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE inventory_batches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			type_id INTEGER,
			grade_id INTEGER,
			stage_id INTEGER,
			weight NUMERIC NOT NULL DEFAULT 0,
			price NUMERIC NOT NULL DEFAULT 0,
			specs_document TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE batch_audit (
			id TEXT PRIMARY KEY,
			batch_id INTEGER NOT NULL,
			action TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '{}',
			occurred_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	database := &persistence.Database{DB: db}
	configs := persistence.NewGormConfigurationRepository(db)
	templates := persistence.NewGormTemplateRepository(db)
	batches := persistence.NewGormBatchRepository(db)
	audit := persistence.NewGormAuditRepository(db)

	return &App{
		Registry:  appconfiguration.NewRegistryService(configs, batches, database),
		Templates: appcatalog.NewTemplateService(templates, database),
		Ledger:    appinventory.NewLedgerService(batches, audit, templates, configs, database),
	}
}

// run executes the CLI with the given args and returns stdout
func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigCommands(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "config", "add", "grade", "Premium")
	require.NoError(t, err)
	assert.Contains(t, out, `Added grade "Premium" (id 1)`)

	out, err = run(t, app, "config", "list", "grade")
	require.NoError(t, err)
	assert.Contains(t, out, "Premium")

	_, err = run(t, app, "config", "add", "grade", "Premium")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, app, "config", "add", "flavor", "sweet")
	assert.ErrorContains(t, err, "kind")

	out, err = run(t, app, "config", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed configuration 1")
}

func TestConfigRemove_ReferencedByBatch(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "config", "add", "stage", "Bucked")
	require.NoError(t, err)
	_, err = run(t, app, "batch", "add", "Lot 1", "--stage", "1")
	require.NoError(t, err)

	_, err = run(t, app, "config", "remove", "1")
	assert.ErrorContains(t, err, "referenced")
}

func TestTemplateCommands(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "template", "create", "CoffeeLot",
		"--specs", `[{"key":"moisture","type":"number","min":0,"max":20},{"key":"origin","type":"text","required":true}]`)
	require.NoError(t, err)
	assert.Contains(t, out, `Created template "CoffeeLot" (id 1) with 2 spec definitions`)

	out, err = run(t, app, "template", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "moisture")
	assert.Contains(t, out, "origin\ttext (required)")

	_, err = run(t, app, "template", "create", "CoffeeLot")
	assert.ErrorContains(t, err, "already in use")

	_, err = run(t, app, "template", "create", "Bad",
		"--specs", `[{"key":"roast","type":"enum"}]`)
	assert.Error(t, err, "enum without allowed values is malformed")
}

func TestBatchLifecycle(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "template", "create", "CoffeeLot",
		"--specs", `[{"key":"moisture","type":"number","min":0,"max":20},{"key":"origin","type":"text","required":true}]`)
	require.NoError(t, err)
	_, err = run(t, app, "config", "add", "stage", "Bucked")
	require.NoError(t, err)

	out, err := run(t, app, "batch", "add", "Lot 42",
		"--weight", "12.5", "--price", "3", "--type", "1", "--stage", "1",
		"--specs", `{"moisture":11.2,"origin":"Brazil"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `Recorded batch "Lot 42" (id 1)`)

	out, err = run(t, app, "batch", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "total:  37.5")

	out, err = run(t, app, "batch", "update", "1", "--weight", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated batch")

	out, err = run(t, app, "stage-summary", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bucked: 1 batches, 10 total weight")

	out, err = run(t, app, "batch", "history", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "updated")

	out, err = run(t, app, "batch", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed batch 1")

	_, err = run(t, app, "batch", "show", "1")
	assert.Error(t, err)
}

func TestBatchAdd_SpecValidationFailure(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "template", "create", "CoffeeLot",
		"--specs", `[{"key":"moisture","type":"number","min":0,"max":20},{"key":"origin","type":"text","required":true}]`)
	require.NoError(t, err)

	_, err = run(t, app, "batch", "add", "Lot", "--type", "1",
		"--specs", `{"moisture":25}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "moisture")
	assert.Contains(t, err.Error(), "origin")
}

func TestInvalidFormatRejected(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "--format", "xml", "config", "list", "grade")
	assert.ErrorContains(t, err, "invalid format")
}

func TestJSONOutput(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "config", "add", "grade", "A")
	require.NoError(t, err)

	out, err := run(t, app, "--format", "json", "config", "list", "grade")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["), "expected JSON array, got %q", out)
	assert.Contains(t, out, `"Name": "A"`)
}
