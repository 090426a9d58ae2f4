package configuration

import (
	"context"
	"errors"
	"testing"

	"github.com/lotledger/core/internal/domain/configuration"
	"github.com/lotledger/core/internal/domain/inventory"
	"github.com/lotledger/core/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEntryRepository is a mock implementation of configuration.Repository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id int64) (*configuration.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*configuration.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByIDAndKind(ctx context.Context, id int64, kind configuration.Kind) (*configuration.Entry, error) {
	args := m.Called(ctx, id, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*configuration.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByKind(ctx context.Context, kind configuration.Kind) ([]configuration.Entry, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).([]configuration.Entry), args.Error(1)
}

func (m *MockEntryRepository) ExistsByKindAndName(ctx context.Context, kind configuration.Kind, name string) (bool, error) {
	args := m.Called(ctx, kind, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntryRepository) CountByKind(ctx context.Context, kind configuration.Kind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *configuration.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBatchRepository is a mock implementation of inventory.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id int64) (*inventory.InventoryBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) FindAll(ctx context.Context, filter inventory.BatchFilter) ([]inventory.InventoryBatch, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *inventory.InventoryBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBatchRepository) CountByConfiguration(ctx context.Context, configurationID int64) (int64, error) {
	args := m.Called(ctx, configurationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchRepository) StageTotals(ctx context.Context, stageID int64) (inventory.StageTotals, error) {
	args := m.Called(ctx, stageID)
	return args.Get(0).(inventory.StageTotals), args.Error(1)
}

// stubTxManager runs the transactional function directly
type stubTxManager struct{}

func (stubTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(entries *MockEntryRepository, batches *MockBatchRepository) *RegistryService {
	return NewRegistryService(entries, batches, stubTxManager{})
}

func TestRegistryService_Add(t *testing.T) {
	entries := new(MockEntryRepository)
	batches := new(MockBatchRepository)
	svc := newService(entries, batches)

	entries.On("ExistsByKindAndName", mock.Anything, configuration.KindGrade, "A").Return(false, nil)
	entries.On("Save", mock.Anything, mock.AnythingOfType("*configuration.Entry")).Return(nil)

	entry, err := svc.Add(context.Background(), configuration.KindGrade, "A")

	require.NoError(t, err)
	assert.Equal(t, configuration.KindGrade, entry.Kind)
	assert.Equal(t, "A", entry.Name)
	entries.AssertExpectations(t)
}

func TestRegistryService_Add_Duplicate(t *testing.T) {
	entries := new(MockEntryRepository)
	svc := newService(entries, new(MockBatchRepository))

	entries.On("ExistsByKindAndName", mock.Anything, configuration.KindGrade, "A").Return(true, nil)

	_, err := svc.Add(context.Background(), configuration.KindGrade, "A")

	assert.True(t, errors.Is(err, shared.ErrDuplicateEntry))
	entries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegistryService_Add_InvalidKind(t *testing.T) {
	entries := new(MockEntryRepository)
	svc := newService(entries, new(MockBatchRepository))

	_, err := svc.Add(context.Background(), configuration.Kind("flavor"), "sweet")

	assert.True(t, errors.Is(err, shared.ErrInvalidKind))
	entries.AssertNotCalled(t, "ExistsByKindAndName", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegistryService_List(t *testing.T) {
	entries := new(MockEntryRepository)
	svc := newService(entries, new(MockBatchRepository))

	stored := []configuration.Entry{{Kind: configuration.KindStage, Name: "Bucked"}}
	entries.On("FindByKind", mock.Anything, configuration.KindStage).Return(stored, nil)

	got, err := svc.List(context.Background(), configuration.KindStage)

	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestRegistryService_List_InvalidKind(t *testing.T) {
	svc := newService(new(MockEntryRepository), new(MockBatchRepository))

	_, err := svc.List(context.Background(), configuration.Kind("color"))

	assert.True(t, errors.Is(err, shared.ErrInvalidKind))
}

func TestRegistryService_Remove(t *testing.T) {
	entries := new(MockEntryRepository)
	batches := new(MockBatchRepository)
	svc := newService(entries, batches)

	entry := &configuration.Entry{Kind: configuration.KindGrade, Name: "A"}
	entry.ID = 3

	entries.On("FindByID", mock.Anything, int64(3)).Return(entry, nil)
	batches.On("CountByConfiguration", mock.Anything, int64(3)).Return(int64(0), nil)
	entries.On("Delete", mock.Anything, int64(3)).Return(nil)

	require.NoError(t, svc.Remove(context.Background(), 3))
	entries.AssertExpectations(t)
}

func TestRegistryService_Remove_NotFound(t *testing.T) {
	entries := new(MockEntryRepository)
	svc := newService(entries, new(MockBatchRepository))

	entries.On("FindByID", mock.Anything, int64(9)).Return(nil, shared.ErrNotFound)

	err := svc.Remove(context.Background(), 9)

	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestRegistryService_Remove_ReferencedByBatch(t *testing.T) {
	entries := new(MockEntryRepository)
	batches := new(MockBatchRepository)
	svc := newService(entries, batches)

	entry := &configuration.Entry{Kind: configuration.KindStage, Name: "Rolled"}
	entry.ID = 5

	entries.On("FindByID", mock.Anything, int64(5)).Return(entry, nil)
	batches.On("CountByConfiguration", mock.Anything, int64(5)).Return(int64(2), nil)

	err := svc.Remove(context.Background(), 5)

	assert.True(t, errors.Is(err, shared.ErrReferencedByBatch))
	entries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRegistryService_Get(t *testing.T) {
	entries := new(MockEntryRepository)
	svc := newService(entries, new(MockBatchRepository))

	entry := &configuration.Entry{Kind: configuration.KindGrade, Name: "Trim"}
	entry.ID = 7
	entries.On("FindByID", mock.Anything, int64(7)).Return(entry, nil)

	got, err := svc.Get(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Trim", got.Name)
}

// Keep the mocks honest against interface drift.
var (
	_ configuration.Repository  = (*MockEntryRepository)(nil)
	_ inventory.BatchRepository = (*MockBatchRepository)(nil)
	_ shared.TransactionManager = stubTxManager{}
)
