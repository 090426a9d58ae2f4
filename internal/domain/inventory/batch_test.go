package inventory

import (
	"errors"
	"testing"

	"github.com/lotledger/core/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryBatch(t *testing.T) {
	batch, err := NewInventoryBatch("Lot 42", decimal.NewFromFloat(12.5), decimal.NewFromInt(3), SpecMap{"moisture": 11.0})

	require.NoError(t, err)
	assert.Equal(t, "Lot 42", batch.Name)
	assert.False(t, batch.IsClassified())
	assert.Equal(t, 11.0, batch.Specs["moisture"])
}

func TestNewInventoryBatch_NegativeMagnitudes(t *testing.T) {
	_, err := NewInventoryBatch("Lot", decimal.NewFromInt(-1), decimal.Zero, nil)
	assert.True(t, errors.Is(err, shared.ErrInvalidMagnitude))

	_, err = NewInventoryBatch("Lot", decimal.Zero, decimal.NewFromInt(-1), nil)
	assert.True(t, errors.Is(err, shared.ErrInvalidMagnitude))
}

func TestNewInventoryBatch_ZeroMagnitudesAllowed(t *testing.T) {
	batch, err := NewInventoryBatch("Lot", decimal.Zero, decimal.Zero, nil)
	require.NoError(t, err)
	assert.True(t, batch.TotalValue().IsZero())
}

func TestNewInventoryBatch_CopiesSpecs(t *testing.T) {
	specs := SpecMap{"origin": "Brazil"}
	batch, err := NewInventoryBatch("Lot", decimal.Zero, decimal.Zero, specs)
	require.NoError(t, err)

	specs["origin"] = "Peru"
	assert.Equal(t, "Brazil", batch.Specs["origin"])
}

func TestInventoryBatch_TotalValue(t *testing.T) {
	batch, err := NewInventoryBatch("Lot", decimal.NewFromFloat(2.5), decimal.NewFromFloat(4.2), nil)
	require.NoError(t, err)

	assert.True(t, batch.TotalValue().Equal(decimal.NewFromFloat(10.5)))
}

func TestInventoryBatch_Setters(t *testing.T) {
	batch, err := NewInventoryBatch("Lot", decimal.Zero, decimal.Zero, nil)
	require.NoError(t, err)

	require.NoError(t, batch.SetWeight(decimal.NewFromInt(7)))
	require.NoError(t, batch.SetPrice(decimal.NewFromInt(2)))
	require.NoError(t, batch.Rename("Lot 7"))

	assert.True(t, batch.TotalValue().Equal(decimal.NewFromInt(14)))
	assert.Equal(t, "Lot 7", batch.Name)

	assert.Error(t, batch.SetWeight(decimal.NewFromInt(-7)))
	assert.Error(t, batch.SetPrice(decimal.NewFromInt(-2)))
	assert.Error(t, batch.Rename(""))
}

func TestSpecMap_DocumentRoundTrip(t *testing.T) {
	specs := SpecMap{"moisture": 12.5, "origin": "Brazil", "certified": true}

	value, err := specs.Value()
	require.NoError(t, err)

	var decoded SpecMap
	require.NoError(t, decoded.Scan(value))

	assert.Equal(t, 12.5, decoded["moisture"])
	assert.Equal(t, "Brazil", decoded["origin"])
	assert.Equal(t, true, decoded["certified"])
}

func TestSpecMap_ScanNil(t *testing.T) {
	var decoded SpecMap
	require.NoError(t, decoded.Scan(nil))
	assert.Empty(t, decoded)
}

func TestNewAuditEntry(t *testing.T) {
	batch, err := NewInventoryBatch("Lot", decimal.Zero, decimal.Zero, nil)
	require.NoError(t, err)
	batch.ID = 9

	entry := NewAuditEntry(batch.ID, AuditActionCreated, "", batch.CreatedAt)

	assert.Equal(t, int64(9), entry.BatchID)
	assert.Equal(t, AuditActionCreated, entry.Action)
	assert.Equal(t, "{}", entry.Detail)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", entry.ID.String())
}
