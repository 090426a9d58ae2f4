package catalog

import (
	"errors"
	"testing"

	"github.com/lotledger/core/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductTemplate(t *testing.T) {
	tmpl, err := NewProductTemplate("CoffeeLot", SpecDefinitions{
		{Key: "moisture", Type: SpecTypeNumber, Min: f(0), Max: f(20)},
		{Key: "origin", Type: SpecTypeText, Required: true},
	})

	require.NoError(t, err)
	assert.Equal(t, "CoffeeLot", tmpl.Name)
	assert.Len(t, tmpl.Specs, 2)
}

func TestNewProductTemplate_EmptyName(t *testing.T) {
	_, err := NewProductTemplate("", nil)
	require.Error(t, err)

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_NAME", derr.Code)
}

func TestNewProductTemplate_MalformedSpecs(t *testing.T) {
	cases := []struct {
		name  string
		specs SpecDefinitions
	}{
		{"min greater than max", SpecDefinitions{
			{Key: "moisture", Type: SpecTypeNumber, Min: f(10), Max: f(5)},
		}},
		{"range on text spec", SpecDefinitions{
			{Key: "origin", Type: SpecTypeText, Min: f(0)},
		}},
		{"empty enum set", SpecDefinitions{
			{Key: "grade", Type: SpecTypeEnum},
		}},
		{"allowed values on number spec", SpecDefinitions{
			{Key: "purity", Type: SpecTypeNumber, Allowed: []string{"a"}},
		}},
		{"duplicate keys", SpecDefinitions{
			{Key: "moisture", Type: SpecTypeNumber},
			{Key: "moisture", Type: SpecTypeText},
		}},
		{"empty key", SpecDefinitions{
			{Key: "", Type: SpecTypeText},
		}},
		{"unknown type", SpecDefinitions{
			{Key: "weird", Type: SpecType("blob")},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProductTemplate("T", tc.specs)
			assert.True(t, errors.Is(err, shared.ErrMalformedSpec), "expected malformed spec error, got %v", err)
		})
	}
}

func TestSpecDefinitions_DocumentRoundTrip(t *testing.T) {
	specs := SpecDefinitions{
		{Key: "moisture", Type: SpecTypeNumber, Required: true, Min: f(0), Max: f(20)},
		{Key: "origin", Type: SpecTypeText},
		{Key: "roast", Type: SpecTypeEnum, Allowed: []string{"light", "dark"}},
	}

	value, err := specs.Value()
	require.NoError(t, err)

	var decoded SpecDefinitions
	require.NoError(t, decoded.Scan(value))

	// Declaration order survives the document encoding.
	assert.Equal(t, specs, decoded)
}

func TestSpecDefinitions_Find(t *testing.T) {
	specs := SpecDefinitions{
		{Key: "moisture", Type: SpecTypeNumber},
	}

	def, ok := specs.Find("moisture")
	require.True(t, ok)
	assert.Equal(t, SpecTypeNumber, def.Type)

	_, ok = specs.Find("absent")
	assert.False(t, ok)
}
