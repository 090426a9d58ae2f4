package inventory

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lotledger/core/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SpecMap is the free-form attribute document carried by a batch.
// It is persisted as a JSON document column; in memory all producers and
// consumers operate on the decoded map.
type SpecMap map[string]any

// Value implements driver.Valuer
func (m SpecMap) Value() (driver.Value, error) {
	if m == nil {
		m = SpecMap{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (m *SpecMap) Scan(value any) error {
	if value == nil {
		*m = SpecMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported specs document type %T", value)
	}
	return json.Unmarshal(data, m)
}

// Clone returns a shallow copy so callers never share mutable state
func (m SpecMap) Clone() SpecMap {
	out := make(SpecMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// InventoryBatch represents a single recorded lot of inventory.
// Template, grade and stage references are nullable: a batch may be recorded
// unclassified and assigned later. Validation of the spec map against the
// referenced template happens at write time in the ledger service.
type InventoryBatch struct {
	shared.BaseEntity
	Name    string          `gorm:"type:varchar(200);not null;index"`
	TypeID  *int64          `gorm:"index"`
	GradeID *int64          `gorm:"index"`
	StageID *int64          `gorm:"index"`
	Weight  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Specs   SpecMap         `gorm:"column:specs_document;type:text;not null"`
}

// TableName returns the table name for GORM
func (InventoryBatch) TableName() string {
	return "inventory_batches"
}

// NewInventoryBatch creates a new batch record
func NewInventoryBatch(name string, weight, price decimal.Decimal, specs SpecMap) (*InventoryBatch, error) {
	if err := validateBatchName(name); err != nil {
		return nil, err
	}
	if weight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MAGNITUDE", "Weight cannot be negative")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MAGNITUDE", "Price cannot be negative")
	}
	if specs == nil {
		specs = SpecMap{}
	}

	return &InventoryBatch{
		Name:   name,
		Weight: weight,
		Price:  price,
		Specs:  specs.Clone(),
	}, nil
}

// SetWeight sets the batch weight
func (b *InventoryBatch) SetWeight(weight decimal.Decimal) error {
	if weight.IsNegative() {
		return shared.NewDomainError("INVALID_MAGNITUDE", "Weight cannot be negative")
	}
	b.Weight = weight
	return nil
}

// SetPrice sets the per-unit price
func (b *InventoryBatch) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_MAGNITUDE", "Price cannot be negative")
	}
	b.Price = price
	return nil
}

// Rename sets the batch name
func (b *InventoryBatch) Rename(name string) error {
	if err := validateBatchName(name); err != nil {
		return err
	}
	b.Name = name
	return nil
}

// TotalValue returns weight multiplied by per-unit price
func (b *InventoryBatch) TotalValue() decimal.Decimal {
	return b.Weight.Mul(b.Price)
}

// IsClassified reports whether the batch references a product template
func (b *InventoryBatch) IsClassified() bool {
	return b.TypeID != nil
}

// validateBatchName validates the batch name
func validateBatchName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Batch name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Batch name cannot exceed 200 characters")
	}
	return nil
}
