package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lotledger/core/internal/domain/shared"
)

// SpecType is the declared primitive type of a spec value
type SpecType string

const (
	SpecTypeNumber  SpecType = "number"
	SpecTypeText    SpecType = "text"
	SpecTypeBoolean SpecType = "boolean"
	SpecTypeEnum    SpecType = "enum"
)

// IsValid reports whether the spec type is one of the known variants
func (t SpecType) IsValid() bool {
	switch t {
	case SpecTypeNumber, SpecTypeText, SpecTypeBoolean, SpecTypeEnum:
		return true
	}
	return false
}

// SpecDefinition declares one expected attribute of a product type.
// Min and Max apply only to number specs, Allowed only to enum specs.
type SpecDefinition struct {
	Key      string   `json:"key"`
	Type     SpecType `json:"type"`
	Required bool     `json:"required"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Allowed  []string `json:"allowed,omitempty"`
}

// validate checks the definition for internal consistency
func (d SpecDefinition) validate() error {
	if d.Key == "" {
		return shared.NewDomainError("MALFORMED_SPEC_DEFINITION", "Spec key cannot be empty")
	}
	if !d.Type.IsValid() {
		return shared.NewDomainError("MALFORMED_SPEC_DEFINITION",
			fmt.Sprintf("Spec %q has unknown type %q", d.Key, d.Type))
	}
	if d.Type != SpecTypeNumber && (d.Min != nil || d.Max != nil) {
		return shared.NewDomainError("MALFORMED_SPEC_DEFINITION",
			fmt.Sprintf("Spec %q declares a numeric range but is not a number", d.Key))
	}
	if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
		return shared.NewDomainError("MALFORMED_SPEC_DEFINITION",
			fmt.Sprintf("Spec %q has min %v greater than max %v", d.Key, *d.Min, *d.Max))
	}
	if d.Type == SpecTypeEnum && len(d.Allowed) == 0 {
		return shared.NewDomainError("MALFORMED_SPEC_DEFINITION",
			fmt.Sprintf("Enum spec %q must declare at least one allowed value", d.Key))
	}
	if d.Type != SpecTypeEnum && len(d.Allowed) > 0 {
		return shared.NewDomainError("MALFORMED_SPEC_DEFINITION",
			fmt.Sprintf("Spec %q declares allowed values but is not an enum", d.Key))
	}
	return nil
}

// SpecDefinitions is the ordered set of spec definitions of a template.
// The slice order is the declaration order; the JSON array encoding keeps it
// stable across storage round trips.
type SpecDefinitions []SpecDefinition

// Validate checks every definition and the uniqueness of keys
func (s SpecDefinitions) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, def := range s {
		if err := def.validate(); err != nil {
			return err
		}
		if _, dup := seen[def.Key]; dup {
			return shared.NewDomainError("MALFORMED_SPEC_DEFINITION",
				fmt.Sprintf("Spec key %q is declared more than once", def.Key))
		}
		seen[def.Key] = struct{}{}
	}
	return nil
}

// Find returns the definition for a key, if declared
func (s SpecDefinitions) Find(key string) (SpecDefinition, bool) {
	for _, def := range s {
		if def.Key == key {
			return def, true
		}
	}
	return SpecDefinition{}, false
}

// Value implements driver.Valuer, encoding the definitions as a JSON document
func (s SpecDefinitions) Value() (driver.Value, error) {
	if s == nil {
		s = SpecDefinitions{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner, decoding the stored JSON document
func (s *SpecDefinitions) Scan(value any) error {
	if value == nil {
		*s = SpecDefinitions{}
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
	return json.Unmarshal(data, s)
}
