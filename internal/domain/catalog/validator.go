package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lotledger/core/internal/domain/shared"
)

// FieldErrorKind classifies a single spec validation failure
type FieldErrorKind string

const (
	FieldErrorMissingRequired FieldErrorKind = "missing_required_field"
	FieldErrorTypeMismatch    FieldErrorKind = "type_mismatch"
	FieldErrorOutOfRange      FieldErrorKind = "out_of_range"
	FieldErrorNotAllowed      FieldErrorKind = "not_allowed"
)

// FieldError describes one validation failure on one spec key
type FieldError struct {
	Key      string         `json:"key"`
	Kind     FieldErrorKind `json:"kind"`
	Expected string         `json:"expected,omitempty"`
	Actual   string         `json:"actual,omitempty"`
}

func (e FieldError) String() string {
	switch e.Kind {
	case FieldErrorMissingRequired:
		return fmt.Sprintf("%s: required field is missing", e.Key)
	case FieldErrorTypeMismatch:
		return fmt.Sprintf("%s: expected %s, got %s", e.Key, e.Expected, e.Actual)
	case FieldErrorOutOfRange:
		return fmt.Sprintf("%s: value %s is outside the allowed range %s", e.Key, e.Actual, e.Expected)
	case FieldErrorNotAllowed:
		return fmt.Sprintf("%s: value %s is not one of %s", e.Key, e.Actual, e.Expected)
	}
	return fmt.Sprintf("%s: invalid", e.Key)
}

// ValidationError carries every field error found in one validation pass,
// so a caller can report all problems at once instead of one at a time.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return "spec validation failed: " + strings.Join(msgs, "; ")
}

// Is matches the SPEC_VALIDATION_FAILED taxonomy code, so callers can test
// with errors.Is against the shared sentinel and still reach the field list
// through errors.As.
func (e *ValidationError) Is(target error) bool {
	derr, ok := target.(*shared.DomainError)
	return ok && derr.Code == "SPEC_VALIDATION_FAILED"
}

// Has reports whether a field error of the given kind exists for the key
func (e *ValidationError) Has(kind FieldErrorKind, key string) bool {
	for _, f := range e.Fields {
		if f.Kind == kind && f.Key == key {
			return true
		}
	}
	return false
}

// Validate decides whether a candidate spec map conforms to a template.
// It is a pure function: no I/O, no shared state, deterministic for equal
// inputs. Keys not declared by the template pass through untouched, since a
// template describes the minimum required structure rather than an
// exhaustive whitelist. Returns nil on conformance or a *ValidationError
// collecting every field error.
func Validate(template *ProductTemplate, specs map[string]any) error {
	var fields []FieldError

	for _, def := range template.Specs {
		value, present := specs[def.Key]
		if !present {
			if def.Required {
				fields = append(fields, FieldError{
					Key:  def.Key,
					Kind: FieldErrorMissingRequired,
				})
			}
			continue
		}
		if fe := checkValue(def, value); fe != nil {
			fields = append(fields, *fe)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// checkValue checks a present value against its declaration
func checkValue(def SpecDefinition, value any) *FieldError {
	switch def.Type {
	case SpecTypeNumber:
		n, ok := numericValue(value)
		if !ok {
			return &FieldError{Key: def.Key, Kind: FieldErrorTypeMismatch, Expected: "number", Actual: typeName(value)}
		}
		if (def.Min != nil && n < *def.Min) || (def.Max != nil && n > *def.Max) {
			return &FieldError{Key: def.Key, Kind: FieldErrorOutOfRange, Expected: rangeLabel(def), Actual: formatNumber(n)}
		}

	case SpecTypeText:
		if _, ok := value.(string); !ok {
			return &FieldError{Key: def.Key, Kind: FieldErrorTypeMismatch, Expected: "text", Actual: typeName(value)}
		}

	case SpecTypeBoolean:
		if _, ok := value.(bool); !ok {
			return &FieldError{Key: def.Key, Kind: FieldErrorTypeMismatch, Expected: "boolean", Actual: typeName(value)}
		}

	case SpecTypeEnum:
		s, ok := value.(string)
		if !ok {
			return &FieldError{Key: def.Key, Kind: FieldErrorTypeMismatch, Expected: "text", Actual: typeName(value)}
		}
		for _, allowed := range def.Allowed {
			if s == allowed {
				return nil
			}
		}
		return &FieldError{Key: def.Key, Kind: FieldErrorNotAllowed, Expected: "[" + strings.Join(def.Allowed, ", ") + "]", Actual: s}
	}
	return nil
}

// numericValue normalizes the numeric representations a spec map can carry.
// Values decoded from a stored document arrive as float64 or json.Number;
// in-process callers may pass Go integer types directly.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// typeName names the candidate value's primitive type for error reporting
func typeName(value any) string {
	switch value.(type) {
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	case string:
		return "text"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", value)
}

func rangeLabel(def SpecDefinition) string {
	switch {
	case def.Min != nil && def.Max != nil:
		return fmt.Sprintf("[%s, %s]", formatNumber(*def.Min), formatNumber(*def.Max))
	case def.Min != nil:
		return fmt.Sprintf(">= %s", formatNumber(*def.Min))
	case def.Max != nil:
		return fmt.Sprintf("<= %s", formatNumber(*def.Max))
	}
	return ""
}

func formatNumber(n float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", n), "0"), ".")
}
