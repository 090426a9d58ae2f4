package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so a specific message can still be
// compared against the package-level sentinel with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrDuplicateEntry       = NewDomainError("DUPLICATE_ENTRY", "Configuration entry already exists")
	ErrDuplicateName        = NewDomainError("DUPLICATE_NAME", "Name is already in use")
	ErrInvalidKind          = NewDomainError("INVALID_KIND", "Unknown configuration kind")
	ErrMalformedSpec        = NewDomainError("MALFORMED_SPEC_DEFINITION", "Spec definition is internally inconsistent")
	ErrUnknownTemplate      = NewDomainError("UNKNOWN_TEMPLATE", "Referenced product template does not exist")
	ErrUnknownConfiguration = NewDomainError("UNKNOWN_CONFIGURATION", "Referenced configuration entry does not exist")
	ErrInvalidMagnitude     = NewDomainError("INVALID_MAGNITUDE", "Weight and price must be non-negative")
	ErrSpecValidationFailed = NewDomainError("SPEC_VALIDATION_FAILED", "Batch specs do not conform to the template")
	ErrReferencedByBatch    = NewDomainError("REFERENCED_BY_BATCH", "Configuration entry is referenced by a batch")
)
