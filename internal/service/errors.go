package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeValidation         = "validation_error"
	ErrCodeDuplicateReference = "duplicate_reference"
	ErrCodeMissingReference   = "missing_reference"
	ErrCodeUnknownTransaction = "unknown_transaction"
	ErrCodeNotFound           = "not_found"
	ErrCodeLinkAlreadySet     = "link_already_set"
	ErrCodeProviderError      = "provider_error"
	ErrCodeInternalError      = "internal_error"
)
