// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCustomerNotFound is a sentinel error
type ErrCustomerNotFound struct {
    CustomerID int
}

func (e *ErrCustomerNotFound) Error() string {
    return fmt.Sprintf("customer with ID %d not found", e.CustomerID)
}

func NewCustomerNotFound(id int) error {
    return &ErrCustomerNotFound{CustomerID: id}
}

type ErrContactNotFound struct {
    ContactID int
}

func (e *ErrContactNotFound) Error() string {
    return fmt.Sprintf("contact with ID %d not found", e.ContactID)
}

func NewContactNotFound(id int) error {
    return &ErrContactNotFound{ContactID: id}
}

// ValidationError carries per-field messages for a 422 response.
type ValidationError struct {
    Errors map[string][]string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("validation failed: %v", e.Errors)
}

func NewValidationError() *ValidationError {
    return &ValidationError{Errors: map[string][]string{}}
}

// Add appends a message for a field.
func (e *ValidationError) Add(field, message string) {
    e.Errors[field] = append(e.Errors[field], message)
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
    return len(e.Errors) > 0
}

// FieldError builds a ValidationError with a single field message.
func FieldError(field, message string) *ValidationError {
    v := NewValidationError()
    v.Add(field, message)
    return v
}
