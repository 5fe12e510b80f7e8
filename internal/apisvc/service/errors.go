package service

import "fmt"

// ValidationError marks a request that failed field validation before any
// write happened. Handlers map it to a 400 naming the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func requiredField(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Field %q is required", field),
	}
}
