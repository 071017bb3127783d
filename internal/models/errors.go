package models

import "fmt"

// MissingFieldError reports a required field absent from a submitted product.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidValueError reports a field whose submitted value cannot be accepted.
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %s", e.Value, e.Field)
}

// InvalidCategoryError reports a list filter naming a category outside the
// enumeration.
type InvalidCategoryError struct {
	Name string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category: %s", e.Name)
}
