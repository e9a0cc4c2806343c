package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field-level failures so a request can be
// validated in full and rejected with every problem at once instead of
// failing on the first bad field.
type ValidationErrors struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validation accumulates field errors during request validation.
type Validation struct {
	fields []FieldError
}

func NewValidation() *Validation {
	return &Validation{}
}

// Expect records a field error when the condition does not hold.
func (v *Validation) Expect(cond bool, field, message string) {
	if !cond {
		v.fields = append(v.fields, FieldError{Field: field, Message: message})
	}
}

// Errorf records a field error unconditionally.
func (v *Validation) Errorf(field, format string, args ...any) {
	v.fields = append(v.fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *Validation) OK() bool {
	return len(v.fields) == 0
}

// Result returns the collected errors, or nil when validation passed.
func (v *Validation) Result() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationErrors{Fields: v.fields}
}

// GetValidationErrors extracts ValidationErrors from err, if present.
func GetValidationErrors(err error) *ValidationErrors {
	if ve, ok := err.(*ValidationErrors); ok {
		return ve
	}
	return nil
}

// HTTPStatus maps any error from the application layer to an HTTP status.
func HTTPStatus(err error) int {
	if GetValidationErrors(err) != nil {
		return http.StatusBadRequest
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
