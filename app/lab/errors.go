package lab

import "fmt"

// ValidationError reports malformed or missing operator input to a schema or
// report call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to a record that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PreconditionError reports a workflow transition attempted while its guard
// is unmet.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return e.Msg
}

// FieldErrorKind classifies single-field validation failures.
type FieldErrorKind string

const (
	FieldRequired      FieldErrorKind = "required"
	FieldNotNumeric    FieldErrorKind = "not_numeric"
	FieldInvalidOption FieldErrorKind = "invalid_option"
)

// FieldError reports that one submitted value failed validation against its
// field definition.
type FieldError struct {
	FieldName string         `json:"field_name"`
	Kind      FieldErrorKind `json:"kind"`
}

func (e *FieldError) Error() string {
	switch e.Kind {
	case FieldRequired:
		return fmt.Sprintf("%s is required", e.FieldName)
	case FieldNotNumeric:
		return fmt.Sprintf("%s must be a number", e.FieldName)
	case FieldInvalidOption:
		return fmt.Sprintf("%s is not one of the configured options", e.FieldName)
	}
	return fmt.Sprintf("%s is invalid", e.FieldName)
}

// PipelineErrorKind classifies results-submission failures.
type PipelineErrorKind string

const (
	PipelineValidationFailed PipelineErrorKind = "validation_failed"
	PipelineNoData           PipelineErrorKind = "no_data"
)

// PipelineError reports a failed results submission. For validation failures
// Fields carries one entry per failing required field; the whole batch is
// rejected and nothing is persisted.
type PipelineError struct {
	Kind   PipelineErrorKind `json:"kind"`
	Fields []*FieldError     `json:"fields,omitempty"`
}

func (e *PipelineError) Error() string {
	if e.Kind == PipelineNoData {
		return "no data to save"
	}
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Fields[0].Error())
	}
	return fmt.Sprintf("validation failed for %d fields", len(e.Fields))
}
