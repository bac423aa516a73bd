package lab

import (
	"strconv"
	"strings"

	"hospital-lab/app/models"
)

// Validate checks a raw submitted value against its field definition.
//
// It returns the normalized (trimmed) value, an omit flag, and a FieldError.
// A blank value on an optional field is not an error: it signals that the
// field should be left out of the result batch entirely, never stored as an
// empty string. Float fields must parse as a real number; dropdown fields
// must match one of the configured options exactly, case-sensitive. No range
// checks are applied to floats — operators configure unit labels, not bounds.
func Validate(field *models.LabTestField, raw string) (string, bool, *FieldError) {
	value := strings.TrimSpace(raw)

	if value == "" {
		if field.IsRequired {
			return "", false, &FieldError{FieldName: field.FieldName, Kind: FieldRequired}
		}
		return "", true, nil
	}

	switch field.FieldType {
	case models.FieldFloat:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "", false, &FieldError{FieldName: field.FieldName, Kind: FieldNotNumeric}
		}
	case models.FieldDropdown:
		if !containsOption(field.FieldOptions, value) {
			return "", false, &FieldError{FieldName: field.FieldName, Kind: FieldInvalidOption}
		}
	}

	return value, false, nil
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

// ParseOptions splits an operator's comma-separated option input, trimming
// whitespace and dropping empty tokens. Order is preserved and duplicates are
// kept; deduplication is the operator's responsibility.
func ParseOptions(input string) []string {
	var options []string
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			options = append(options, token)
		}
	}
	return options
}
