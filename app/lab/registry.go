package lab

import (
	"strings"

	"hospital-lab/app/models"
)

// Registry manages lab test definitions and their field schemas.
type Registry struct {
	Store SchemaStore
}

// NewRegistry returns a Registry backed by the given store.
func NewRegistry(store SchemaStore) *Registry {
	return &Registry{Store: store}
}

// CreateTest creates a new lab test type. The name is required; the category
// defaults to Uncategorized when omitted and must otherwise be one of the
// configured categories.
func (r *Registry) CreateTest(name, description, category string) (*models.LabTest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("test name is required")
	}

	if category == "" {
		category = models.DefaultCategory
	} else if !models.ValidCategory(category) {
		return nil, NewValidationError("unknown category %q", category)
	}

	test := &models.LabTest{
		Name:        name,
		Description: strings.TrimSpace(description),
		Category:    category,
	}
	if err := r.Store.InsertLabTest(test); err != nil {
		return nil, err
	}
	return test, nil
}

// Tests returns all lab test types sorted by name, case-insensitive.
func (r *Registry) Tests() ([]*models.LabTest, error) {
	return r.Store.ListLabTests()
}

// GetTest resolves a lab test by id.
func (r *Registry) GetTest(id string) (*models.LabTest, error) {
	test, err := r.Store.GetLabTest(id)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, &NotFoundError{Resource: "lab test", ID: id}
	}
	return test, nil
}

// AddField appends a field to a lab test's schema. Dropdown fields take their
// options from the operator's comma-separated input; every other type carries
// none. The new field's order is the current field count plus one.
func (r *Registry) AddField(testID, name, fieldType, optionsInput string, required bool, unit string) (*models.LabTestField, error) {
	test, err := r.GetTest(testID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("field name is required")
	}
	if !models.ValidFieldType(fieldType) {
		return nil, NewValidationError("unknown field type %q", fieldType)
	}

	var options []string
	if models.FieldType(fieldType) == models.FieldDropdown {
		options = ParseOptions(optionsInput)
		if len(options) == 0 {
			return nil, NewValidationError("dropdown fields need at least one option")
		}
	}

	// Field names key result submissions, so they must be unique per test.
	existing, err := r.Store.ListFields(test.ID)
	if err != nil {
		return nil, err
	}
	for _, f := range existing {
		if f.FieldName == name {
			return nil, NewValidationError("field %q already exists on this test", name)
		}
	}

	field := &models.LabTestField{
		LabTestID:    test.ID,
		FieldName:    name,
		FieldType:    models.FieldType(fieldType),
		FieldOptions: options,
		IsRequired:   required,
		FieldOrder:   len(existing) + 1,
	}
	if unit = strings.TrimSpace(unit); unit != "" {
		field.Unit = &unit
	}

	if err := r.Store.InsertField(field); err != nil {
		return nil, err
	}
	return field, nil
}

// Fields returns a lab test's fields ordered by field order ascending.
func (r *Registry) Fields(testID string) ([]*models.LabTestField, error) {
	if _, err := r.GetTest(testID); err != nil {
		return nil, err
	}
	return r.Store.ListFields(testID)
}

// RemoveField deletes a field from its test's schema. Surviving fields keep
// their order values; gaps are expected.
func (r *Registry) RemoveField(fieldID string) error {
	deleted, err := r.Store.DeleteField(fieldID)
	if err != nil {
		return err
	}
	if !deleted {
		return &NotFoundError{Resource: "field", ID: fieldID}
	}
	return nil
}
