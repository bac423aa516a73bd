package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"hospital-lab/app/models"
)

// CreateLabTest inserts a new lab test type.
func CreateLabTest(db *sql.DB, test *models.LabTest) error {
	query := `
		INSERT INTO lab_tests (name, description, category)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := db.QueryRow(query, test.Name, test.Description, test.Category).
		Scan(&test.ID, &test.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lab test: %w", err)
	}
	return nil
}

// GetLabTests fetches all lab test types sorted by name, case-insensitive.
func GetLabTests(db *sql.DB) ([]*models.LabTest, error) {
	query := `
		SELECT id, name, description, category, created_at
		FROM lab_tests
		ORDER BY LOWER(name)
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lab tests: %w", err)
	}
	defer rows.Close()

	var tests []*models.LabTest
	for rows.Next() {
		var test models.LabTest
		if err := rows.Scan(&test.ID, &test.Name, &test.Description, &test.Category, &test.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lab test: %w", err)
		}
		tests = append(tests, &test)
	}
	return tests, rows.Err()
}

// GetLabTestByID fetches a single lab test type.
func GetLabTestByID(db *sql.DB, testID string) (*models.LabTest, error) {
	query := `
		SELECT id, name, description, category, created_at
		FROM lab_tests
		WHERE id = $1
	`
	var test models.LabTest
	err := db.QueryRow(query, testID).Scan(
		&test.ID, &test.Name, &test.Description, &test.Category, &test.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lab test: %w", err)
	}
	return &test, nil
}

// CreateLabTestField appends a field to a lab test's schema.
func CreateLabTestField(db *sql.DB, field *models.LabTestField) error {
	query := `
		INSERT INTO lab_test_fields (lab_test_id, field_name, field_type, field_options, is_required, field_order, unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var options interface{}
	if len(field.FieldOptions) > 0 {
		options = pq.Array(field.FieldOptions)
	}
	err := db.QueryRow(
		query,
		field.LabTestID,
		field.FieldName,
		field.FieldType,
		options,
		field.IsRequired,
		field.FieldOrder,
		field.Unit,
	).Scan(&field.ID)
	if err != nil {
		return fmt.Errorf("failed to create lab test field: %w", err)
	}
	return nil
}

// GetFieldsByLabTestID fetches a lab test's fields ordered by field_order.
// Order values may have gaps after deletions; only the ordering matters.
func GetFieldsByLabTestID(db *sql.DB, labTestID string) ([]*models.LabTestField, error) {
	query := `
		SELECT id, lab_test_id, field_name, field_type, field_options, is_required, field_order, unit
		FROM lab_test_fields
		WHERE lab_test_id = $1
		ORDER BY field_order
	`
	rows, err := db.Query(query, labTestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lab test fields: %w", err)
	}
	defer rows.Close()

	var fields []*models.LabTestField
	for rows.Next() {
		var field models.LabTestField
		if err := rows.Scan(
			&field.ID, &field.LabTestID, &field.FieldName, &field.FieldType,
			pq.Array(&field.FieldOptions), &field.IsRequired, &field.FieldOrder, &field.Unit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lab test field: %w", err)
		}
		fields = append(fields, &field)
	}
	return fields, rows.Err()
}

// DeleteLabTestField removes a field and reports whether a row was deleted.
// Sibling field_order values are left untouched.
func DeleteLabTestField(db *sql.DB, fieldID string) (bool, error) {
	result, err := db.Exec(`DELETE FROM lab_test_fields WHERE id = $1`, fieldID)
	if err != nil {
		return false, fmt.Errorf("failed to delete lab test field: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
