package database

import (
	"database/sql"
	"fmt"

	"hospital-lab/app/lab"
	"hospital-lab/app/models"
)

// CreateTest inserts a newly assigned test in pending status.
func CreateTest(db *sql.DB, test *models.Test) error {
	query := `
		INSERT INTO tests (patient_id, lab_test_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := db.QueryRow(query, test.PatientID, test.LabTestID, test.Status).
		Scan(&test.ID, &test.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create test: %w", err)
	}
	return nil
}

// GetTestByID fetches a single assigned test.
func GetTestByID(db *sql.DB, testID string) (*models.Test, error) {
	query := `
		SELECT id, patient_id, lab_test_id, status, created_at
		FROM tests
		WHERE id = $1
	`
	var test models.Test
	err := db.QueryRow(query, testID).Scan(
		&test.ID, &test.PatientID, &test.LabTestID, &test.Status, &test.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch test: %w", err)
	}
	return &test, nil
}

// GetTestsByPatientID fetches a patient's assigned tests with their lab test
// names and captured results, oldest first.
func GetTestsByPatientID(db *sql.DB, patientID string) ([]*models.Test, error) {
	query := `
		SELECT t.id, t.patient_id, t.lab_test_id, t.status, t.created_at,
			lt.id, lt.name, lt.description, lt.category, lt.created_at
		FROM tests t
		JOIN lab_tests lt ON t.lab_test_id = lt.id
		WHERE t.patient_id = $1
		ORDER BY t.created_at
	`
	rows, err := db.Query(query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tests: %w", err)
	}
	defer rows.Close()

	var tests []*models.Test
	for rows.Next() {
		var test models.Test
		var labTest models.LabTest
		if err := rows.Scan(
			&test.ID, &test.PatientID, &test.LabTestID, &test.Status, &test.CreatedAt,
			&labTest.ID, &labTest.Name, &labTest.Description, &labTest.Category, &labTest.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan test: %w", err)
		}
		test.LabTest = &labTest
		tests = append(tests, &test)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, test := range tests {
		results, err := GetResultsByTestID(db, test.ID)
		if err != nil {
			return nil, err
		}
		test.Results = results
	}
	return tests, nil
}

// GetResultsByTestID fetches the captured results for one test.
func GetResultsByTestID(db *sql.DB, testID string) ([]*models.TestResult, error) {
	query := `
		SELECT id, test_id, field_id, field_name, field_value, created_at
		FROM test_results
		WHERE test_id = $1
		ORDER BY created_at, id
	`
	rows, err := db.Query(query, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch test results: %w", err)
	}
	defer rows.Close()

	var results []*models.TestResult
	for rows.Next() {
		var result models.TestResult
		if err := rows.Scan(
			&result.ID, &result.TestID, &result.FieldID,
			&result.FieldName, &result.FieldValue, &result.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan test result: %w", err)
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}

// CompleteTestWithResults flips a pending test to completed and inserts its
// result batch in one transaction. If the test is no longer pending — already
// completed, or a concurrent submission won the race — nothing is written and
// a PreconditionError is returned.
func CompleteTestWithResults(db *sql.DB, testID string, results []*models.TestResult) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE tests SET status = 'completed' WHERE id = $1 AND status = 'pending'`,
		testID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete test: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return &lab.PreconditionError{Msg: "test is not pending"}
	}

	insertStmt, err := tx.Prepare(`
		INSERT INTO test_results (test_id, field_id, field_name, field_value)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer insertStmt.Close()

	for _, row := range results {
		err := insertStmt.QueryRow(testID, row.FieldID, row.FieldName, row.FieldValue).
			Scan(&row.ID, &row.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert result for field %s: %w", row.FieldName, err)
		}
		row.TestID = testID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
