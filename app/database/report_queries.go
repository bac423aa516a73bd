package database

import (
	"database/sql"
	"fmt"
	"time"

	"hospital-lab/app/lab"
	"hospital-lab/app/models"
)

// GetCompletedTestSummary bulk-reads every completed test with its lab test
// name, patient rank, and captured result values. One query, grouped in
// memory by the caller; row order follows test creation time so pivot rows
// come out in discovery order.
func GetCompletedTestSummary(db *sql.DB) ([]lab.CompletedTest, error) {
	query := `
		SELECT t.id, lt.name, p.rank, tr.field_value
		FROM tests t
		JOIN lab_tests lt ON t.lab_test_id = lt.id
		JOIN patients p ON t.patient_id = p.id
		LEFT JOIN test_results tr ON tr.test_id = t.id
		WHERE t.status = 'completed'
		ORDER BY t.created_at, t.id, tr.created_at, tr.id
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completed tests: %w", err)
	}
	defer rows.Close()

	var completed []lab.CompletedTest
	var lastTestID string
	for rows.Next() {
		var testID, testName string
		var rank models.Rank
		var value sql.NullString
		if err := rows.Scan(&testID, &testName, &rank, &value); err != nil {
			return nil, fmt.Errorf("failed to scan completed test: %w", err)
		}

		if testID != lastTestID {
			completed = append(completed, lab.CompletedTest{TestName: testName, Rank: rank})
			lastTestID = testID
		}
		if value.Valid {
			last := &completed[len(completed)-1]
			last.Results = append(last.Results, value.String)
		}
	}
	return completed, rows.Err()
}

// GetCompletedTestsBetween fetches the category and patient rank of every
// completed test created in [start, end), ordered by creation time.
func GetCompletedTestsBetween(db *sql.DB, start, end time.Time) ([]lab.CategoryInput, error) {
	query := `
		SELECT lt.category, p.rank
		FROM tests t
		JOIN lab_tests lt ON t.lab_test_id = lt.id
		JOIN patients p ON t.patient_id = p.id
		WHERE t.status = 'completed' AND t.created_at >= $1 AND t.created_at < $2
		ORDER BY t.created_at, t.id
	`
	rows, err := db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completed tests: %w", err)
	}
	defer rows.Close()

	var inputs []lab.CategoryInput
	for rows.Next() {
		var input lab.CategoryInput
		if err := rows.Scan(&input.Category, &input.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan completed test: %w", err)
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}

// GetTestsByRank fetches the lab test name and patient rank of every
// assigned test, optionally bounded by creation time on either side.
func GetTestsByRank(db *sql.DB, from, to *time.Time) ([]lab.TestNameRank, error) {
	query := `
		SELECT lt.name, p.rank
		FROM tests t
		JOIN lab_tests lt ON t.lab_test_id = lt.id
		JOIN patients p ON t.patient_id = p.id
	`
	var args []interface{}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" WHERE t.created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += fmt.Sprintf(" AND t.created_at <= $%d", len(args))
		} else {
			query += fmt.Sprintf(" WHERE t.created_at <= $%d", len(args))
		}
	}
	query += " ORDER BY t.created_at, t.id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tests: %w", err)
	}
	defer rows.Close()

	var tests []lab.TestNameRank
	for rows.Next() {
		var test lab.TestNameRank
		if err := rows.Scan(&test.TestName, &test.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan test: %w", err)
		}
		tests = append(tests, test)
	}
	return tests, rows.Err()
}

// GetCategoryCounts pushes the by-category pivot down to Postgres: one row
// per category with per-rank counts for completed tests created in
// [start, end), ordered by each category's first appearance.
func GetCategoryCounts(db *sql.DB, start, end time.Time) ([]*lab.CategoryRow, error) {
	query := `
		SELECT
			COALESCE(NULLIF(lt.category, ''), 'Uncategorized') AS category,
			COUNT(*) FILTER (WHERE p.rank = 'Army') AS army,
			COUNT(*) FILTER (WHERE p.rank = 'Army Family') AS army_family,
			COUNT(*) FILTER (WHERE p.rank = 'Civil') AS civil,
			COUNT(*) FILTER (WHERE p.rank = 'Pension') AS pension,
			COUNT(*) AS total
		FROM tests t
		JOIN lab_tests lt ON t.lab_test_id = lt.id
		JOIN patients p ON t.patient_id = p.id
		WHERE t.status = 'completed' AND t.created_at >= $1 AND t.created_at < $2
		GROUP BY 1
		ORDER BY MIN(t.created_at)
	`
	rows, err := db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category counts: %w", err)
	}
	defer rows.Close()

	var report []*lab.CategoryRow
	for rows.Next() {
		var row lab.CategoryRow
		if err := rows.Scan(&row.Category, &row.Army, &row.ArmyFamily, &row.Civil, &row.Pension, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category counts: %w", err)
		}
		report = append(report, &row)
	}
	return report, rows.Err()
}
