package database

import (
	"database/sql"
	"fmt"

	"hospital-lab/app/models"
)

// CreatePatient inserts a new patient record. Patients sharing a unique_id
// are kept as separate rows; family members legitimately share the number.
func CreatePatient(db *sql.DB, patient *models.Patient) error {
	query := `
		INSERT INTO patients (name, unique_id, age, sex, rank, ward)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := db.QueryRow(
		query,
		patient.Name,
		patient.UniqueID,
		patient.Age,
		patient.Sex,
		patient.Rank,
		patient.Ward,
	).Scan(&patient.ID, &patient.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// GetPatientByID fetches a single patient.
func GetPatientByID(db *sql.DB, patientID string) (*models.Patient, error) {
	query := `
		SELECT id, name, unique_id, age, sex, rank, ward, created_at
		FROM patients
		WHERE id = $1
	`
	var patient models.Patient
	err := db.QueryRow(query, patientID).Scan(
		&patient.ID, &patient.Name, &patient.UniqueID, &patient.Age,
		&patient.Sex, &patient.Rank, &patient.Ward, &patient.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return &patient, nil
}

// GetPatientsByUniqueID fetches every patient registered under a family
// number, oldest first, so the operator can pick the right family member.
func GetPatientsByUniqueID(db *sql.DB, uniqueID string) ([]*models.Patient, error) {
	query := `
		SELECT id, name, unique_id, age, sex, rank, ward, created_at
		FROM patients
		WHERE unique_id = $1
		ORDER BY created_at
	`
	rows, err := db.Query(query, uniqueID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}
	defer rows.Close()

	return scanPatients(rows)
}

// GetAllPatients fetches every patient, oldest first.
func GetAllPatients(db *sql.DB) ([]*models.Patient, error) {
	query := `
		SELECT id, name, unique_id, age, sex, rank, ward, created_at
		FROM patients
		ORDER BY created_at
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}
	defer rows.Close()

	return scanPatients(rows)
}

func scanPatients(rows *sql.Rows) ([]*models.Patient, error) {
	var patients []*models.Patient
	for rows.Next() {
		var patient models.Patient
		if err := rows.Scan(
			&patient.ID, &patient.Name, &patient.UniqueID, &patient.Age,
			&patient.Sex, &patient.Rank, &patient.Ward, &patient.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, &patient)
	}
	return patients, rows.Err()
}
